package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/videotube/videos-ms-go/internal/api_context"
	"github.com/videotube/videos-ms-go/internal/logger"
	"github.com/videotube/videos-ms-go/internal/port"
	video "github.com/videotube/videos-ms-go/internal/usecase/video"
)

type TogglePublishResponse struct {
	IsPublished bool `json:"is_published"`
}

func TogglePublishHandler(svc port.PublishToggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.VideoIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		published, err := svc.TogglePublish(r.Context(), id)
		if err != nil {
			if errors.Is(err, video.ErrVideoNotFound) {
				WriteError(w, http.StatusNotFound, "Video not found", nil)
				return
			}
			WriteError(w, http.StatusConflict, fmt.Sprintf("Could not toggle publication of video #%s", id), err)
			return
		}

		RespondJSON(w, http.StatusOK, TogglePublishResponse{IsPublished: published})
		logger.Infof(r.Context(), "✅  Successfully toggled publication of video #%s to %t", id, published)
	}
}
