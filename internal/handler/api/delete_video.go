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

func DeleteVideoHandler(svc port.VideoDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.VideoIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		if err := svc.DeleteVideo(r.Context(), id); err != nil {
			if errors.Is(err, video.ErrVideoNotFound) {
				WriteError(w, http.StatusNotFound, "Video not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Could not delete video #%s", id), err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Successfully deleted video #%s", id)
	}
}
