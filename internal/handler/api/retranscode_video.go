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

func RetranscodeVideoHandler(svc port.Retranscoder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.VideoIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		if err := svc.RetranscodeVideo(r.Context(), id); err != nil {
			switch {
			case errors.Is(err, video.ErrVideoNotFound):
				WriteError(w, http.StatusNotFound, "Video not found", nil)
			default:
				WriteError(w, http.StatusConflict, fmt.Sprintf("Could not retranscode video #%s", id), err)
			}
			return
		}

		w.WriteHeader(http.StatusAccepted)
		logger.Infof(r.Context(), "✅  Successfully queued retranscode of video #%s", id)
	}
}
