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

func FinaliseUploadHandler(svc port.UploadFinaliser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.VideoIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		if err := svc.FinaliseUpload(r.Context(), id); err != nil {
			switch {
			case errors.Is(err, video.ErrVideoNotFound):
				WriteError(w, http.StatusNotFound, "Video not found", nil)
			case errors.Is(err, video.ErrInputMissing):
				WriteError(w, http.StatusConflict, "No staged file found for this video", err)
			default:
				WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Could not finalise upload of video #%s", id), err)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Successfully finalised upload of video #%s", id)
	}
}
