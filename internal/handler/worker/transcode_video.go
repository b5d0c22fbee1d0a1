package worker

import (
	"context"
	"errors"

	guuid "github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/videotube/videos-ms-go/internal/logger"
	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/task"
	video "github.com/videotube/videos-ms-go/internal/usecase/video"
	msuuid "github.com/videotube/videos-ms-go/internal/uuid"
)

// TranscodeVideoHandler handles a transcode-video task. It converts the
// incoming payload to the input expected by the VideoTranscoder service and
// delegates the call. Returning an error makes the queue redeliver the task;
// a missing record is the one case where a retry can never succeed.
func TranscodeVideoHandler(ctx context.Context, p task.TranscodeVideoPayload, svc port.VideoTranscoder) error {
	id, err := guuid.Parse(p.VideoID)
	if err != nil {
		logger.Errorf(ctx, "❌  Invalid video ID %q: %v", p.VideoID, err)
		return asynq.SkipRetry
	}

	in := port.TranscodeVideoInput{ID: msuuid.UUID(id), InputKey: p.InputPath}
	if err := svc.TranscodeVideo(ctx, in); err != nil {
		if errors.Is(err, video.ErrVideoNotFound) {
			logger.Warnf(ctx, "❌  Video #%s no longer exists, dropping task", id)
			return asynq.SkipRetry
		}
		logger.Errorf(ctx, "❌  Failed to transcode video #%s: %v", id, err)
		return err
	}

	logger.Infof(ctx, "✅  Finished transcode task for video #%s", id)
	return nil
}
