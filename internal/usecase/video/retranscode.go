package video

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/videotube/videos-ms-go/internal/model"
	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

type retranscoderSrv struct {
	repo  port.VideoRepository
	tasks port.TaskDispatcher
}

// compile-time check: *retranscoderSrv must satisfy port.Retranscoder
var _ port.Retranscoder = (*retranscoderSrv)(nil)

// NewRetranscoder constructs a Retranscoder implementation.
func NewRetranscoder(repo port.VideoRepository, tasks port.TaskDispatcher) port.Retranscoder {
	return &retranscoderSrv{repo, tasks}
}

// RetranscodeVideo enqueues a fresh pipeline run for a video already in a
// terminal state. A terminal state is only ever overwritten through this
// explicit path; in-flight videos cannot be resubmitted.
func (s *retranscoderSrv) RetranscodeVideo(ctx context.Context, id uuid.UUID) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVideoNotFound
		}
		return err
	}

	if v.TranscodingStatus != model.TranscodingStatusCompleted && v.TranscodingStatus != model.TranscodingStatusFailed {
		return fmt.Errorf("video status should be terminal to be retranscoded, got %q", v.TranscodingStatus)
	}

	if err := s.tasks.EnqueueTranscodeVideo(ctx, v.ID, v.ObjectKey); err != nil {
		return fmt.Errorf("failed to enqueue transcode task for video #%s: %w", v.ID, err)
	}
	return nil
}
