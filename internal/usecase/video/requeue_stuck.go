package video

import (
	"context"
	"time"

	"github.com/videotube/videos-ms-go/internal/logger"
	"github.com/videotube/videos-ms-go/internal/port"
)

type stuckRequeuerSrv struct {
	repo  port.VideoRepository
	tasks port.TaskDispatcher
}

// compile-time check: *stuckRequeuerSrv must satisfy port.StuckRequeuer
var _ port.StuckRequeuer = (*stuckRequeuerSrv)(nil)

// NewStuckRequeuer constructs a StuckRequeuer implementation.
func NewStuckRequeuer(repo port.VideoRepository, tasks port.TaskDispatcher) port.StuckRequeuer {
	return &stuckRequeuerSrv{repo, tasks}
}

// RequeueStuck looks for videos left in-progress by a dead worker, i.e.
// whose lease has expired, and enqueues a fresh job for each. The expired
// lease lets the next claimant take over.
func (s *stuckRequeuerSrv) RequeueStuck(ctx context.Context) error {
	ids, err := s.repo.ListStaleInProgressBefore(ctx, time.Now())
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		logger.Info(ctx, "no stuck videos found to requeue")
		return nil
	}

	for _, id := range ids {
		v, err := s.repo.GetByID(ctx, id)
		if err != nil {
			logger.Warnf(ctx, "failed to load stuck video #%s: %v", id, err)
			continue
		}
		logger.Infof(ctx, "requeueing stuck video #%s", id)
		if err := s.tasks.EnqueueTranscodeVideo(ctx, id, v.ObjectKey); err != nil {
			logger.Warnf(ctx, "failed to enqueue transcode task for video #%s: %v", id, err)
		}
	}
	return nil
}
