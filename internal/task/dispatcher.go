package task

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

// Dispatcher enqueues transcode jobs on the Redis-backed queue. The message
// is persisted before EnqueueContext returns, so a successful enqueue
// survives a crash of the caller; delivery to workers is at-least-once.
type Dispatcher struct {
	client *asynq.Client
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

func (d *Dispatcher) EnqueueTranscodeVideo(ctx context.Context, id uuid.UUID, inputKey string) error {
	t, err := NewTranscodeVideoTask(id.String(), inputKey)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t); err != nil {
		return err
	}
	return nil
}
