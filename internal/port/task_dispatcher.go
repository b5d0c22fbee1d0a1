package port

import (
	"context"

	"github.com/videotube/videos-ms-go/internal/uuid"
)

// TaskDispatcher enqueues asynchronous tasks related to video processing.
// Enqueueing persists the message before returning; delivery to workers is
// at-least-once.
type TaskDispatcher interface {
	EnqueueTranscodeVideo(ctx context.Context, id uuid.UUID, inputKey string) error
}
