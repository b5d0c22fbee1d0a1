package port

import (
	"context"
	"time"

	"github.com/videotube/videos-ms-go/internal/uuid"
)

// Cache stores rendered video details between terminal status changes.
type Cache interface {
	GetVideoDetails(ctx context.Context, id uuid.UUID) ([]byte, error)
	SetVideoDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time)
	DeleteVideoDetails(ctx context.Context, id uuid.UUID) error
}
