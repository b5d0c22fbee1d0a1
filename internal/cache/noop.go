package cache

import (
	"context"
	"time"

	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetVideoDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) SetVideoDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time) {
}

func (n *NoopCache) DeleteVideoDetails(ctx context.Context, id uuid.UUID) error { return nil }
