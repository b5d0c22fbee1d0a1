package mock

import (
	"context"
	"time"

	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

// MockCache implements port.Cache with an in-memory map.
type MockCache struct {
	Data      map[string][]byte
	GetErr    error
	DeleteErr error

	SetCalled    bool
	DeleteCalled bool
	SetID        uuid.UUID
	DeletedID    uuid.UUID
}

var _ port.Cache = (*MockCache)(nil)

func (m *MockCache) GetVideoDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Data == nil {
		return nil, nil
	}
	return m.Data[id.String()], nil
}

func (m *MockCache) SetVideoDetails(ctx context.Context, id uuid.UUID, payload []byte, validUntil time.Time) {
	m.SetCalled = true
	m.SetID = id
	if m.Data == nil {
		m.Data = make(map[string][]byte)
	}
	m.Data[id.String()] = payload
}

func (m *MockCache) DeleteVideoDetails(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalled = true
	m.DeletedID = id
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Data, id.String())
	return nil
}
