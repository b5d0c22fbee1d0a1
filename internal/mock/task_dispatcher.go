package mock

import (
	"context"

	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

// MockDispatcher implements the task dispatcher for tests.
type MockDispatcher struct {
	EnqueueErr error

	Called    bool
	IDs       []uuid.UUID
	InputKeys []string
}

var _ port.TaskDispatcher = (*MockDispatcher)(nil)

func (m *MockDispatcher) EnqueueTranscodeVideo(ctx context.Context, id uuid.UUID, inputKey string) error {
	m.Called = true
	if m.EnqueueErr != nil {
		return m.EnqueueErr
	}
	m.IDs = append(m.IDs, id)
	m.InputKeys = append(m.InputKeys, inputKey)
	return nil
}
