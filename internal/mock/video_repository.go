package mock

import (
	"context"
	"time"

	"github.com/videotube/videos-ms-go/internal/model"
	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

// MockVideoRepo implements repository operations for tests.
type MockVideoRepo struct {
	VideoRecord *model.Video

	GetErr       error
	IncViewErr   error
	CreateErr    error
	UpdateErr    error
	DeleteErr    error
	ClaimErr     error
	CompleteErr  error
	FailErr      error
	ListStaleErr error
	ListStaleOut []uuid.UUID

	// CompleteErrOnce makes only the first CompleteTranscoding call fail,
	// for redelivery tests.
	CompleteErrOnce error

	GetCalled       bool
	IncViewCalled   bool
	Created         *model.Video
	Updated         *model.Video
	DeleteCalled    bool
	DeletedID       uuid.UUID
	ClaimCalled     int
	ClaimedID       uuid.UUID
	ClaimOwner      string
	ClaimTTL        time.Duration
	CompleteCalled  int
	CompletedID     uuid.UUID
	CompletedRes    model.Resolutions
	CompletedLabels model.ResolutionList
	CompletedDur    int
	FailCalled      int
	FailedID        uuid.UUID
	FailedReason    string
	ListStaleCalled bool
	ListStaleBefore time.Time
}

var _ port.VideoRepository = (*MockVideoRepo)(nil)

func (m *MockVideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.VideoRecord, nil
}

func (m *MockVideoRepo) Create(ctx context.Context, v *model.Video) error {
	m.Created = v
	return m.CreateErr
}

func (m *MockVideoRepo) Update(ctx context.Context, v *model.Video) error {
	m.Updated = v
	return m.UpdateErr
}

func (m *MockVideoRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	m.IncViewCalled = true
	return m.IncViewErr
}

func (m *MockVideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalled = true
	m.DeletedID = id
	return m.DeleteErr
}

func (m *MockVideoRepo) ClaimForTranscoding(ctx context.Context, id uuid.UUID, owner string, ttl time.Duration) error {
	m.ClaimCalled++
	m.ClaimedID = id
	m.ClaimOwner = owner
	m.ClaimTTL = ttl
	return m.ClaimErr
}

func (m *MockVideoRepo) CompleteTranscoding(ctx context.Context, id uuid.UUID, resolutions model.Resolutions, available model.ResolutionList, durationSeconds int) error {
	m.CompleteCalled++
	m.CompletedID = id
	m.CompletedRes = resolutions
	m.CompletedLabels = available
	m.CompletedDur = durationSeconds
	if m.CompleteErrOnce != nil {
		err := m.CompleteErrOnce
		m.CompleteErrOnce = nil
		return err
	}
	return m.CompleteErr
}

func (m *MockVideoRepo) FailTranscoding(ctx context.Context, id uuid.UUID, reason string) error {
	m.FailCalled++
	m.FailedID = id
	m.FailedReason = reason
	return m.FailErr
}

func (m *MockVideoRepo) ListStaleInProgressBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	m.ListStaleCalled = true
	m.ListStaleBefore = before
	if m.ListStaleErr != nil {
		return nil, m.ListStaleErr
	}
	return m.ListStaleOut, nil
}
