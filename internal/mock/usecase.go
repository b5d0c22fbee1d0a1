package mock

import (
	"context"

	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

// MockUploadLinkGenerator implements port.UploadLinkGenerator.
type MockUploadLinkGenerator struct {
	Out port.GenerateUploadLinkOutput
	Err error

	Called bool
	In     port.GenerateUploadLinkInput
}

var _ port.UploadLinkGenerator = (*MockUploadLinkGenerator)(nil)

func (m *MockUploadLinkGenerator) GenerateUploadLink(ctx context.Context, in port.GenerateUploadLinkInput) (port.GenerateUploadLinkOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MockUploadFinaliser implements port.UploadFinaliser.
type MockUploadFinaliser struct {
	Err error

	Called bool
	ID     uuid.UUID
}

var _ port.UploadFinaliser = (*MockUploadFinaliser)(nil)

func (m *MockUploadFinaliser) FinaliseUpload(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}

// MockVideoTranscoder implements port.VideoTranscoder.
type MockVideoTranscoder struct {
	Err error

	Called bool
	In     port.TranscodeVideoInput
}

var _ port.VideoTranscoder = (*MockVideoTranscoder)(nil)

func (m *MockVideoTranscoder) TranscodeVideo(ctx context.Context, in port.TranscodeVideoInput) error {
	m.Called = true
	m.In = in
	return m.Err
}

// MockVideoGetter implements port.VideoGetter.
type MockVideoGetter struct {
	Out port.GetVideoOutput
	Err error

	Called bool
	ID     uuid.UUID
}

var _ port.VideoGetter = (*MockVideoGetter)(nil)

func (m *MockVideoGetter) GetVideo(ctx context.Context, id uuid.UUID) (port.GetVideoOutput, error) {
	m.Called = true
	m.ID = id
	return m.Out, m.Err
}

// MockVideoDeleter implements port.VideoDeleter.
type MockVideoDeleter struct {
	Err error

	Called bool
	ID     uuid.UUID
}

var _ port.VideoDeleter = (*MockVideoDeleter)(nil)

func (m *MockVideoDeleter) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}

// MockPublishToggler implements port.PublishToggler.
type MockPublishToggler struct {
	Out bool
	Err error

	Called bool
	ID     uuid.UUID
}

var _ port.PublishToggler = (*MockPublishToggler)(nil)

func (m *MockPublishToggler) TogglePublish(ctx context.Context, id uuid.UUID) (bool, error) {
	m.Called = true
	m.ID = id
	return m.Out, m.Err
}

// MockRetranscoder implements port.Retranscoder.
type MockRetranscoder struct {
	Err error

	Called bool
	ID     uuid.UUID
}

var _ port.Retranscoder = (*MockRetranscoder)(nil)

func (m *MockRetranscoder) RetranscodeVideo(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}
