package port

import (
	"context"

	"github.com/videotube/videos-ms-go/internal/model"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

type UUIDGen func() uuid.UUID

// UploadLinkGenerator returns a presigned link to upload an original video.
type UploadLinkGenerator interface {
	GenerateUploadLink(ctx context.Context, in GenerateUploadLinkInput) (GenerateUploadLinkOutput, error)
}
type GenerateUploadLinkInput struct {
	Title       string
	Description string
	Filename    string
}
type GenerateUploadLinkOutput struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

// UploadFinaliser validates the staged original, moves it to its durable
// location and hands the video off to the transcoding pipeline.
type UploadFinaliser interface {
	FinaliseUpload(ctx context.Context, id uuid.UUID) error
}

// VideoTranscoder runs the whole pipeline for one job: claim, probe, plan,
// encode, publish, reconcile.
type VideoTranscoder interface {
	TranscodeVideo(ctx context.Context, in TranscodeVideoInput) error
}
type TranscodeVideoInput struct {
	ID uuid.UUID
	// InputKey is the object key of the original inside the shared bucket,
	// readable from any worker host.
	InputKey string
}

// VideoGetter retrieves video details, including transcoding status and the
// per-resolution playback URLs.
type VideoGetter interface {
	GetVideo(ctx context.Context, id uuid.UUID) (GetVideoOutput, error)
}
type GetVideoOutput struct {
	ID                   uuid.UUID               `json:"id"`
	Title                string                  `json:"title"`
	Description          string                  `json:"description"`
	TranscodingStatus    model.TranscodingStatus `json:"transcoding_status"`
	Resolutions          model.Resolutions       `json:"resolutions"`
	AvailableResolutions model.ResolutionList    `json:"available_resolutions"`
	DurationSeconds      *int                    `json:"duration_seconds"`
	ViewCount            int64                   `json:"view_count"`
	IsPublished          bool                    `json:"is_published"`
}

// VideoDeleter removes the record, the original and every published rung.
type VideoDeleter interface {
	DeleteVideo(ctx context.Context, id uuid.UUID) error
}

// PublishToggler flips the listing visibility of a video.
type PublishToggler interface {
	TogglePublish(ctx context.Context, id uuid.UUID) (bool, error)
}

// Retranscoder resubmits a terminal video for a fresh pipeline run.
type Retranscoder interface {
	RetranscodeVideo(ctx context.Context, id uuid.UUID) error
}

// StuckRequeuer re-enqueues videos whose worker died mid-job.
type StuckRequeuer interface {
	RequeueStuck(ctx context.Context) error
}
