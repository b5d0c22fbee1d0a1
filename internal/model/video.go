package model

import (
	"time"

	"github.com/videotube/videos-ms-go/internal/uuid"
)

type TranscodingStatus string

const (
	TranscodingStatusPending    TranscodingStatus = "pending"
	TranscodingStatusInProgress TranscodingStatus = "in-progress"
	TranscodingStatusCompleted  TranscodingStatus = "completed"
	TranscodingStatusFailed     TranscodingStatus = "failed"
)

// Video is the persisted record the transcoding pipeline works against.
// The pipeline only ever writes transcoding-related fields at two points:
// when a worker claims the job and when it commits a terminal state.
type Video struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`

	// Bucket and ObjectKey locate the original upload; immutable once the
	// upload has been finalised.
	Bucket    string `json:"bucket"`
	ObjectKey string `json:"object_key"`

	TranscodingStatus    TranscodingStatus `json:"transcoding_status"`
	Resolutions          Resolutions       `json:"resolutions"`
	AvailableResolutions ResolutionList    `json:"available_resolutions"`
	DurationSeconds      *int              `json:"duration_seconds"`
	FailureMessage       *string           `json:"failure_message"`

	// LeaseOwner/LeaseExpiresAt implement the per-video transcode claim so
	// two workers never run the pipeline for the same video concurrently.
	LeaseOwner     *string    `json:"-"`
	LeaseExpiresAt *time.Time `json:"-"`

	ViewCount   int64 `json:"view_count"`
	IsPublished bool  `json:"is_published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
