package port

import (
	"context"
	"time"

	"github.com/videotube/videos-ms-go/internal/model"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

// VideoRepository defines persistence operations for videos.
//
// The three transcoding mutations (ClaimForTranscoding, CompleteTranscoding,
// FailTranscoding) are the only writers of transcoding state: each one is a
// single conditional statement so observers never see a half-committed
// status/resolutions pair.
type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	Update(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, ID uuid.UUID) (*model.Video, error)
	Delete(ctx context.Context, ID uuid.UUID) error

	// IncrementViewCount bumps the view counter in place, without racing
	// concurrent readers through a read-modify-write.
	IncrementViewCount(ctx context.Context, ID uuid.UUID) error

	// ClaimForTranscoding transitions the video to in-progress and takes an
	// exclusive lease for the given owner. Claiming is idempotent for the
	// same owner while its lease is live; a live lease held by another
	// worker makes the claim fail with ErrLeaseHeld.
	ClaimForTranscoding(ctx context.Context, ID uuid.UUID, owner string, ttl time.Duration) error

	// CompleteTranscoding atomically commits the terminal completed state:
	// status, resolutions, available resolutions and duration in one write,
	// releasing the lease.
	CompleteTranscoding(ctx context.Context, ID uuid.UUID, resolutions model.Resolutions, available model.ResolutionList, durationSeconds int) error

	// FailTranscoding commits the terminal failed state with an empty
	// resolutions map, releasing the lease.
	FailTranscoding(ctx context.Context, ID uuid.UUID, reason string) error

	// ListStaleInProgressBefore returns videos stuck in-progress whose lease
	// expired before the given time, for the crash-recovery sweep.
	ListStaleInProgressBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error)
}
