package mariadb

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/videotube/videos-ms-go/internal/model"
	"github.com/videotube/videos-ms-go/internal/port"
	video "github.com/videotube/videos-ms-go/internal/usecase/video"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

type VideoRepository struct {
	db *sql.DB
}

// compile-time check: *VideoRepository must satisfy port.VideoRepository
var _ port.VideoRepository = (*VideoRepository)(nil)

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, v *model.Video) error {
	log.Printf("creating database record for video #%s, at status %q...", v.ID, v.TranscodingStatus)

	const query = `
      INSERT INTO videos
        (id, title, description, bucket, object_key, transcoding_status, resolutions, available_resolutions, duration_seconds, failure_message, view_count, is_published)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.Title, v.Description,
		v.Bucket, v.ObjectKey,
		v.TranscodingStatus, v.Resolutions, v.AvailableResolutions,
		v.DurationSeconds, v.FailureMessage,
		v.ViewCount, v.IsPublished,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *VideoRepository) Update(ctx context.Context, v *model.Video) error {
	log.Printf("updating database record for video #%s, with status %q...", v.ID, v.TranscodingStatus)

	const query = `
      UPDATE videos
      SET
        title                 = ?,
        description           = ?,
        bucket                = ?,
        object_key            = ?,
        transcoding_status    = ?,
        resolutions           = ?,
        available_resolutions = ?,
        duration_seconds      = ?,
        failure_message       = ?,
        view_count            = ?,
        is_published          = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		v.Title,
		v.Description,
		v.Bucket,
		v.ObjectKey,
		v.TranscodingStatus,
		v.Resolutions,
		v.AvailableResolutions,
		v.DurationSeconds,
		v.FailureMessage,
		v.ViewCount,
		v.IsPublished,
		v.ID, // WHERE clause
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, ID uuid.UUID) (*model.Video, error) {
	log.Printf("fetching video #%s from the database...", ID)

	const query = `
      SELECT id, title, description, bucket, object_key, transcoding_status, resolutions, available_resolutions, duration_seconds, failure_message, lease_owner, lease_expires_at, view_count, is_published, created_at, updated_at
      FROM videos
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, ID)
	var v model.Video
	if err := row.Scan(
		&v.ID, &v.Title, &v.Description,
		&v.Bucket, &v.ObjectKey,
		&v.TranscodingStatus, &v.Resolutions, &v.AvailableResolutions,
		&v.DurationSeconds, &v.FailureMessage,
		&v.LeaseOwner, &v.LeaseExpiresAt,
		&v.ViewCount, &v.IsPublished,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &v, nil
}

func (r *VideoRepository) IncrementViewCount(ctx context.Context, ID uuid.UUID) error {
	const query = `UPDATE videos SET view_count = view_count + 1 WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, ID)
	return err
}

func (r *VideoRepository) Delete(ctx context.Context, ID uuid.UUID) error {
	log.Printf("deleting database record for video #%s...", ID)

	const query = `DELETE FROM videos WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, ID)
	return err
}

// ClaimForTranscoding takes the per-video lease and moves the record to
// in-progress in one conditional statement. The claim succeeds when nobody
// holds the lease, when the caller already holds it, or when the previous
// holder's lease has expired.
func (r *VideoRepository) ClaimForTranscoding(ctx context.Context, ID uuid.UUID, owner string, ttl time.Duration) error {
	log.Printf("claiming video #%s for transcoding, owner %q...", ID, owner)

	const query = `
      UPDATE videos
      SET
        transcoding_status = 'in-progress',
        failure_message    = NULL,
        lease_owner        = ?,
        lease_expires_at   = DATE_ADD(NOW(), INTERVAL ? SECOND)
      WHERE id = ?
        AND (lease_owner IS NULL OR lease_owner = ? OR lease_expires_at < NOW())
    `
	res, err := r.db.ExecContext(ctx, query, owner, int(ttl.Seconds()), ID, owner)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// record missing or someone else holds a live lease
		if _, err := r.GetByID(ctx, ID); err != nil {
			return err
		}
		return video.ErrLeaseHeld
	}
	return nil
}

// CompleteTranscoding commits the terminal completed state. Status,
// resolutions, available resolutions and duration land in a single UPDATE so
// observers never see one without the others. The in-progress guard rejects
// any other edge into completed.
func (r *VideoRepository) CompleteTranscoding(ctx context.Context, ID uuid.UUID, resolutions model.Resolutions, available model.ResolutionList, durationSeconds int) error {
	log.Printf("committing completed transcode for video #%s (%d resolutions)...", ID, len(resolutions))

	const query = `
      UPDATE videos
      SET
        transcoding_status    = 'completed',
        resolutions           = ?,
        available_resolutions = ?,
        duration_seconds      = ?,
        failure_message       = NULL,
        lease_owner           = NULL,
        lease_expires_at      = NULL
      WHERE id = ? AND transcoding_status = 'in-progress'
    `
	res, err := r.db.ExecContext(ctx, query, resolutions, available, durationSeconds, ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return video.ErrInvalidStatusTransition
	}
	return nil
}

// FailTranscoding commits the terminal failed state with an empty
// resolutions map; a failed attempt never leaves partial entries behind.
func (r *VideoRepository) FailTranscoding(ctx context.Context, ID uuid.UUID, reason string) error {
	log.Printf("committing failed transcode for video #%s: %s", ID, reason)

	const query = `
      UPDATE videos
      SET
        transcoding_status    = 'failed',
        resolutions           = ?,
        available_resolutions = ?,
        failure_message       = ?,
        lease_owner           = NULL,
        lease_expires_at      = NULL
      WHERE id = ? AND transcoding_status = 'in-progress'
    `
	res, err := r.db.ExecContext(ctx, query, model.Resolutions{}, model.ResolutionList{}, reason, ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return video.ErrInvalidStatusTransition
	}
	return nil
}

func (r *VideoRepository) ListStaleInProgressBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	log.Printf("listing in-progress videos with a lease expired before %s...", before.Format(time.RFC3339))

	const query = `
      SELECT id
      FROM videos
      WHERE transcoding_status = 'in-progress'
        AND (lease_expires_at IS NULL OR lease_expires_at < ?)
    `
	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
