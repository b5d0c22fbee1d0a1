package video

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/videotube/videos-ms-go/internal/logger"
	"github.com/videotube/videos-ms-go/internal/model"
	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

type uploadFinaliserSrv struct {
	repo  port.VideoRepository
	strg  port.Storage
	tasks port.TaskDispatcher
}

// compile-time check: *uploadFinaliserSrv must satisfy port.UploadFinaliser
var _ port.UploadFinaliser = (*uploadFinaliserSrv)(nil)

// NewUploadFinaliser constructs an UploadFinaliser implementation.
func NewUploadFinaliser(repo port.VideoRepository, strg port.Storage, tasks port.TaskDispatcher) port.UploadFinaliser {
	return &uploadFinaliserSrv{repo, strg, tasks}
}

// FinaliseUpload validates the staged original, moves it to its durable
// original/ location and enqueues the transcode job. The record stays
// pending throughout: it only leaves pending once a worker claims the job,
// so a failed enqueue can simply be retried by calling finalise again.
func (s *uploadFinaliserSrv) FinaliseUpload(ctx context.Context, id uuid.UUID) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVideoNotFound
		}
		return err
	}
	if v.TranscodingStatus != model.TranscodingStatusPending {
		return fmt.Errorf("video status should be %q to be finalised, got %q", model.TranscodingStatusPending, v.TranscodingStatus)
	}

	// A previous finalise may have moved the file and then failed to
	// enqueue; in that case only the enqueue is left to redo.
	if !strings.HasPrefix(v.ObjectKey, "original/") {
		if err := s.moveFile(ctx, v); err != nil {
			return err
		}
	}

	if err := s.tasks.EnqueueTranscodeVideo(ctx, v.ID, v.ObjectKey); err != nil {
		return fmt.Errorf("failed to enqueue transcode task for video #%s: %w", v.ID, err)
	}
	return nil
}

func (s *uploadFinaliserSrv) moveFile(ctx context.Context, v *model.Video) error {
	stagingKey := v.ObjectKey

	info, err := s.strg.StatFile(ctx, v.Bucket, stagingKey)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return fmt.Errorf("staged file %q not found: %w", stagingKey, ErrInputMissing)
		}
		return fmt.Errorf("stats for file %q failed: %w", stagingKey, err)
	}

	if info.SizeBytes < MinFileSize {
		return fmt.Errorf("file %q too small: %d bytes (min size: %d bytes)", stagingKey, info.SizeBytes, MinFileSize)
	}
	if info.SizeBytes > MaxFileSize {
		return fmt.Errorf("file %q too large: %d bytes (max size: %d bytes)", stagingKey, info.SizeBytes, MaxFileSize)
	}
	if !IsMimeTypeAllowed(info.ContentType) {
		return fmt.Errorf("unsupported mime-type %q for file %q", info.ContentType, stagingKey)
	}

	originalKey := strings.Replace(stagingKey, "staging/", "original/", 1)
	if err := s.strg.CopyFile(ctx, v.Bucket, stagingKey, originalKey); err != nil {
		return fmt.Errorf("failed to copy %q to %q inside bucket %q: %w", stagingKey, originalKey, v.Bucket, err)
	}
	if err := s.strg.RemoveFile(ctx, v.Bucket, stagingKey); err != nil {
		logger.Warnf(ctx, "failed to clean up staged file %q: %v", stagingKey, err)
	}

	v.ObjectKey = originalKey
	if err := s.repo.Update(ctx, v); err != nil {
		return fmt.Errorf("failed updating video: %w", err)
	}
	return nil
}
