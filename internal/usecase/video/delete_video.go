package video

import (
	"context"
	"database/sql"
	"errors"

	"github.com/videotube/videos-ms-go/internal/logger"
	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

type videoDeleterSrv struct {
	repo  port.VideoRepository
	cache port.Cache
	strg  port.Storage
}

// compile-time check: *videoDeleterSrv must satisfy port.VideoDeleter
var _ port.VideoDeleter = (*videoDeleterSrv)(nil)

// NewVideoDeleter constructs a VideoDeleter implementation.
func NewVideoDeleter(repo port.VideoRepository, cache port.Cache, strg port.Storage) port.VideoDeleter {
	return &videoDeleterSrv{repo, cache, strg}
}

// DeleteVideo removes every published rung, the original, the database
// record and the cache entry, in that order. Rung removal is best-effort;
// the original and the record must both go.
func (s *videoDeleterSrv) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVideoNotFound
		}
		return err
	}

	for label, key := range v.Resolutions {
		if err := s.strg.RemoveFile(ctx, v.Bucket, key); err != nil {
			logger.Warnf(ctx, "failed to remove rung %s (%q) of video #%s: %v", label, key, id, err)
		}
	}

	if err := s.strg.RemoveFile(ctx, v.Bucket, v.ObjectKey); err != nil && !errors.Is(err, ErrObjectNotFound) {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.DeleteVideoDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting cache for video #%s: %v", id, err)
	}
	return nil
}
