package video

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/videotube/videos-ms-go/internal/logger"
	"github.com/videotube/videos-ms-go/internal/model"
	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

type publishTogglerSrv struct {
	repo  port.VideoRepository
	cache port.Cache
}

// compile-time check: *publishTogglerSrv must satisfy port.PublishToggler
var _ port.PublishToggler = (*publishTogglerSrv)(nil)

// NewPublishToggler constructs a PublishToggler implementation.
func NewPublishToggler(repo port.VideoRepository, cache port.Cache) port.PublishToggler {
	return &publishTogglerSrv{repo, cache}
}

// TogglePublish flips the listing visibility and returns the new value.
// Publishing requires a completed transcode; unpublishing is always allowed.
func (s *publishTogglerSrv) TogglePublish(ctx context.Context, id uuid.UUID) (bool, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrVideoNotFound
		}
		return false, err
	}

	if !v.IsPublished && v.TranscodingStatus != model.TranscodingStatusCompleted {
		return false, fmt.Errorf("video status should be %q to be published, got %q", model.TranscodingStatusCompleted, v.TranscodingStatus)
	}

	v.IsPublished = !v.IsPublished
	if err := s.repo.Update(ctx, v); err != nil {
		return false, err
	}

	if err := s.cache.DeleteVideoDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting cache for video #%s: %v", id, err)
	}
	return v.IsPublished, nil
}
