package video

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/videotube/videos-ms-go/internal/logger"
	"github.com/videotube/videos-ms-go/internal/model"
	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

const videoDetailsTTL = 10 * time.Minute

type videoGetterSrv struct {
	repo  port.VideoRepository
	cache port.Cache
	strg  port.Storage
}

// compile-time check: *videoGetterSrv must satisfy port.VideoGetter
var _ port.VideoGetter = (*videoGetterSrv)(nil)

// NewVideoGetter constructs a VideoGetter implementation.
func NewVideoGetter(repo port.VideoRepository, cache port.Cache, strg port.Storage) port.VideoGetter {
	return &videoGetterSrv{repo, cache, strg}
}

// GetVideo returns the details of a video, with per-resolution playback
// URLs once transcoding completed. Details are cached until the next
// terminal status change invalidates them; the view counter is bumped on
// every call regardless of cache state.
func (s *videoGetterSrv) GetVideo(ctx context.Context, id uuid.UUID) (port.GetVideoOutput, error) {
	if err := s.repo.IncrementViewCount(ctx, id); err != nil {
		logger.Warnf(ctx, "failed to increment view count for video #%s: %v", id, err)
	}

	if data, err := s.cache.GetVideoDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed reading cache for video #%s: %v", id, err)
	} else if data != nil {
		var out port.GetVideoOutput
		if err := json.Unmarshal(data, &out); err == nil {
			return out, nil
		}
		logger.Warnf(ctx, "discarding malformed cache entry for video #%s", id)
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.GetVideoOutput{}, ErrVideoNotFound
		}
		return port.GetVideoOutput{}, err
	}

	out := port.GetVideoOutput{
		ID:                   v.ID,
		Title:                v.Title,
		Description:          v.Description,
		TranscodingStatus:    v.TranscodingStatus,
		Resolutions:          s.playbackURLs(v),
		AvailableResolutions: v.AvailableResolutions,
		DurationSeconds:      v.DurationSeconds,
		ViewCount:            v.ViewCount,
		IsPublished:          v.IsPublished,
	}

	if data, err := json.Marshal(out); err == nil {
		s.cache.SetVideoDetails(ctx, id, data, time.Now().Add(videoDetailsTTL))
	}

	return out, nil
}

// playbackURLs maps the stored object keys to public URLs.
func (s *videoGetterSrv) playbackURLs(v *model.Video) model.Resolutions {
	urls := make(model.Resolutions, len(v.Resolutions))
	for label, key := range v.Resolutions {
		urls[label] = s.strg.PublicURL(v.Bucket, key)
	}
	return urls
}
