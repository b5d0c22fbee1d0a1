package video

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/videotube/videos-ms-go/internal/mock"
	"github.com/videotube/videos-ms-go/internal/model"
)

func TestTogglePublish_Publish(t *testing.T) {
	repo := &mock.MockVideoRepo{VideoRecord: completedVideo()}
	cache := &mock.MockCache{}
	svc := NewPublishToggler(repo, cache)

	published, err := svc.TogglePublish(context.Background(), testID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !published {
		t.Error("expected the video to be published")
	}
	if repo.Updated == nil || !repo.Updated.IsPublished {
		t.Error("expected the record to be updated as published")
	}
	if !cache.DeleteCalled {
		t.Error("expected the cache entry to be invalidated")
	}
}

func TestTogglePublish_Unpublish(t *testing.T) {
	v := completedVideo()
	v.IsPublished = true
	svc := NewPublishToggler(&mock.MockVideoRepo{VideoRecord: v}, &mock.MockCache{})

	published, err := svc.TogglePublish(context.Background(), testID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if published {
		t.Error("expected the video to be unpublished")
	}
}

func TestTogglePublish_NotCompleted(t *testing.T) {
	v := completedVideo()
	v.TranscodingStatus = model.TranscodingStatusInProgress
	svc := NewPublishToggler(&mock.MockVideoRepo{VideoRecord: v}, &mock.MockCache{})

	_, err := svc.TogglePublish(context.Background(), testID)
	if err == nil || !strings.Contains(err.Error(), "completed") {
		t.Fatalf("expected a status error, got %v", err)
	}
}

func TestTogglePublish_UnpublishFailedVideo(t *testing.T) {
	// unpublishing stays possible whatever the transcoding state
	v := completedVideo()
	v.TranscodingStatus = model.TranscodingStatusFailed
	v.IsPublished = true
	svc := NewPublishToggler(&mock.MockVideoRepo{VideoRecord: v}, &mock.MockCache{})

	published, err := svc.TogglePublish(context.Background(), testID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if published {
		t.Error("expected the video to be unpublished")
	}
}

func TestTogglePublish_NotFound(t *testing.T) {
	svc := NewPublishToggler(&mock.MockVideoRepo{GetErr: sql.ErrNoRows}, &mock.MockCache{})

	if _, err := svc.TogglePublish(context.Background(), testID); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}
