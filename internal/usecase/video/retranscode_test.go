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

func TestRetranscodeVideo_FailedVideo(t *testing.T) {
	v := completedVideo()
	v.TranscodingStatus = model.TranscodingStatusFailed
	tasks := &mock.MockDispatcher{}
	svc := NewRetranscoder(&mock.MockVideoRepo{VideoRecord: v}, tasks)

	if err := svc.RetranscodeVideo(context.Background(), testID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tasks.Called || tasks.InputKeys[0] != v.ObjectKey {
		t.Errorf("expected a task referencing %q, got %+v", v.ObjectKey, tasks.InputKeys)
	}
}

func TestRetranscodeVideo_CompletedVideo(t *testing.T) {
	tasks := &mock.MockDispatcher{}
	svc := NewRetranscoder(&mock.MockVideoRepo{VideoRecord: completedVideo()}, tasks)

	if err := svc.RetranscodeVideo(context.Background(), testID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tasks.Called {
		t.Error("expected a transcode task")
	}
}

func TestRetranscodeVideo_InProgress(t *testing.T) {
	v := completedVideo()
	v.TranscodingStatus = model.TranscodingStatusInProgress
	tasks := &mock.MockDispatcher{}
	svc := NewRetranscoder(&mock.MockVideoRepo{VideoRecord: v}, tasks)

	err := svc.RetranscodeVideo(context.Background(), testID)
	if err == nil || !strings.Contains(err.Error(), "terminal") {
		t.Fatalf("expected a status error, got %v", err)
	}
	if tasks.Called {
		t.Error("an in-flight video must not be resubmitted")
	}
}

func TestRetranscodeVideo_NotFound(t *testing.T) {
	svc := NewRetranscoder(&mock.MockVideoRepo{GetErr: sql.ErrNoRows}, &mock.MockDispatcher{})

	if err := svc.RetranscodeVideo(context.Background(), testID); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestRetranscodeVideo_EnqueueError(t *testing.T) {
	tasks := &mock.MockDispatcher{EnqueueErr: errors.New("redis down")}
	svc := NewRetranscoder(&mock.MockVideoRepo{VideoRecord: completedVideo()}, tasks)

	err := svc.RetranscodeVideo(context.Background(), testID)
	if err == nil || !strings.Contains(err.Error(), "redis down") {
		t.Fatalf("expected the enqueue error back, got %v", err)
	}
}
