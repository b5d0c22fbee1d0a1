package video

import (
	"context"
	"errors"
	"testing"

	"github.com/videotube/videos-ms-go/internal/mock"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

func TestRequeueStuck_Success(t *testing.T) {
	v := completedVideo()
	repo := &mock.MockVideoRepo{VideoRecord: v, ListStaleOut: []uuid.UUID{testID}}
	tasks := &mock.MockDispatcher{}
	svc := NewStuckRequeuer(repo, tasks)

	if err := svc.RequeueStuck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.ListStaleCalled {
		t.Fatal("expected the stale listing to run")
	}
	if len(tasks.IDs) != 1 || tasks.IDs[0] != testID || tasks.InputKeys[0] != v.ObjectKey {
		t.Errorf("expected one task for %q, got %+v/%+v", v.ObjectKey, tasks.IDs, tasks.InputKeys)
	}
}

func TestRequeueStuck_Empty(t *testing.T) {
	tasks := &mock.MockDispatcher{}
	svc := NewStuckRequeuer(&mock.MockVideoRepo{}, tasks)

	if err := svc.RequeueStuck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tasks.Called {
		t.Error("expected no task when nothing is stuck")
	}
}

func TestRequeueStuck_ListError(t *testing.T) {
	repo := &mock.MockVideoRepo{ListStaleErr: errors.New("db fail")}
	svc := NewStuckRequeuer(repo, &mock.MockDispatcher{})

	if err := svc.RequeueStuck(context.Background()); err == nil || err.Error() != "db fail" {
		t.Fatalf("expected db fail, got %v", err)
	}
}

func TestRequeueStuck_EnqueueErrorContinues(t *testing.T) {
	repo := &mock.MockVideoRepo{VideoRecord: completedVideo(), ListStaleOut: []uuid.UUID{testID, testID}}
	tasks := &mock.MockDispatcher{EnqueueErr: errors.New("redis down")}
	svc := NewStuckRequeuer(repo, tasks)

	// enqueue failures are logged per video, the sweep itself succeeds
	if err := svc.RequeueStuck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
