package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/videotube/videos-ms-go/internal/mock"
	video "github.com/videotube/videos-ms-go/internal/usecase/video"
)

func TestDeleteVideoHandler(t *testing.T) {
	tests := []struct {
		name       string
		withID     bool
		svcErr     error
		wantStatus int
	}{
		{"happy path", true, nil, http.StatusNoContent},
		{"missing ID", false, nil, http.StatusBadRequest},
		{"video not found", true, video.ErrVideoNotFound, http.StatusNotFound},
		{"service error", true, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.MockVideoDeleter{Err: tc.svcErr}
			h := DeleteVideoHandler(svc)

			var req *http.Request
			if tc.withID {
				req = requestWithVideoID("DELETE", "/videos/"+testID.String())
			} else {
				req = httptest.NewRequest("DELETE", "/videos/x", nil)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if tc.withID && svc.ID != testID {
				t.Errorf("service called with ID %q; want %q", svc.ID, testID)
			}
		})
	}
}
