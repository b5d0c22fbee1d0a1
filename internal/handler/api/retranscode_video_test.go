package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/videotube/videos-ms-go/internal/mock"
	video "github.com/videotube/videos-ms-go/internal/usecase/video"
)

func TestRetranscodeVideoHandler(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"happy path", nil, http.StatusAccepted},
		{"video not found", video.ErrVideoNotFound, http.StatusNotFound},
		{"not terminal", errors.New("video status should be terminal to be retranscoded, got \"in-progress\""), http.StatusConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.MockRetranscoder{Err: tc.svcErr}
			h := RetranscodeVideoHandler(svc)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestWithVideoID("POST", "/videos/"+testID.String()+"/retranscode"))

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d (body %q)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if !svc.Called || svc.ID != testID {
				t.Errorf("service called=%v with ID %q; want call with %q", svc.Called, svc.ID, testID)
			}
		})
	}
}
