package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/videotube/videos-ms-go/internal/mock"
	"github.com/videotube/videos-ms-go/internal/port"
	msuuid "github.com/videotube/videos-ms-go/internal/uuid"
)

var testID = msuuid.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))

func TestGenerateUploadLinkHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcOut     port.GenerateUploadLinkOutput
		svcErr     error
		wantStatus int

		wantOutput       bool
		wantErrorMap     map[string]string
		wantBodyContains string
	}{
		{
			name:       "happy path",
			body:       `{"title":"My clip","filename":"clip.mp4"}`,
			svcOut:     port.GenerateUploadLinkOutput{ID: testID, URL: "https://cdn.example.com/presigned"},
			wantStatus: http.StatusCreated,
			wantOutput: true,
		},
		{
			name:             "invalid JSON",
			body:             `{"title":`, // malformed
			wantStatus:       http.StatusBadRequest,
			wantBodyContains: "Invalid request",
		},
		{
			name:         "validation error: empty title",
			body:         `{"title":"","filename":"clip.mp4"}`,
			wantStatus:   http.StatusBadRequest,
			wantErrorMap: map[string]string{"title": "required"},
		},
		{
			name:         "validation error: missing filename",
			body:         `{"title":"My clip"}`,
			wantStatus:   http.StatusBadRequest,
			wantErrorMap: map[string]string{"filename": "required"},
		},
		{
			name:         "validation error: title too long",
			body:         fmt.Sprintf(`{"title":%q,"filename":"clip.mp4"}`, strings.Repeat("a", 121)),
			wantStatus:   http.StatusBadRequest,
			wantErrorMap: map[string]string{"title": "max"},
		},
		{
			name:             "service error",
			body:             `{"title":"My clip","filename":"clip.mp4"}`,
			svcErr:           errors.New("boom"),
			wantStatus:       http.StatusInternalServerError,
			wantBodyContains: "Could not generate upload link",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.MockUploadLinkGenerator{Out: tc.svcOut, Err: tc.svcErr}
			h := GenerateUploadLinkHandler(svc)

			req := httptest.NewRequest("POST", "/videos/upload-link", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %q; want application/json", ct)
			}

			switch {
			case tc.wantOutput:
				var out port.GenerateUploadLinkOutput
				if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
					t.Fatalf("decoding response: %v", err)
				}
				if out.ID != tc.svcOut.ID || out.URL != tc.svcOut.URL {
					t.Errorf("unexpected output %+v", out)
				}
				if svc.In.Title != "My clip" || svc.In.Filename != "clip.mp4" {
					t.Errorf("unexpected service input %+v", svc.In)
				}
			case tc.wantErrorMap != nil:
				var errs map[string]string
				if err := json.Unmarshal(rec.Body.Bytes(), &errs); err != nil {
					t.Fatalf("decoding validation errors: %v", err)
				}
				for field, tag := range tc.wantErrorMap {
					if errs[field] != tag {
						t.Errorf("errs[%q] = %q; want %q", field, errs[field], tag)
					}
				}
				if svc.Called {
					t.Error("service must not run on validation failure")
				}
			default:
				if !strings.Contains(rec.Body.String(), tc.wantBodyContains) {
					t.Errorf("body %q does not contain %q", rec.Body.String(), tc.wantBodyContains)
				}
			}
		})
	}
}
