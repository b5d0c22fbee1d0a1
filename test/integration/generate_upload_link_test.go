package integration

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/videotube/videos-ms-go/internal/migration"
	"github.com/videotube/videos-ms-go/internal/model"
	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/repository/mariadb"
	videoSvc "github.com/videotube/videos-ms-go/internal/usecase/video"
	msuuid "github.com/videotube/videos-ms-go/internal/uuid"
	"github.com/videotube/videos-ms-go/test/testutil"
)

const testBucket = "videos"

func TestGenerateUploadLinkIntegration_Success(t *testing.T) {
	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	defer testDB.Cleanup()
	database := testDB.DB
	if err := migration.MigrateUp(database); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	bCleanup, err := testutil.SetupTestBucket(minioEndpoint, minioAccessKey, minioSecretKey, testBucket)
	if err != nil {
		t.Fatalf("setup bucket: %v", err)
	}
	defer bCleanup()

	videoRepo := mariadb.NewVideoRepository(database)
	svc := videoSvc.NewUploadLinkGenerator(videoRepo, GlobalStrg, msuuid.NewUUID, testBucket)

	in := port.GenerateUploadLinkInput{
		Title:    "Launch keynote",
		Filename: "keynote.mp4",
	}

	out, err := svc.GenerateUploadLink(context.Background(), in)
	if err != nil {
		t.Fatalf("GenerateUploadLink returned error: %v", err)
	}

	if out.ID == msuuid.UUID(uuid.Nil) {
		t.Fatal("expected non-empty ID")
	}
	if out.URL == "" {
		t.Fatal("expected non-empty presigned URL")
	}

	u, err := url.Parse(out.URL)
	if err != nil {
		t.Fatalf("invalid URL %q: %v", out.URL, err)
	}
	wantKey := videoSvc.StagingKey(out.ID, in.Filename)
	wantPath := "/" + testBucket + "/" + wantKey
	if u.Path != wantPath {
		t.Errorf("URL path = %q; want %q", u.Path, wantPath)
	}

	// the presigned link must actually accept a PUT
	body := bytes.Repeat([]byte("x"), 2048)
	req, err := http.NewRequest(http.MethodPut, out.URL, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build PUT request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT to presigned URL: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d; want 200", resp.StatusCode)
	}

	fromDB, err := videoRepo.GetByID(context.Background(), out.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fromDB.Title != in.Title {
		t.Errorf("title = %q; want %q", fromDB.Title, in.Title)
	}
	if fromDB.Bucket != testBucket {
		t.Errorf("bucket = %q; want %q", fromDB.Bucket, testBucket)
	}
	if !strings.HasPrefix(fromDB.ObjectKey, "staging/") {
		t.Errorf("object key %q should point at the staging area", fromDB.ObjectKey)
	}
	if fromDB.TranscodingStatus != model.TranscodingStatusPending {
		t.Errorf("status = %q; want %q", fromDB.TranscodingStatus, model.TranscodingStatusPending)
	}
	if len(fromDB.Resolutions) != 0 {
		t.Errorf("expected empty resolutions, got %+v", fromDB.Resolutions)
	}
}
