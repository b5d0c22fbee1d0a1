package integration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/videotube/videos-ms-go/internal/cache"
	"github.com/videotube/videos-ms-go/internal/migration"
	"github.com/videotube/videos-ms-go/internal/model"
	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/repository/mariadb"
	videoSvc "github.com/videotube/videos-ms-go/internal/usecase/video"
	msuuid "github.com/videotube/videos-ms-go/internal/uuid"
	"github.com/videotube/videos-ms-go/test/testutil"
)

// stubProber reports fixed source dimensions instead of shelling out to
// ffprobe, so the pipeline can run without real video files.
type stubProber struct {
	info port.SourceInfo
	err  error
}

func (p *stubProber) Probe(ctx context.Context, path string) (port.SourceInfo, error) {
	if p.err != nil {
		return port.SourceInfo{}, p.err
	}
	if _, err := os.Stat(path); err != nil {
		return port.SourceInfo{}, err
	}
	return p.info, nil
}

// stubEncoder writes a small marker file per rung instead of running ffmpeg.
type stubEncoder struct{}

func (e *stubEncoder) EncodeRung(ctx context.Context, inputPath, outputPath string, width, height int) error {
	if _, err := os.Stat(inputPath); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte(fmt.Sprintf("encoded %dx%d", width, height)), 0o644)
}

type pipelineEnv struct {
	repo *mariadb.VideoRepository
	id   msuuid.UUID
	key  string
}

// setupPipeline migrates a fresh database, provisions the bucket and seeds
// one video whose original already sits at its durable key.
func setupPipeline(t *testing.T) *pipelineEnv {
	t.Helper()
	ctx := context.Background()

	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	t.Cleanup(func() { testDB.Cleanup() })
	if err := migration.MigrateUp(testDB.DB); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	bCleanup, err := testutil.SetupTestBucket(minioEndpoint, minioAccessKey, minioSecretKey, testBucket)
	if err != nil {
		t.Fatalf("setup bucket: %v", err)
	}
	t.Cleanup(func() { bCleanup() })

	repo := mariadb.NewVideoRepository(testDB.DB)

	id := msuuid.NewUUID()
	originalKey := videoSvc.OriginalKey(id, "movie.mp4")
	v := &model.Video{
		ID:                   id,
		Title:                "Movie",
		Bucket:               testBucket,
		ObjectKey:            originalKey,
		TranscodingStatus:    model.TranscodingStatusPending,
		Resolutions:          model.Resolutions{},
		AvailableResolutions: model.ResolutionList{},
	}
	if err := repo.Create(ctx, v); err != nil {
		t.Fatalf("insert video: %v", err)
	}

	content := bytes.Repeat([]byte("v"), 8192)
	if err := GlobalStrg.SaveFile(
		ctx,
		testBucket,
		originalKey,
		bytes.NewReader(content),
		int64(len(content)),
		map[string]string{"Content-Type": "video/mp4"},
	); err != nil {
		t.Fatalf("upload original: %v", err)
	}

	return &pipelineEnv{repo: repo, id: id, key: originalKey}
}

func transcoderCfg(t *testing.T) videoSvc.TranscoderConfig {
	t.Helper()
	return videoSvc.TranscoderConfig{
		Bucket:      testBucket,
		WorkDir:     t.TempDir(),
		Owner:       "it-worker",
		LeaseTTL:    time.Minute,
		RungTimeout: 30 * time.Second,
	}
}

func TestTranscodeVideoIntegration_Success(t *testing.T) {
	ctx := context.Background()
	env := setupPipeline(t)

	rdb := cache.NewCache(GlobalRedisAddr, "")
	prober := &stubProber{info: port.SourceInfo{Width: 1920, Height: 1080, DurationSeconds: 63}}
	svc := videoSvc.NewVideoTranscoder(env.repo, GlobalStrg, prober, &stubEncoder{}, rdb, transcoderCfg(t))

	if err := svc.TranscodeVideo(ctx, port.TranscodeVideoInput{ID: env.id, InputKey: env.key}); err != nil {
		t.Fatalf("TranscodeVideo returned error: %v", err)
	}

	fromDB, err := env.repo.GetByID(ctx, env.id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fromDB.TranscodingStatus != model.TranscodingStatusCompleted {
		t.Fatalf("status = %q; want %q", fromDB.TranscodingStatus, model.TranscodingStatusCompleted)
	}
	if fromDB.DurationSeconds == nil || *fromDB.DurationSeconds != 63 {
		t.Errorf("duration = %v; want 63", fromDB.DurationSeconds)
	}
	if fromDB.LeaseOwner != nil {
		t.Errorf("lease owner should be released, got %q", *fromDB.LeaseOwner)
	}

	wantLabels := model.ResolutionList{model.Resolution1080p, model.Resolution720p, model.Resolution480p, model.Resolution360p}
	if len(fromDB.AvailableResolutions) != len(wantLabels) {
		t.Fatalf("available resolutions = %v; want %v", fromDB.AvailableResolutions, wantLabels)
	}
	for i, label := range wantLabels {
		if fromDB.AvailableResolutions[i] != label {
			t.Errorf("available[%d] = %q; want %q", i, fromDB.AvailableResolutions[i], label)
		}

		key, ok := fromDB.Resolutions[label]
		if !ok {
			t.Errorf("no object key recorded for %q", label)
			continue
		}
		exists, err := GlobalStrg.FileExists(ctx, testBucket, key)
		if err != nil {
			t.Fatalf("checking rung %q: %v", label, err)
		}
		if !exists {
			t.Errorf("rung object %q missing from bucket", key)
		}
	}
}

func TestTranscodeVideoIntegration_ProbeFailureIsTerminal(t *testing.T) {
	ctx := context.Background()
	env := setupPipeline(t)

	rdb := cache.NewCache(GlobalRedisAddr, "")
	prober := &stubProber{err: errors.New("moov atom not found")}
	svc := videoSvc.NewVideoTranscoder(env.repo, GlobalStrg, prober, &stubEncoder{}, rdb, transcoderCfg(t))

	if err := svc.TranscodeVideo(ctx, port.TranscodeVideoInput{ID: env.id, InputKey: env.key}); err != nil {
		t.Fatalf("a terminal failure should not surface an error, got: %v", err)
	}

	fromDB, err := env.repo.GetByID(ctx, env.id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fromDB.TranscodingStatus != model.TranscodingStatusFailed {
		t.Fatalf("status = %q; want %q", fromDB.TranscodingStatus, model.TranscodingStatusFailed)
	}
	if fromDB.FailureMessage == nil || *fromDB.FailureMessage == "" {
		t.Error("expected a failure message to be recorded")
	}
	if len(fromDB.Resolutions) != 0 {
		t.Errorf("failed video should have no resolutions, got %+v", fromDB.Resolutions)
	}
}

func TestTranscodeVideoIntegration_LeaseContention(t *testing.T) {
	ctx := context.Background()
	env := setupPipeline(t)

	if err := env.repo.ClaimForTranscoding(ctx, env.id, "other-worker", time.Minute); err != nil {
		t.Fatalf("pre-claim: %v", err)
	}

	rdb := cache.NewCache(GlobalRedisAddr, "")
	prober := &stubProber{info: port.SourceInfo{Width: 1920, Height: 1080, DurationSeconds: 63}}
	svc := videoSvc.NewVideoTranscoder(env.repo, GlobalStrg, prober, &stubEncoder{}, rdb, transcoderCfg(t))

	err := svc.TranscodeVideo(ctx, port.TranscodeVideoInput{ID: env.id, InputKey: env.key})
	if !errors.Is(err, videoSvc.ErrLeaseHeld) {
		t.Fatalf("expected ErrLeaseHeld, got %v", err)
	}

	fromDB, err := env.repo.GetByID(ctx, env.id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fromDB.TranscodingStatus != model.TranscodingStatusInProgress {
		t.Errorf("status = %q; want %q", fromDB.TranscodingStatus, model.TranscodingStatusInProgress)
	}
	if fromDB.LeaseOwner == nil || *fromDB.LeaseOwner != "other-worker" {
		t.Errorf("lease owner = %v; want other-worker", fromDB.LeaseOwner)
	}
}
