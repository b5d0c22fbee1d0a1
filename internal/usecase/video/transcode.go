package video

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/videotube/videos-ms-go/internal/logger"
	"github.com/videotube/videos-ms-go/internal/model"
	"github.com/videotube/videos-ms-go/internal/planner"
	"github.com/videotube/videos-ms-go/internal/port"
)

// TranscoderConfig carries the per-worker settings of the pipeline.
type TranscoderConfig struct {
	Bucket string
	// WorkDir hosts the per-job scratch directories.
	WorkDir string
	// Owner identifies this worker in lease claims.
	Owner       string
	LeaseTTL    time.Duration
	RungTimeout time.Duration
}

type videoTranscoderSrv struct {
	repo   port.VideoRepository
	strg   port.Storage
	prober port.Prober
	enc    port.Encoder
	cache  port.Cache
	cfg    TranscoderConfig
}

// compile-time check: *videoTranscoderSrv must satisfy port.VideoTranscoder
var _ port.VideoTranscoder = (*videoTranscoderSrv)(nil)

// NewVideoTranscoder constructs a VideoTranscoder implementation.
func NewVideoTranscoder(repo port.VideoRepository, strg port.Storage, prober port.Prober, enc port.Encoder, cache port.Cache, cfg TranscoderConfig) port.VideoTranscoder {
	return &videoTranscoderSrv{repo, strg, prober, enc, cache, cfg}
}

type attemptResult struct {
	resolutions     model.Resolutions
	available       model.ResolutionList
	durationSeconds int
}

// TranscodeVideo runs the whole pipeline for one job: claim the lease, fetch
// the source, probe it, plan the ladder, encode every rung, publish every
// rung, then commit a terminal state.
//
// Returning a non-nil error means the job should be redelivered; permanent
// failures are committed as the terminal failed state and return nil so the
// queue drops the message.
func (s *videoTranscoderSrv) TranscodeVideo(ctx context.Context, in port.TranscodeVideoInput) error {
	if err := s.repo.ClaimForTranscoding(ctx, in.ID, s.cfg.Owner, s.cfg.LeaseTTL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("video #%s: %w", in.ID, ErrVideoNotFound)
		}
		return err
	}

	res, err := s.runAttempt(ctx, in)
	if err != nil {
		if !isPermanent(err) {
			// transient: leave the record in-progress, let the queue
			// redeliver and the lease rules arbitrate the retry
			return err
		}
		logger.Warnf(ctx, "transcode of video #%s failed: %v", in.ID, err)
		if ferr := s.repo.FailTranscoding(ctx, in.ID, err.Error()); ferr != nil {
			if errors.Is(ferr, ErrInvalidStatusTransition) {
				// someone else already committed a terminal state
				logger.Warnf(ctx, "video #%s already terminal, skipping failed commit", in.ID)
				return nil
			}
			return fmt.Errorf("video #%s: %v: %w", in.ID, ferr, ErrPersistFailed)
		}
		s.invalidateCache(ctx, in)
		return nil
	}

	if err := s.repo.CompleteTranscoding(ctx, in.ID, res.resolutions, res.available, res.durationSeconds); err != nil {
		if errors.Is(err, ErrInvalidStatusTransition) {
			logger.Warnf(ctx, "video #%s already terminal, skipping completed commit", in.ID)
			return nil
		}
		// rungs are uploaded; redelivery will re-run the idempotent
		// pipeline and retry the commit
		return fmt.Errorf("video #%s: %v: %w", in.ID, err, ErrPersistFailed)
	}
	s.invalidateCache(ctx, in)

	logger.Infof(ctx, "transcode of video #%s completed with %d resolutions", in.ID, len(res.available))
	return nil
}

// runAttempt executes fetch → probe → plan → encode → publish inside a
// scratch directory that is removed on every exit path. The record is not
// touched here; terminal writes belong to the caller.
func (s *videoTranscoderSrv) runAttempt(ctx context.Context, in port.TranscodeVideoInput) (attemptResult, error) {
	if err := os.MkdirAll(s.cfg.WorkDir, 0o755); err != nil {
		return attemptResult{}, fmt.Errorf("failed to create work dir %q: %w", s.cfg.WorkDir, err)
	}
	scratch, err := os.MkdirTemp(s.cfg.WorkDir, "transcode-"+in.ID.String()+"-")
	if err != nil {
		return attemptResult{}, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			logger.Warnf(ctx, "failed to remove scratch dir %q: %v", scratch, err)
		}
	}()

	sourcePath := filepath.Join(scratch, "source")
	if err := s.fetchSource(ctx, in.InputKey, sourcePath); err != nil {
		return attemptResult{}, err
	}

	info, err := s.prober.Probe(ctx, sourcePath)
	if err != nil {
		return attemptResult{}, fmt.Errorf("%v: %w", err, ErrProbeFailed)
	}

	ladder := planner.PlanLadder(info.Width, info.Height)
	if len(ladder) == 0 {
		// source smaller than the smallest rung: a valid, empty plan
		logger.Infof(ctx, "video #%s (%dx%d) fits no rung, completing with no resolutions", in.ID, info.Width, info.Height)
		return attemptResult{
			resolutions:     model.Resolutions{},
			available:       model.ResolutionList{},
			durationSeconds: info.DurationSeconds,
		}, nil
	}

	// every rung must encode before anything uploads
	artifacts := make(map[model.ResolutionLabel]string, len(ladder))
	for _, rung := range ladder {
		outPath := filepath.Join(scratch, string(rung.Label)+".mp4")
		if err := s.encodeRung(ctx, sourcePath, outPath, rung); err != nil {
			return attemptResult{}, err
		}
		artifacts[rung.Label] = outPath
	}

	resolutions, err := s.publish(ctx, in, ladder, artifacts)
	if err != nil {
		return attemptResult{}, err
	}

	return attemptResult{
		resolutions:     resolutions,
		available:       planner.Labels(ladder),
		durationSeconds: info.DurationSeconds,
	}, nil
}

func (s *videoTranscoderSrv) fetchSource(ctx context.Context, inputKey, destPath string) error {
	// the object client opens reads lazily, so a missing key would only
	// surface mid-copy; stat first to detect absence eagerly
	if _, err := s.strg.StatFile(ctx, s.cfg.Bucket, inputKey); err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return fmt.Errorf("source object %q: %w", inputKey, ErrInputMissing)
		}
		return fmt.Errorf("failed to stat source object %q: %w", inputKey, err)
	}

	reader, err := s.strg.GetFile(ctx, s.cfg.Bucket, inputKey)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return fmt.Errorf("source object %q: %w", inputKey, ErrInputMissing)
		}
		return fmt.Errorf("failed to fetch source object %q: %w", inputKey, err)
	}
	defer func() { _ = reader.Close() }()

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create source file %q: %w", destPath, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, reader); err != nil {
		// the object can vanish between the stat and the read
		if errors.Is(err, ErrObjectNotFound) {
			return fmt.Errorf("source object %q: %w", inputKey, ErrInputMissing)
		}
		return fmt.Errorf("failed to stream source object %q: %w", inputKey, err)
	}
	return nil
}

func (s *videoTranscoderSrv) encodeRung(ctx context.Context, sourcePath, outPath string, rung planner.Rung) error {
	rctx, cancel := context.WithTimeout(ctx, s.cfg.RungTimeout)
	defer cancel()

	if err := s.enc.EncodeRung(rctx, sourcePath, outPath, rung.Width, rung.Height); err != nil {
		if ctx.Err() != nil {
			// worker shutting down, not a fault of the source
			return ctx.Err()
		}
		return fmt.Errorf("rung %s: %v: %w", rung.Label, err, ErrEncodeFailed)
	}
	return nil
}

// publish uploads every encoded rung. A single failed upload fails the whole
// batch: objects already uploaded during this attempt are deleted best-effort
// so storage does not accumulate rungs the record will never reference.
func (s *videoTranscoderSrv) publish(ctx context.Context, in port.TranscodeVideoInput, ladder []planner.Rung, artifacts map[model.ResolutionLabel]string) (model.Resolutions, error) {
	resolutions := make(model.Resolutions, len(ladder))
	var uploaded []string

	for _, rung := range ladder {
		key := TranscodedKey(in.ID, rung.Label)
		if err := s.uploadArtifact(ctx, artifacts[rung.Label], key); err != nil {
			s.rollbackUploads(ctx, uploaded)
			return nil, fmt.Errorf("rung %s: %v: %w", rung.Label, err, ErrUploadFailed)
		}
		uploaded = append(uploaded, key)
		resolutions[rung.Label] = key
	}
	return resolutions, nil
}

func (s *videoTranscoderSrv) uploadArtifact(ctx context.Context, path, key string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open artifact %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat artifact %q: %w", path, err)
	}

	return s.strg.SaveFile(ctx, s.cfg.Bucket, key, f, stat.Size(), map[string]string{
		"Content-Type": "video/mp4",
	})
}

func (s *videoTranscoderSrv) rollbackUploads(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.strg.RemoveFile(ctx, s.cfg.Bucket, key); err != nil {
			logger.Warnf(ctx, "failed to roll back uploaded rung %q: %v", key, err)
		}
	}
}

func (s *videoTranscoderSrv) invalidateCache(ctx context.Context, in port.TranscodeVideoInput) {
	if err := s.cache.DeleteVideoDetails(ctx, in.ID); err != nil {
		logger.Warnf(ctx, "failed deleting cache for video #%s: %v", in.ID, err)
	}
}

// isPermanent reports whether a pipeline error warrants the terminal failed
// state. Anything else is treated as transient and left to redelivery.
func isPermanent(err error) bool {
	return errors.Is(err, ErrInputMissing) ||
		errors.Is(err, ErrProbeFailed) ||
		errors.Is(err, ErrEncodeFailed) ||
		errors.Is(err, ErrUploadFailed)
}
