package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/videotube/videos-ms-go/internal/cache"
	"github.com/videotube/videos-ms-go/internal/config"
	"github.com/videotube/videos-ms-go/internal/db"
	"github.com/videotube/videos-ms-go/internal/ffmpeg"
	workerHandler "github.com/videotube/videos-ms-go/internal/handler/worker"
	"github.com/videotube/videos-ms-go/internal/logger"
	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/repository/mariadb"
	"github.com/videotube/videos-ms-go/internal/storage"
	"github.com/videotube/videos-ms-go/internal/task"
	videoSvc "github.com/videotube/videos-ms-go/internal/usecase/video"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg := initStorage(cfg)
	if err := strg.InitBucket(cfg.Bucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.Bucket, err)
		os.Exit(1)
	}

	repo := mariadb.NewVideoRepository(database.DB)
	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
	transcodeSvc := videoSvc.NewVideoTranscoder(
		repo,
		strg,
		ffmpeg.NewProber(cfg.FFprobeBin),
		ffmpeg.NewEncoder(cfg.FFmpegBin),
		ca,
		videoSvc.TranscoderConfig{
			Bucket:      cfg.Bucket,
			WorkDir:     cfg.WorkDir,
			Owner:       workerOwner(),
			LeaseTTL:    cfg.TranscodeLeaseTTL,
			RungTimeout: cfg.RungTimeout,
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeTranscodeVideo, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseTranscodeVideoPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.TranscodeVideoHandler(ctx, p, transcodeSvc)
	})

	runWorker(ctx, mux, cfg, database)
}

// workerOwner builds the lease owner identity, stable for this process.
func workerOwner() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
		cfg.MinioPublicBaseURL,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: cfg.WorkerConcurrency})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish in-flight tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()
	<-shutdownCtx.Done()

	logger.Info(ctx, "✅  Worker gracefully stopped")
}
