package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/videotube/videos-ms-go/internal/cache"
	"github.com/videotube/videos-ms-go/internal/config"
	"github.com/videotube/videos-ms-go/internal/db"
	"github.com/videotube/videos-ms-go/internal/handler"
	"github.com/videotube/videos-ms-go/internal/handler/api"
	"github.com/videotube/videos-ms-go/internal/logger"
	cMiddleware "github.com/videotube/videos-ms-go/internal/middleware"
	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/repository/mariadb"
	"github.com/videotube/videos-ms-go/internal/storage"
	"github.com/videotube/videos-ms-go/internal/task"
	videoSvc "github.com/videotube/videos-ms-go/internal/usecase/video"
	msuuid "github.com/videotube/videos-ms-go/internal/uuid"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(cfg.JWTPublicKey)

	strg := initStorage(ctx, cfg)
	if err := strg.InitBucket(cfg.Bucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.Bucket, err)
		os.Exit(1)
	}

	videoRepo := mariadb.NewVideoRepository(database.DB)
	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, caching and task dispatch are disabled")
	}

	uploadLinkGeneratorSvc := videoSvc.NewUploadLinkGenerator(videoRepo, strg, msuuid.NewUUID, cfg.Bucket)
	r.Post("/videos/generate_upload_link", api.GenerateUploadLinkHandler(uploadLinkGeneratorSvc))

	uploadFinaliserSvc := videoSvc.NewUploadFinaliser(videoRepo, strg, dispatcher)
	r.With(cMiddleware.WithVideoID()).
		Post("/videos/finalise_upload/{id}", api.FinaliseUploadHandler(uploadFinaliserSvc))

	getVideoSvc := videoSvc.NewVideoGetter(videoRepo, ca, strg)
	r.With(cMiddleware.WithVideoID()).
		Get("/videos/{id}", api.GetVideoHandler(getVideoSvc))

	deleteVideoSvc := videoSvc.NewVideoDeleter(videoRepo, ca, strg)
	r.With(cMiddleware.WithVideoID()).
		Delete("/videos/{id}", api.DeleteVideoHandler(deleteVideoSvc))

	togglePublishSvc := videoSvc.NewPublishToggler(videoRepo, ca)
	r.With(cMiddleware.WithVideoID()).
		Post("/videos/{id}/toggle_publish", api.TogglePublishHandler(togglePublishSvc))

	retranscodeSvc := videoSvc.NewRetranscoder(videoRepo, dispatcher)
	r.With(cMiddleware.WithVideoID()).
		Post("/videos/{id}/retranscode", api.RetranscodeVideoHandler(retranscodeSvc))

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(jwtKey string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithDSTAuth(jwtKey))

	r.NotFound(handler.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
		cfg.MinioPublicBaseURL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
