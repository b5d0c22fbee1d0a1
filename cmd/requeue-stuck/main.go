package main

import (
	"context"
	"log"

	"github.com/videotube/videos-ms-go/internal/config"
	"github.com/videotube/videos-ms-go/internal/db"
	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/repository/mariadb"
	"github.com/videotube/videos-ms-go/internal/task"
	videoSvc "github.com/videotube/videos-ms-go/internal/usecase/video"
)

// Sweeps videos whose worker died mid-transcode and puts them back on the
// queue. Meant to run periodically, e.g. from cron.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("DB close error: %v", err)
		}
	}()

	dispatcher := initDispatcher(cfg)
	repo := mariadb.NewVideoRepository(database.DB)

	requeuer := videoSvc.NewStuckRequeuer(repo, dispatcher)
	if err := requeuer.RequeueStuck(context.Background()); err != nil {
		log.Fatalf("❌  Stuck requeue failed: %v", err)
	}
	log.Println("✅  Stuck requeue completed")
}

func initDb(cfg *config.Settings) *db.Database {
	log.Println("initialising database...")
	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		log.Fatalf("❌  Failed to connect to db: %v", err)
	}
	return database
}

func initDispatcher(cfg *config.Settings) port.TaskDispatcher {
	if cfg.RedisAddr == "" {
		log.Fatalf("❌  Redis not configured: this command requires a running Redis instance")
	}
	return task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
}
