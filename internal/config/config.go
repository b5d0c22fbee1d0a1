package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	RedisAddr     string
	RedisPassword string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	// MinioPublicBaseURL overrides the URL prefix used when building public
	// links to stored objects (e.g. a CDN in front of the bucket). When empty
	// the endpoint itself is used.
	MinioPublicBaseURL string
	Bucket             string

	FFmpegBin  string
	FFprobeBin string
	WorkDir    string
	// RungTimeout bounds a single encode invocation so a runaway encoder
	// cannot stall a worker forever.
	RungTimeout time.Duration
	// TranscodeLeaseTTL is how long a worker's exclusive claim on a video
	// stays valid before another worker may take the job over.
	TranscodeLeaseTTL time.Duration
	WorkerConcurrency int

	JWTPublicKey string
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	viper.SetDefault("MINIO_BUCKET", "videos")
	viper.SetDefault("FFMPEG_BIN", "ffmpeg")
	viper.SetDefault("FFPROBE_BIN", "ffprobe")
	viper.SetDefault("TRANSCODE_WORK_DIR", "/tmp/videos-ms")
	viper.SetDefault("TRANSCODE_RUNG_TIMEOUT", 900)
	viper.SetDefault("TRANSCODE_LEASE_TTL", 1800)
	viper.SetDefault("WORKER_CONCURRENCY", 4)

	if !viper.IsSet("MARIADB_DSN") {
		return nil, fmt.Errorf("MARIADB_DSN is required")
	}
	if !viper.IsSet("MARIADB_MAX_OPEN_CONN") {
		return nil, fmt.Errorf("MARIADB_MAX_OPEN_CONN is required")
	}
	if !viper.IsSet("MARIADB_MAX_IDLE_CONNS") {
		return nil, fmt.Errorf("MARIADB_MAX_IDLE_CONNS is required")
	}
	if !viper.IsSet("MARIADB_CONN_MAX_LIFETIME") {
		return nil, fmt.Errorf("MARIADB_CONN_MAX_LIFETIME is required")
	}
	if !viper.IsSet("SERVER_PORT") {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}
	if !viper.IsSet("MINIO_ENDPOINT") {
		return nil, fmt.Errorf("MINIO_ENDPOINT is required")
	}
	if !viper.IsSet("MINIO_ACCESS_KEY") {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY is required")
	}
	if !viper.IsSet("MINIO_SECRET_KEY") {
		return nil, fmt.Errorf("MINIO_SECRET_KEY is required")
	}

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		MinioEndpoint:      viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey:     viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey:     viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:        viper.GetBool("MINIO_USE_SSL"),
		MinioPublicBaseURL: viper.GetString("MINIO_PUBLIC_BASE_URL"),
		Bucket:             viper.GetString("MINIO_BUCKET"),

		FFmpegBin:         viper.GetString("FFMPEG_BIN"),
		FFprobeBin:        viper.GetString("FFPROBE_BIN"),
		WorkDir:           viper.GetString("TRANSCODE_WORK_DIR"),
		RungTimeout:       time.Duration(viper.GetInt("TRANSCODE_RUNG_TIMEOUT")) * time.Second,
		TranscodeLeaseTTL: time.Duration(viper.GetInt("TRANSCODE_LEASE_TTL")) * time.Second,
		WorkerConcurrency: viper.GetInt("WORKER_CONCURRENCY"),

		JWTPublicKey: viper.GetString("JWT_PUBLIC_KEY"),
	}, nil
}
