package integration

import (
	"fmt"
	"os"
	"testing"

	"github.com/videotube/videos-ms-go/internal/storage"
	"github.com/videotube/videos-ms-go/test/testutil"
)

var (
	GlobalStrg      *storage.MinioStorage
	GlobalRedisAddr string

	minioEndpoint  string
	minioAccessKey string
	minioSecretKey string
)

func TestMain(m *testing.M) {
	code := func() int {
		dbCleanup, err := setupMariaDB()
		if err != nil {
			fmt.Fprintf(os.Stderr, "DB setup failed: %v\n", err)
			return 1
		}
		defer dbCleanup()

		minioCleanup, err := setupMinIO()
		if err != nil {
			fmt.Fprintf(os.Stderr, "MinIO setup failed: %v\n", err)
			return 1
		}
		defer minioCleanup()

		redisCleanup, err := setupRedis()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Redis setup failed: %v\n", err)
			return 1
		}
		defer redisCleanup()

		return m.Run()
	}()

	os.Exit(code)
}

func setupMariaDB() (cleanup func(), err error) {
	if os.Getenv("TEST_DB_DSN") != "" {
		// CI provided it; nothing to clean up
		return func() {}, nil
	}

	mdb, err := testutil.StartMariaDBContainer()
	if err != nil {
		return nil, err
	}

	os.Setenv("TEST_DB_DSN", mdb.DSN)

	return mdb.Cleanup, nil
}

func setupMinIO() (cleanup func(), err error) {
	if os.Getenv("TEST_MINIO_ENDPOINT") != "" {
		// CI path: build the global client from env
		minioEndpoint = os.Getenv("TEST_MINIO_ENDPOINT")
		minioAccessKey = os.Getenv("TEST_MINIO_ACCESS_KEY")
		minioSecretKey = os.Getenv("TEST_MINIO_SECRET_KEY")
		useSSL := os.Getenv("TEST_MINIO_USE_SSL") == "true"

		strg, err := storage.NewStorage(minioEndpoint, minioAccessKey, minioSecretKey, useSSL, "")
		if err != nil {
			return nil, err
		}

		GlobalStrg = strg

		return func() {}, nil
	}

	// local path: start a container
	mi, err := testutil.StartMinIOContainer()
	if err != nil {
		return nil, err
	}

	GlobalStrg = mi.Strg
	minioEndpoint = mi.Endpoint
	minioAccessKey = mi.AccessKey
	minioSecretKey = mi.SecretKey

	return mi.Cleanup, nil
}

func setupRedis() (cleanup func(), err error) {
	if os.Getenv("TEST_REDIS_ADDR") != "" {
		GlobalRedisAddr = os.Getenv("TEST_REDIS_ADDR")
		return func() {}, nil
	}

	rc, err := testutil.StartRedisContainer()
	if err != nil {
		return nil, err
	}

	GlobalRedisAddr = rc.Addr

	return rc.Cleanup, nil
}
