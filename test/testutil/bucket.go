package testutil

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// SetupTestBucket (re)creates an empty bucket on the MinIO instance and
// returns a cleanup that empties and drops it again.
func SetupTestBucket(endpoint, accessKey, secretKey, bucket string) (func() error, error) {
	ctx := context.Background()

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create minio client: %w", err)
	}

	empty := func() {
		for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				continue
			}
			_ = client.RemoveObject(ctx, bucket, obj.Key, minio.RemoveObjectOptions{})
		}
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("could not check bucket %q: %w", bucket, err)
	}
	if exists {
		empty()
	} else {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("could not create bucket %q: %w", bucket, err)
		}
	}

	cleanup := func() error {
		empty()
		if err := client.RemoveBucket(ctx, bucket); err != nil {
			return fmt.Errorf("could not remove bucket %q: %w", bucket, err)
		}
		return nil
	}

	return cleanup, nil
}
