package mock

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/videotube/videos-ms-go/internal/port"
)

type nopReadSeekCloser struct{ io.ReadSeeker }

func (nopReadSeekCloser) Close() error { return nil }

// MockStorage implements the storage interface for tests.
type MockStorage struct {
	// stored values
	StatInfoOut port.FileInfo
	GetOut      string
	ExistsOut   bool

	// captured inputs
	ObjectKey   string
	TTL         time.Duration
	SavedKeys   []string
	RemovedKeys []string
	CopiedKeys  [][2]string

	// errors
	InitBucketErr         error
	GenerateUploadLinkErr error
	StatErr               error
	RemoveErr             error
	GetErr                error
	SaveErr               error
	// SaveErrOnKey fails SaveFile only for the given object key, so a
	// specific rung's upload can be made to break.
	SaveErrOnKey  string
	SaveErrForKey error
	CopyErr       error
	FileExistsErr error

	// call flags
	InitBucketCalled         bool
	GenerateUploadLinkCalled bool
	StatCalled               bool
	RemoveCalled             bool
	GetCalled                bool
	SaveCalled               bool
	CopyCalled               bool
	FileExistsCalled         bool
}

var _ port.Storage = (*MockStorage)(nil)

func (m *MockStorage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	return m.InitBucketErr
}

func (m *MockStorage) GeneratePresignedUploadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error) {
	m.GenerateUploadLinkCalled = true
	m.ObjectKey = fileKey
	m.TTL = expiry
	if m.GenerateUploadLinkErr != nil {
		return "", m.GenerateUploadLinkErr
	}
	return "https://example.com/upload", nil
}

func (m *MockStorage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	m.FileExistsCalled = true
	if m.FileExistsErr != nil {
		return false, m.FileExistsErr
	}
	return m.ExistsOut, nil
}

func (m *MockStorage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}

func (m *MockStorage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	m.RemoveCalled = true
	m.RemovedKeys = append(m.RemovedKeys, fileKey)
	return m.RemoveErr
}

func (m *MockStorage) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadSeekCloser, error) {
	m.GetCalled = true
	m.ObjectKey = fileKey
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return nopReadSeekCloser{strings.NewReader(m.GetOut)}, nil
}

func (m *MockStorage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.SaveCalled = true
	if m.SaveErrOnKey != "" && fileKey == m.SaveErrOnKey {
		return m.SaveErrForKey
	}
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.SavedKeys = append(m.SavedKeys, fileKey)
	return nil
}

func (m *MockStorage) CopyFile(ctx context.Context, bucket, srcKey, destKey string) error {
	m.CopyCalled = true
	m.CopiedKeys = append(m.CopiedKeys, [2]string{srcKey, destKey})
	return m.CopyErr
}

func (m *MockStorage) PublicURL(bucket, fileKey string) string {
	return "https://cdn.example.com/" + bucket + "/" + fileKey
}
