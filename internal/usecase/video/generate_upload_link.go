package video

import (
	"context"
	"time"

	"github.com/videotube/videos-ms-go/internal/model"
	"github.com/videotube/videos-ms-go/internal/port"
)

type uploadLinkGeneratorSrv struct {
	repo   port.VideoRepository
	strg   port.Storage
	genID  port.UUIDGen
	bucket string
}

// compile-time check: *uploadLinkGeneratorSrv must satisfy port.UploadLinkGenerator
var _ port.UploadLinkGenerator = (*uploadLinkGeneratorSrv)(nil)

// NewUploadLinkGenerator constructs an UploadLinkGenerator implementation.
func NewUploadLinkGenerator(repo port.VideoRepository, strg port.Storage, genID port.UUIDGen, bucket string) port.UploadLinkGenerator {
	return &uploadLinkGeneratorSrv{repo, strg, genID, bucket}
}

// GenerateUploadLink creates a pending record keyed to a staging location
// and returns a presigned PUT link so the client uploads straight to the
// object store.
func (s *uploadLinkGeneratorSrv) GenerateUploadLink(ctx context.Context, in port.GenerateUploadLinkInput) (port.GenerateUploadLinkOutput, error) {
	id := s.genID()
	objectKey := StagingKey(id, in.Filename)

	v := &model.Video{
		ID:                   id,
		Title:                in.Title,
		Description:          in.Description,
		Bucket:               s.bucket,
		ObjectKey:            objectKey,
		TranscodingStatus:    model.TranscodingStatusPending,
		Resolutions:          model.Resolutions{},
		AvailableResolutions: model.ResolutionList{},
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return port.GenerateUploadLinkOutput{}, err
	}

	url, err := s.strg.GeneratePresignedUploadURL(ctx, s.bucket, objectKey, 5*time.Minute)
	if err != nil {
		return port.GenerateUploadLinkOutput{}, err
	}

	return port.GenerateUploadLinkOutput{
		ID:  id,
		URL: url,
	}, nil
}
