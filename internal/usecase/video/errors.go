package video

import "errors"

// Storage-level sentinels, mapped from the object-store client.
var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")
)

// Pipeline-level sentinels. Every failure of a transcode job reduces to one
// of these before the terminal failed commit.
var (
	// ErrVideoNotFound is returned when a job references a record that no
	// longer exists.
	ErrVideoNotFound = errors.New("video not found")

	// ErrLeaseHeld means another worker holds a live transcoding lease on
	// the video; the job should be retried later, not failed.
	ErrLeaseHeld = errors.New("transcoding lease held by another worker")

	// ErrInvalidStatusTransition is returned when a terminal commit targets
	// a video that is not in-progress. Only
	// pending → in-progress → {completed, failed} edges are valid.
	ErrInvalidStatusTransition = errors.New("invalid transcoding status transition")

	// ErrInputMissing means the source object is absent at job start.
	ErrInputMissing = errors.New("transcode: input missing")

	// ErrProbeFailed means the source's dimensions or duration could not be
	// read.
	ErrProbeFailed = errors.New("transcode: probe failed")

	// ErrEncodeFailed means the external encoder errored on a rung. Per the
	// fail-fast policy no further rungs are attempted and nothing from the
	// attempt is uploaded.
	ErrEncodeFailed = errors.New("transcode: encode failed")

	// ErrUploadFailed means publishing a rung to object storage failed, so
	// the job as a whole fails and no subset of resolutions is committed.
	ErrUploadFailed = errors.New("transcode: upload failed")

	// ErrPersistFailed means the terminal write to the video record failed
	// after a fully successful encode+publish pass. The job handler returns
	// it so the queue redelivers and the commit is retried.
	ErrPersistFailed = errors.New("transcode: persisting result failed")
)
