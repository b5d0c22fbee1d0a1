package port

import "context"

// SourceInfo is what probing a video file yields.
type SourceInfo struct {
	Width           int
	Height          int
	DurationSeconds int
}

// Prober reads dimensions and duration from a local video file.
type Prober interface {
	Probe(ctx context.Context, path string) (SourceInfo, error)
}

// Encoder materialises one rung of the ladder: it reads the source at
// inputPath and produces a file at outputPath scaled to width×height.
// The call blocks until the external encoder finishes or ctx expires.
type Encoder interface {
	EncodeRung(ctx context.Context, inputPath, outputPath string, width, height int) error
}
