package ffmpeg

import (
	"context"
	"fmt"
	"log"
	"os/exec"

	"github.com/videotube/videos-ms-go/internal/port"
)

// Encoder drives the ffmpeg binary to produce one rung at a time.
type Encoder struct {
	bin string
}

// compile-time check: *Encoder must satisfy port.Encoder
var _ port.Encoder = (*Encoder)(nil)

func NewEncoder(bin string) *Encoder {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &Encoder{bin: bin}
}

// EncodeRung transcodes inputPath to an H.264 MP4 at the given dimensions.
// It blocks until ffmpeg exits; cancelling ctx kills the process.
func (e *Encoder) EncodeRung(ctx context.Context, inputPath, outputPath string, width, height int) error {
	args := []string{
		"-y",
		"-i", inputPath,
		"-c:v", "libx264",
		"-crf", "23",
		"-vf", fmt.Sprintf("scale=%d:%d", width, height),
		"-c:a", "aac",
		outputPath,
	}
	log.Printf("running %s %v...", e.bin, args)

	cmd := exec.CommandContext(ctx, e.bin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("encode %dx%d aborted: %w", width, height, ctxErr)
		}
		return fmt.Errorf("encode %dx%d failed: %v, output: %s", width, height, err, tail(output))
	}
	return nil
}

// tail keeps error messages readable when ffmpeg dumps its whole log.
func tail(b []byte) string {
	const max = 512
	if len(b) <= max {
		return string(b)
	}
	return "…" + string(b[len(b)-max:])
}
