package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/videotube/videos-ms-go/internal/port"
)

// Prober reads stream metadata through the ffprobe binary.
type Prober struct {
	bin string
}

// compile-time check: *Prober must satisfy port.Prober
var _ port.Prober = (*Prober)(nil)

func NewProber(bin string) *Prober {
	if bin == "" {
		bin = "ffprobe"
	}
	return &Prober{bin: bin}
}

type probeOutput struct {
	Streams []struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe returns the dimensions of the first video stream and the container
// duration, truncated to whole seconds.
func (p *Prober) Probe(ctx context.Context, path string) (port.SourceInfo, error) {
	args := []string{
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}
	cmd := exec.CommandContext(ctx, p.bin, args...)
	raw, err := cmd.Output()
	if err != nil {
		return port.SourceInfo{}, fmt.Errorf("ffprobe %q failed: %w", path, err)
	}

	var out probeOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return port.SourceInfo{}, fmt.Errorf("ffprobe %q: unparseable output: %w", path, err)
	}

	info := port.SourceInfo{}
	for _, s := range out.Streams {
		if s.Width > 0 && s.Height > 0 {
			info.Width = s.Width
			info.Height = s.Height
			break
		}
	}
	if info.Width == 0 || info.Height == 0 {
		return port.SourceInfo{}, fmt.Errorf("ffprobe %q: no video stream with dimensions", path)
	}

	if out.Format.Duration != "" {
		d, err := strconv.ParseFloat(out.Format.Duration, 64)
		if err != nil {
			return port.SourceInfo{}, fmt.Errorf("ffprobe %q: bad duration %q: %w", path, out.Format.Duration, err)
		}
		info.DurationSeconds = int(d)
	}

	return info, nil
}
