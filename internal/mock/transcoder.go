package mock

import (
	"context"
	"fmt"
	"os"

	"github.com/videotube/videos-ms-go/internal/port"
)

// MockProber implements the probing half of the encoder contract for tests.
type MockProber struct {
	InfoOut port.SourceInfo
	Err     error

	Called bool
	Path   string
}

var _ port.Prober = (*MockProber)(nil)

func (m *MockProber) Probe(ctx context.Context, path string) (port.SourceInfo, error) {
	m.Called = true
	m.Path = path
	if m.Err != nil {
		return port.SourceInfo{}, m.Err
	}
	return m.InfoOut, nil
}

// EncodeCall records one rung handed to the encoder.
type EncodeCall struct {
	InputPath  string
	OutputPath string
	Width      int
	Height     int
}

// MockEncoder implements the encoding half of the encoder contract for
// tests. ErrOnWidth makes only the rung with that width fail, so fail-fast
// behavior at a given rung can be exercised.
type MockEncoder struct {
	Err        error
	ErrOnWidth int
	ErrForRung error

	Calls []EncodeCall
}

var _ port.Encoder = (*MockEncoder)(nil)

func (m *MockEncoder) EncodeRung(ctx context.Context, inputPath, outputPath string, width, height int) error {
	m.Calls = append(m.Calls, EncodeCall{InputPath: inputPath, OutputPath: outputPath, Width: width, Height: height})
	if m.ErrOnWidth != 0 && width == m.ErrOnWidth {
		return m.ErrForRung
	}
	if m.Err != nil {
		return m.Err
	}
	return os.WriteFile(outputPath, []byte(fmt.Sprintf("encoded %dx%d", width, height)), 0o644)
}
