package planner

import (
	"github.com/videotube/videos-ms-go/internal/model"
)

// Rung is one tier of the encoding ladder.
type Rung struct {
	Label  model.ResolutionLabel
	Width  int
	Height int
}

// candidates is the fixed ladder, highest resolution first.
var candidates = []Rung{
	{Label: model.Resolution1080p, Width: 1920, Height: 1080},
	{Label: model.Resolution720p, Width: 1280, Height: 720},
	{Label: model.Resolution480p, Width: 854, Height: 480},
	{Label: model.Resolution360p, Width: 640, Height: 360},
}

// Candidates returns a copy of the full candidate ladder.
func Candidates() []Rung {
	out := make([]Rung, len(candidates))
	copy(out, candidates)
	return out
}

// PlanLadder selects the rungs a source of the given dimensions should be
// encoded to: every candidate that fits entirely inside the source, highest
// first. Upscaling is never planned, so a source smaller than the smallest
// rung yields an empty ladder, which is a valid plan rather than an error.
func PlanLadder(sourceWidth, sourceHeight int) []Rung {
	var ladder []Rung
	for _, c := range candidates {
		if c.Width <= sourceWidth && c.Height <= sourceHeight {
			ladder = append(ladder, c)
		}
	}
	return ladder
}

// Labels returns the labels of the given ladder, preserving order.
func Labels(ladder []Rung) model.ResolutionList {
	labels := make(model.ResolutionList, 0, len(ladder))
	for _, r := range ladder {
		labels = append(labels, r.Label)
	}
	return labels
}
