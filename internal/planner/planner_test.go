package planner

import (
	"reflect"
	"testing"

	"github.com/videotube/videos-ms-go/internal/model"
)

func labelsOf(ladder []Rung) []model.ResolutionLabel {
	out := make([]model.ResolutionLabel, 0, len(ladder))
	for _, r := range ladder {
		out = append(out, r.Label)
	}
	return out
}

func TestPlanLadder(t *testing.T) {
	cases := []struct {
		name string
		w, h int
		want []model.ResolutionLabel
	}{
		{"full HD source", 1920, 1080, []model.ResolutionLabel{"1080p", "720p", "480p", "360p"}},
		{"4K source", 3840, 2160, []model.ResolutionLabel{"1080p", "720p", "480p", "360p"}},
		{"720p source", 1280, 720, []model.ResolutionLabel{"720p", "480p", "360p"}},
		{"480p source", 854, 480, []model.ResolutionLabel{"480p", "360p"}},
		{"360p source", 640, 360, []model.ResolutionLabel{"360p"}},
		{"undersized source", 480, 270, nil},
		{"1x1 source", 1, 1, nil},
		{"wide but short", 1920, 700, []model.ResolutionLabel{"480p", "360p"}},
		{"tall but narrow", 700, 1080, []model.ResolutionLabel{"360p"}},
		{"one pixel short of 1080p", 1919, 1080, []model.ResolutionLabel{"720p", "480p", "360p"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := labelsOf(PlanLadder(tc.w, tc.h))
			if len(tc.want) == 0 && len(got) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("PlanLadder(%d, %d) = %v; want %v", tc.w, tc.h, got, tc.want)
			}
		})
	}
}

// The ladder must always be the exact subsequence of candidates that fit
// inside the source, in descending order.
func TestPlanLadder_SubsequenceProperty(t *testing.T) {
	dims := []int{0, 1, 359, 360, 480, 640, 719, 720, 854, 1080, 1280, 1920, 4096}
	for _, w := range dims {
		for _, h := range dims {
			ladder := PlanLadder(w, h)

			var want []Rung
			for _, c := range Candidates() {
				if c.Width <= w && c.Height <= h {
					want = append(want, c)
				}
			}
			if !reflect.DeepEqual(ladder, want) {
				t.Fatalf("PlanLadder(%d, %d) = %v; want %v", w, h, ladder, want)
			}

			for i := 1; i < len(ladder); i++ {
				if ladder[i].Width >= ladder[i-1].Width {
					t.Fatalf("ladder for (%d, %d) not descending: %v", w, h, ladder)
				}
			}
		}
	}
}

func TestPlanLadder_Deterministic(t *testing.T) {
	first := PlanLadder(1920, 1080)
	for i := 0; i < 10; i++ {
		if got := PlanLadder(1920, 1080); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: got %v; want %v", i, got, first)
		}
	}
}

func TestCandidates_CopyIsSafe(t *testing.T) {
	c := Candidates()
	c[0].Label = "mangled"
	if Candidates()[0].Label != model.Resolution1080p {
		t.Error("mutating the returned slice must not affect the candidate ladder")
	}
}

func TestLabels(t *testing.T) {
	got := Labels(PlanLadder(1280, 720))
	want := model.ResolutionList{model.Resolution720p, model.Resolution480p, model.Resolution360p}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Labels = %v; want %v", got, want)
	}
	if got := Labels(nil); len(got) != 0 {
		t.Errorf("Labels(nil) = %v; want empty", got)
	}
}
