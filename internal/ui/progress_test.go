package ui

import (
	"strings"
	"testing"
	"time"

	"vischeck/internal/pipeline"
)

func TestApplyEventTracksUnits(t *testing.T) {
	m := NewProgressModel("checking", []string{"a.vsnap", "b.vsnap"}, nil).(*progressModel)

	m.applyEvent(pipeline.Event{File: "a.vsnap", Stage: pipeline.StagePrivacy, Status: pipeline.StatusWorking})
	if got := m.items[0].status; got != "checking" {
		t.Fatalf("a.vsnap status = %q, want checking", got)
	}
	m.applyEvent(pipeline.Event{File: "a.vsnap", Stage: pipeline.StagePrivacy, Status: pipeline.StatusError})
	m.applyEvent(pipeline.Event{File: "b.vsnap", Stage: pipeline.StagePrivacy, Status: pipeline.StatusCrashed})
	m.applyEvent(pipeline.Event{File: "missing.vsnap", Stage: pipeline.StageLoad, Status: pipeline.StatusError})

	if m.items[0].status != "violations" || m.items[1].status != "crashed" {
		t.Fatalf("unexpected statuses: %+v", m.items)
	}
	if m.failed != 2 {
		t.Fatalf("failed = %d, want 2", m.failed)
	}
	if p := m.percent(); p != 1.0 {
		t.Fatalf("percent = %v, want 1", p)
	}
}

func TestApplyEventGlobalLabel(t *testing.T) {
	m := NewProgressModel("checking", []string{"a.vsnap"}, nil).(*progressModel)
	m.applyEvent(pipeline.Event{Stage: pipeline.StageLoad, Status: pipeline.StatusWorking})
	if m.stageLabel != "loading" {
		t.Fatalf("stageLabel = %q, want loading", m.stageLabel)
	}
}

func TestStatusLabelLoadFailure(t *testing.T) {
	if got := statusLabel(pipeline.StageLoad, pipeline.StatusError); got != "unreadable" {
		t.Fatalf("got %q", got)
	}
	if got := statusLabel(pipeline.StagePrivacy, pipeline.Status("bogus")); got != "" {
		t.Fatalf("unknown status should have no label, got %q", got)
	}
}

func TestTruncateKeepsTail(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"dir/sub/unit.vsnap", 13, "...unit.vsnap"},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestViewShowsCountsAndElapsed(t *testing.T) {
	m := NewProgressModel("checking", []string{"a.vsnap", "b.vsnap"}, nil).(*progressModel)
	m.applyEvent(pipeline.Event{File: "a.vsnap", Stage: pipeline.StageLoad, Status: pipeline.StatusWorking})
	m.applyEvent(pipeline.Event{File: "a.vsnap", Stage: pipeline.StagePrivacy, Status: pipeline.StatusDone, Elapsed: 2 * time.Millisecond})

	out := m.View()
	for _, want := range []string{"checking 1/2", "a.vsnap", "2.0ms", "queued"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}
