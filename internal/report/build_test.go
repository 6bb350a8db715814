package report

import (
	"testing"

	"github.com/sot/schedule-view/internal/cmdevents"
	"github.com/sot/schedule-view/internal/derive"
	"github.com/sot/schedule-view/internal/timeline"
)

func TestBuildLoadEntries_RLTTGate(t *testing.T) {
	events := []timeline.Event{
		boundary("2024:061:12:00:00.000", "MAR0124A", timeline.EventTypeRLTT),
		boundary("2024:068:12:00:00.000", "MAR0124A", timeline.EventTypeSchedStop),
		// MAR0824A has a scheduled stop but never got an RLTT
		boundary("2024:075:12:00:00.000", "MAR0824A", timeline.EventTypeSchedStop),
	}

	entries := BuildLoadEntries(events, timeline.RunLoads(events), nil, nil)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Products != "MAR0124A" {
		t.Errorf("expected MAR0124A, got %s", e.Products)
	}
	if e.Date != e.RLTT || e.RLTT != "2024:061:12:00:00.000" {
		t.Errorf("expected date == rltt, got date=%s rltt=%s", e.Date, e.RLTT)
	}
	if e.Kind != KindLoad {
		t.Errorf("expected load kind, got %s", e.Kind)
	}
}

func TestBuildLoadEntries_StatusClassification(t *testing.T) {
	base := []timeline.Event{
		boundary("2024:061:12:00:00.000", "MAR0124A", timeline.EventTypeRLTT),
		boundary("2024:068:12:00:00.000", "MAR0124A", timeline.EventTypeSchedStop),
	}

	tests := []struct {
		name        string
		extra       []timeline.Event
		cmdEvents   []cmdevents.Event
		wantStatus  derive.Status
		wantCaption string
		wantColor   string
	}{
		{
			name:        "nothing inside interval",
			wantStatus:  derive.StatusNominal,
			wantCaption: "Ran nominally",
		},
		{
			name: "next load RLTT inside interval",
			extra: []timeline.Event{
				boundary("2024:065:00:00:00.000", "MAR0524A", timeline.EventTypeRLTT),
			},
			wantStatus: derive.StatusInterrupted,
			wantColor:  "grey",
		},
		{
			name:       "command event inside interval",
			cmdEvents:  []cmdevents.Event{cmdEvent("2024:066:00:00:00", "Safe mode", "", "")},
			wantStatus: derive.StatusInterrupted,
			wantColor:  "grey",
		},
		{
			name: "events on the boundaries do not interrupt",
			extra: []timeline.Event{
				boundary("2024:068:12:00:00.000", "MAR0824A", timeline.EventTypeRLTT),
			},
			cmdEvents:   []cmdevents.Event{cmdEvent("2024:061:12:00:00.000", "Command", "X", "")},
			wantStatus:  derive.StatusNominal,
			wantCaption: "Ran nominally",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := append(append([]timeline.Event{}, base...), tt.extra...)
			entries := BuildLoadEntries(events, []string{"MAR0124A"}, tt.cmdEvents, nil)
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}

			e := entries[0]
			if e.Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, e.Status)
			}
			if e.StatusCaption() != tt.wantCaption {
				t.Errorf("expected caption %q, got %q", tt.wantCaption, e.StatusCaption())
			}
			if e.SSColor != tt.wantColor {
				t.Errorf("expected color %q, got %q", tt.wantColor, e.SSColor)
			}
		})
	}
}

func TestBuildLoadEntries_NoSchedStopStillEmitted(t *testing.T) {
	events := []timeline.Event{
		boundary("2024:061:12:00:00.000", "MAR0124A", timeline.EventTypeRLTT),
	}

	entries := BuildLoadEntries(events, []string{"MAR0124A"}, nil, nil)
	if len(entries) != 1 {
		t.Fatalf("expected entry without scheduled stop to be kept, got %d", len(entries))
	}
	if entries[0].Status != derive.StatusNone || entries[0].SchedStop != "" {
		t.Errorf("expected no status and no scheduled stop, got %+v", entries[0])
	}
}

func TestBuildLoadEntries_FirstMatchAndOrder(t *testing.T) {
	events := []timeline.Event{
		boundary("2024:068:12:00:00.000", "MAR0824A", timeline.EventTypeRLTT),
		boundary("2024:061:12:00:00.000", "MAR0124A", timeline.EventTypeRLTT),
		boundary("2024:062:12:00:00.000", "MAR0124A", timeline.EventTypeRLTT),
	}

	entries := BuildLoadEntries(events, timeline.RunLoads(events), nil, nil)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Products != "MAR0824A" || entries[1].Products != "MAR0124A" {
		t.Errorf("expected first-appearance order, got %s, %s", entries[0].Products, entries[1].Products)
	}
	if entries[1].RLTT != "2024:061:12:00:00.000" {
		t.Errorf("expected first RLTT to win, got %s", entries[1].RLTT)
	}
}

func TestBuildLoadEntries_Comments(t *testing.T) {
	events := []timeline.Event{
		boundary("2024:061:12:00:00.000", "MAR0124A", timeline.EventTypeRLTT),
		boundary("2024:068:12:00:00.000", "MAR0824A", timeline.EventTypeRLTT),
	}
	comments := mapComments{"MAR0124A": "replan for TOO"}

	entries := BuildLoadEntries(events, timeline.RunLoads(events), nil, comments)
	if !entries[0].HasMPComment || entries[0].MPComment != "replan for TOO" {
		t.Errorf("expected comment on MAR0124A, got %+v", entries[0])
	}
	if entries[1].HasMPComment {
		t.Errorf("expected no comment on MAR0824A, got %q", entries[1].MPComment)
	}
}
