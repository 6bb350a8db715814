package timeline

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func boundary(date, source, eventType string) Event {
	return Event{
		Date:   date,
		Type:   TypeLoadEvent,
		TLMSID: TLMSIDNone,
		Source: source,
		Params: map[string]any{"event_type": eventType},
	}
}

func TestIsLoadBoundary(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		expected bool
	}{
		{
			name:     "load event from a load",
			event:    Event{Type: TypeLoadEvent, TLMSID: TLMSIDNone, Source: "MAR0124A"},
			expected: true,
		},
		{
			name:     "load event from command events",
			event:    Event{Type: TypeLoadEvent, TLMSID: TLMSIDNone, Source: SourceCmdEvt},
			expected: false,
		},
		{
			name:     "real command",
			event:    Event{Type: "COMMAND_SW", TLMSID: "AOMANUVR", Source: "MAR0124A"},
			expected: false,
		},
		{
			name:     "load event with tlmsid",
			event:    Event{Type: TypeLoadEvent, TLMSID: "OBSID", Source: "MAR0124A"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLoadBoundary(tt.event); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRunLoads_FirstAppearanceOrder(t *testing.T) {
	events := []Event{
		{Source: "MAR0824A"},
		{Source: "MAR0124A"},
		{Source: "MAR0824A"},
		{Source: "FEB2624B"},
		{Source: "MAR0124A"},
	}

	got := RunLoads(events)
	expected := []string{"MAR0824A", "MAR0124A", "FEB2624B"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestFindBoundary_FirstMatchWins(t *testing.T) {
	events := []Event{
		boundary("2024:061:00:00:00", "MAR0124A", EventTypeSchedStop),
		boundary("2024:061:12:00:00", "MAR0124A", EventTypeRLTT),
		boundary("2024:062:12:00:00", "MAR0124A", EventTypeRLTT),
		boundary("2024:063:12:00:00", "MAR0824A", EventTypeRLTT),
	}

	got, ok := FindBoundary(events, "MAR0124A", EventTypeRLTT)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Date != "2024:061:12:00:00" {
		t.Errorf("expected first RLTT, got %s", got.Date)
	}

	if _, ok := FindBoundary(events, "MAR1524A", EventTypeRLTT); ok {
		t.Error("expected no match for unknown load")
	}
}

func TestEventType_NilParams(t *testing.T) {
	if got := (Event{}).EventType(); got != "" {
		t.Errorf("expected empty event type, got %q", got)
	}
	if got := (Event{Params: map[string]any{"event_type": 3}}).EventType(); got != "" {
		t.Errorf("expected empty event type for non-string, got %q", got)
	}
}

type fakeSource struct {
	events     []Event
	err        error
	paramsErr  error
	fetchedFor []Event
}

func (f *fakeSource) GetCmds(context.Context, string) ([]Event, error) {
	return f.events, f.err
}

func (f *fakeSource) FetchParams(_ context.Context, events []Event) error {
	f.fetchedFor = events
	for i := range events {
		events[i].Params = map[string]any{"event_type": EventTypeRLTT}
	}
	return f.paramsErr
}

func TestLoadBoundaries(t *testing.T) {
	src := &fakeSource{events: []Event{
		{Index: 1, Type: TypeLoadEvent, TLMSID: TLMSIDNone, Source: "MAR0124A"},
		{Index: 2, Type: "COMMAND_HW", TLMSID: "CIMODESL", Source: "MAR0124A"},
		{Index: 3, Type: TypeLoadEvent, TLMSID: TLMSIDNone, Source: SourceCmdEvt},
	}}

	got, err := LoadBoundaries(context.Background(), src, "2024:001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Index != 1 {
		t.Fatalf("expected only the load boundary, got %+v", got)
	}
	if len(src.fetchedFor) != 1 {
		t.Errorf("expected params fetched for 1 event, got %d", len(src.fetchedFor))
	}
	if got[0].EventType() != EventTypeRLTT {
		t.Errorf("expected params populated, got %v", got[0].Params)
	}
}

func TestLoadBoundaries_Errors(t *testing.T) {
	boom := errors.New("boom")

	if _, err := LoadBoundaries(context.Background(), &fakeSource{err: boom}, "2024:001"); !errors.Is(err, boom) {
		t.Errorf("expected wrapped timeline error, got %v", err)
	}
	if _, err := LoadBoundaries(context.Background(), &fakeSource{paramsErr: boom}, "2024:001"); !errors.Is(err, boom) {
		t.Errorf("expected wrapped params error, got %v", err)
	}
}
