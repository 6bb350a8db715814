// Package timeline reads the command timeline and selects the load boundary
// markers (running load termination and scheduled stop times) from it.
package timeline

import (
	"context"
	"fmt"
)

const (
	// TypeLoadEvent is the command type of synthetic load boundary markers
	TypeLoadEvent = "LOAD_EVENT"
	// TLMSIDNone is the tlmsid of commands that were never uplinked
	TLMSIDNone = "None"
	// SourceCmdEvt marks commands entered from the command-event table
	SourceCmdEvt = "CMD_EVT"

	// EventTypeRLTT is the params event_type of a running load termination time
	EventTypeRLTT = "RUNNING_LOAD_TERMINATION_TIME"
	// EventTypeSchedStop is the params event_type of a scheduled stop time
	EventTypeSchedStop = "SCHEDULED_STOP_TIME"
)

// Event is one command timeline record
type Event struct {
	Index  int64
	Date   string
	Type   string
	TLMSID string
	Source string
	// Params is nil until Source.FetchParams has run
	Params map[string]any
}

// EventType returns params["event_type"], or "" when absent
func (e Event) EventType() string {
	if e.Params == nil {
		return ""
	}
	s, _ := e.Params["event_type"].(string)
	return s
}

// Source provides timeline records
type Source interface {
	// GetCmds returns records dated at or after start, ordered by date
	GetCmds(ctx context.Context, start string) ([]Event, error)
	// FetchParams populates Params for the given records in place
	FetchParams(ctx context.Context, events []Event) error
}

// IsLoadBoundary reports whether e is a load event produced by a load
// rather than by the command-event table
func IsLoadBoundary(e Event) bool {
	return e.Type == TypeLoadEvent && e.TLMSID == TLMSIDNone && e.Source != SourceCmdEvt
}

// FilterLoadBoundaries keeps the load boundary records, preserving order
func FilterLoadBoundaries(events []Event) []Event {
	var out []Event
	for _, e := range events {
		if IsLoadBoundary(e) {
			out = append(out, e)
		}
	}
	return out
}

// RunLoads returns the distinct sources in order of first appearance
func RunLoads(events []Event) []string {
	seen := make(map[string]bool)
	var loads []string
	for _, e := range events {
		if seen[e.Source] {
			continue
		}
		seen[e.Source] = true
		loads = append(loads, e.Source)
	}
	return loads
}

// FindBoundary returns the first record from source with the given event type
func FindBoundary(events []Event, source, eventType string) (Event, bool) {
	for _, e := range events {
		if e.Source == source && e.EventType() == eventType {
			return e, true
		}
	}
	return Event{}, false
}

// LoadBoundaries fetches the timeline from start, keeps the load boundary
// records and populates their params
func LoadBoundaries(ctx context.Context, src Source, start string) ([]Event, error) {
	events, err := src.GetCmds(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("failed to read command timeline: %w", err)
	}

	boundaries := FilterLoadBoundaries(events)
	if err := src.FetchParams(ctx, boundaries); err != nil {
		return nil, fmt.Errorf("failed to fetch command params: %w", err)
	}
	return boundaries, nil
}
