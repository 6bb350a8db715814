// Package cmdevents reads the command-event table: manually logged events
// such as loads that were not run, safe modes and ad hoc commanding.
package cmdevents

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sot/schedule-view/internal/input"
	"github.com/sot/schedule-view/internal/logctx"
)

const (
	// EventLoadNotRun marks a load that was approved but never ran
	EventLoadNotRun = "Load not run"
	// EventObservingNotRun marks a load whose observing commands never ran
	EventObservingNotRun = "Observing not run"
)

// Column names used by the reconciliation. The source column "Date" is
// exposed as "date".
const (
	ColumnDate    = "date"
	ColumnEvent   = "Event"
	ColumnParams  = "Params"
	ColumnComment = "Comment"

	sourceDateColumn = "Date"
)

// ErrMissingColumn is returned when a required column is absent from the header
var ErrMissingColumn = errors.New("cmdevents: missing required column")

// Field is one column of a row
type Field struct {
	Name  string
	Value string
}

// Event is one row of the command-event table.
// Blank Params and Comment cells read as "".
type Event struct {
	Date    string
	Event   string
	Params  string
	Comment string
	// HasParams is false when the Params cell was blank or the column absent
	HasParams bool
	// Fields holds every column in header order, including the ones above
	Fields []Field
}

// IsNotRun reports whether the event records a load or its observing as not run
func (e Event) IsNotRun() bool {
	return e.Event == EventLoadNotRun || e.Event == EventObservingNotRun
}

// Parse reads the table from CSV with a header row
func Parse(r io.Reader) ([]Event, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty table", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == sourceDateColumn {
			name = ColumnDate
		}
		columns[i] = name
		index[name] = i
	}
	for _, required := range []string{ColumnDate, ColumnEvent} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	var events []Event
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if isBlank(record) {
			continue
		}

		cell := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		ev := Event{
			Date:    cell(ColumnDate),
			Event:   cell(ColumnEvent),
			Params:  cell(ColumnParams),
			Comment: cell(ColumnComment),
		}
		ev.HasParams = ev.Params != ""

		ev.Fields = make([]Field, len(columns))
		for i, name := range columns {
			ev.Fields[i] = Field{Name: name, Value: cell(name)}
		}
		events = append(events, ev)
	}

	return events, nil
}

// After keeps the events dated strictly after start, preserving order
func After(events []Event, start string) []Event {
	var out []Event
	for _, e := range events {
		if e.Date > start {
			out = append(out, e)
		}
	}
	return out
}

// Load reads the table from a local path or GitHub location and keeps the
// events after start
func Load(ctx context.Context, location, start string, fetcher input.FileFetcher) ([]Event, error) {
	logger := logctx.From(ctx)

	data, err := input.ReadLocation(ctx, location, fetcher)
	if err != nil {
		return nil, fmt.Errorf("failed to read command events: %w", err)
	}

	events, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse command events %s: %w", location, err)
	}

	kept := After(events, start)
	logger.Debug("Command events loaded", "location", location, "rows", len(events), "kept", len(kept))
	return kept, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
