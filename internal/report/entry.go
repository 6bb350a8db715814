// Package report merges the command timeline, the command-event table and
// the legacy schedule comments into the rows of the schedule page.
package report

import (
	"github.com/sot/schedule-view/internal/cmdevents"
	"github.com/sot/schedule-view/internal/derive"
	"github.com/sot/schedule-view/internal/loads"
)

// Kind identifies which path created an entry
type Kind int

const (
	// KindLoad is a load with a running load termination time
	KindLoad Kind = iota
	// KindNotRun is a "not run" command event with no matching load
	KindNotRun
	// KindCmdEvent is any other command event, shown as is
	KindCmdEvent
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindLoad:
		return "load"
	case KindNotRun:
		return "not_run"
	case KindCmdEvent:
		return "cmd_evt"
	default:
		return "unknown"
	}
}

// SourceCmdEvt tags entries copied from the command-event table
const SourceCmdEvt = "cmd_evt"

// Entry is one row of the report. Date is always set.
type Entry struct {
	Kind Kind
	Date string

	// Load fields
	Products  loads.ID
	RLTT      string
	SchedStop string
	Status    derive.Status
	SSColor   string

	MPComment    string
	HasMPComment bool

	// Command event fields
	Event   string
	Comment string
	Params  string
	Fields  []cmdevents.Field
	Source  string

	StarcheckURL string
}

// HasProducts reports whether the entry names a load
func (e *Entry) HasProducts() bool {
	return e.Kind != KindCmdEvent && e.Products != ""
}

// HasRLTT reports whether the entry made it past the RLTT gate
func (e *Entry) HasRLTT() bool {
	return e.Kind == KindLoad
}

// ExtraFields returns the non-empty command event columns that have no
// column of their own on the page, such as State, Author and Reviewer
func (e *Entry) ExtraFields() []cmdevents.Field {
	var out []cmdevents.Field
	for _, f := range e.Fields {
		switch f.Name {
		case cmdevents.ColumnDate, cmdevents.ColumnEvent, cmdevents.ColumnParams, cmdevents.ColumnComment:
			continue
		}
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

// StatusCaption returns the status text, or "" if unclassified or interrupted
func (e *Entry) StatusCaption() string {
	return e.Status.Caption()
}

// CommentResolver looks up the legacy planner comment for a load.
// *schedules.Table implements it.
type CommentResolver interface {
	Lookup(id loads.ID) (string, bool)
}

func attachComment(e *Entry, comments CommentResolver, id loads.ID) {
	if comments == nil {
		return
	}
	if c, ok := comments.Lookup(id); ok {
		e.MPComment = c
		e.HasMPComment = true
	}
}
