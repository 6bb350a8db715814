package report

import (
	"github.com/sot/schedule-view/internal/cmdevents"
	"github.com/sot/schedule-view/internal/derive"
	"github.com/sot/schedule-view/internal/timeline"
)

// Inputs are the source snapshots for one run
type Inputs struct {
	// Boundaries are the load boundary records with params fetched
	Boundaries []timeline.Event
	CmdEvents  []cmdevents.Event
	Comments   CommentResolver
}

// Options control presentation
type Options struct {
	Mapper        PathMapper
	StarcheckBase string
}

// Build runs the whole reconciliation and returns the entries most recent first
func Build(in Inputs, opts Options) []Entry {
	runLoads := timeline.RunLoads(in.Boundaries)
	entries := BuildLoadEntries(in.Boundaries, runLoads, in.CmdEvents, in.Comments)
	entries = Reconcile(entries, in.CmdEvents, in.Comments)
	return Finalize(entries, opts.Mapper, opts.StarcheckBase)
}

// Summary counts entries by kind and load status
type Summary struct {
	Total        int
	Loads        int
	Nominal      int
	Interrupted  int
	Unclassified int
	NotRun       int
	CmdEvents    int
}

// Summarize tallies the entries
func Summarize(entries []Entry) Summary {
	s := Summary{Total: len(entries)}
	for _, e := range entries {
		switch e.Kind {
		case KindLoad:
			s.Loads++
			switch e.Status {
			case derive.StatusNominal:
				s.Nominal++
			case derive.StatusInterrupted:
				s.Interrupted++
			default:
				s.Unclassified++
			}
		case KindNotRun:
			s.NotRun++
		case KindCmdEvent:
			s.CmdEvents++
		}
	}
	return s
}
