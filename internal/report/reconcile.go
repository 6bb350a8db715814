package report

import (
	"strings"

	"github.com/sot/schedule-view/internal/cmdevents"
	"github.com/sot/schedule-view/internal/loads"
)

// Reconcile folds the command events into the load entries.
//
// "Load not run" and "Observing not run" rows update the first load entry
// with the same load name in place, or become standalone entries when there
// is none. All other rows are appended afterwards as passthrough entries.
func Reconcile(entries []Entry, cmdEvents []cmdevents.Event, comments CommentResolver) []Entry {
	// Positions of load entries by name, first occurrence only. Only entries
	// present before this call are merge targets.
	targets := make(map[loads.ID]int)
	for i := range entries {
		if !entries[i].HasRLTT() {
			continue
		}
		if _, ok := targets[entries[i].Products]; !ok {
			targets[entries[i].Products] = i
		}
	}

	for _, ev := range cmdEvents {
		if !ev.IsNotRun() {
			continue
		}
		id := loads.ID(ev.Params)

		if i, ok := targets[id]; ok {
			e := &entries[i]
			e.Date = ev.Date
			e.Products = id
			e.Event = ev.Event
			e.Comment = ev.Comment
			attachComment(e, comments, id)
			continue
		}

		entry := Entry{
			Kind:     KindNotRun,
			Date:     ev.Date,
			Products: id,
			Event:    ev.Event,
			Comment:  ev.Comment,
		}
		attachComment(&entry, comments, id)
		entries = append(entries, entry)
	}

	for _, ev := range cmdEvents {
		if ev.IsNotRun() {
			continue
		}
		entries = append(entries, passthrough(ev))
	}
	return entries
}

// passthrough copies every column of a command event into an entry.
// Params gets a space after each comma so long parameter lists can wrap.
func passthrough(ev cmdevents.Event) Entry {
	entry := Entry{
		Kind:    KindCmdEvent,
		Date:    ev.Date,
		Event:   ev.Event,
		Comment: ev.Comment,
		Params:  ev.Params,
		Source:  SourceCmdEvt,
	}
	if ev.HasParams {
		entry.Params = SpaceCommas(ev.Params)
	}

	entry.Fields = make([]cmdevents.Field, len(ev.Fields))
	for i, f := range ev.Fields {
		if f.Name == cmdevents.ColumnParams && ev.HasParams {
			f.Value = entry.Params
		}
		entry.Fields[i] = f
	}
	return entry
}

// SpaceCommas inserts a space after every comma
func SpaceCommas(s string) string {
	return strings.ReplaceAll(s, ",", ", ")
}
