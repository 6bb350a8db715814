package report

import (
	"github.com/sot/schedule-view/internal/cmdevents"
	"github.com/sot/schedule-view/internal/derive"
	"github.com/sot/schedule-view/internal/loads"
	"github.com/sot/schedule-view/internal/timeline"
)

// BuildLoadEntries creates one entry per run load that has a running load
// termination time, in runLoads order. Loads without an RLTT are skipped.
//
// events are the load boundary records of the timeline; they are also the
// records checked for interruptions, along with the command events.
func BuildLoadEntries(events []timeline.Event, runLoads []string, cmdEvents []cmdevents.Event, comments CommentResolver) []Entry {
	cmdDates := make([]string, len(events))
	for i, e := range events {
		cmdDates[i] = e.Date
	}
	eventDates := make([]string, len(cmdEvents))
	for i, e := range cmdEvents {
		eventDates[i] = e.Date
	}

	var entries []Entry
	for _, source := range runLoads {
		id := loads.ID(source)
		entry := Entry{Kind: KindLoad, Products: id}
		attachComment(&entry, comments, id)

		rltt, ok := timeline.FindBoundary(events, source, timeline.EventTypeRLTT)
		if !ok {
			continue
		}
		entry.RLTT = rltt.Date
		entry.Date = rltt.Date

		if stop, ok := timeline.FindBoundary(events, source, timeline.EventTypeSchedStop); ok {
			entry.SchedStop = stop.Date
			entry.Status = derive.ClassifyInterval(entry.RLTT, entry.SchedStop, cmdDates, eventDates)
			entry.SSColor = entry.Status.Color()
		}

		entries = append(entries, entry)
	}
	return entries
}
