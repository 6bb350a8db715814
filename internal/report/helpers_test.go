package report

import (
	"github.com/sot/schedule-view/internal/cmdevents"
	"github.com/sot/schedule-view/internal/loads"
	"github.com/sot/schedule-view/internal/timeline"
)

func boundary(date, source, eventType string) timeline.Event {
	return timeline.Event{
		Date:   date,
		Type:   timeline.TypeLoadEvent,
		TLMSID: timeline.TLMSIDNone,
		Source: source,
		Params: map[string]any{"event_type": eventType},
	}
}

func notRun(date, event, load, comment string) cmdevents.Event {
	return cmdevents.Event{
		Date:      date,
		Event:     event,
		Params:    load,
		HasParams: load != "",
		Comment:   comment,
		Fields: []cmdevents.Field{
			{Name: "State", Value: "Definitive"},
			{Name: cmdevents.ColumnDate, Value: date},
			{Name: cmdevents.ColumnEvent, Value: event},
			{Name: cmdevents.ColumnParams, Value: load},
			{Name: cmdevents.ColumnComment, Value: comment},
		},
	}
}

func cmdEvent(date, event, params, comment string) cmdevents.Event {
	return notRun(date, event, params, comment)
}

// mapComments is an in-memory CommentResolver
type mapComments map[loads.ID]string

func (m mapComments) Lookup(id loads.ID) (string, bool) {
	c, ok := m[id]
	return c, ok
}
