// Progress channel (C11): a tagged-union stream of records the
// dispatcher produces and an HTTP handler or synchronous caller
// drains. Grounded on the teacher's CleanupService lifecycle, adapted
// here from "ticker loop" to "single-producer progress stream."
package dispatch

import "culturefeed-backend/internal/models"

type ProgressType string

const (
	ProgressTypeProgress ProgressType = "progress"
	ProgressTypeEvent    ProgressType = "event"
	ProgressTypeError    ProgressType = "error"
	ProgressTypeComplete ProgressType = "complete"
)

// ProgressEvent is one record on the channel returned by
// Dispatcher.Dispatch. Only the fields relevant to Type are populated;
// callers should switch on Type before reading other fields.
type ProgressEvent struct {
	Type ProgressType

	Percentage int
	Message    string
	VenueName  string
	SourceName string

	Event *models.Event

	TotalEvents int
}

func progressEvent(pct int, message, venueName, sourceName string) ProgressEvent {
	return ProgressEvent{Type: ProgressTypeProgress, Percentage: pct, Message: message, VenueName: venueName, SourceName: sourceName}
}

func eventEvent(event models.Event) ProgressEvent {
	e := event
	return ProgressEvent{Type: ProgressTypeEvent, Event: &e}
}

func errorEvent(message string) ProgressEvent {
	return ProgressEvent{Type: ProgressTypeError, Message: message}
}

func completeEvent(totalEvents int, message string) ProgressEvent {
	return ProgressEvent{Type: ProgressTypeComplete, TotalEvents: totalEvents, Message: message}
}
