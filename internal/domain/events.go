package domain

// ProgressObserver receives lifecycle events for a download job.
// Contract for any job: exactly one Start, zero or more Progress
// calls with non-decreasing percent in [0,100], then exactly one
// terminal call (Success or Error). Callbacks may arrive from a
// background goroutine.
type ProgressObserver interface {
	// OnStart fires once when the pipeline accepts a URL
	OnStart(url string)
	// OnProgress reports completion percent in [0,100]
	OnProgress(percent int)
	// OnSuccess fires once with the absolute path of the finished file
	OnSuccess(filePath string)
	// OnError fires once with a user-facing message
	OnError(message string)
}

// EventType identifies a progress event on the wire
type EventType string

const (
	EventStart    EventType = "start"
	EventProgress EventType = "progress"
	EventSuccess  EventType = "success"
	EventError    EventType = "error"
)

// ProgressEvent is the serialisable form of an observer callback,
// used by the websocket feed and the history snapshot
type ProgressEvent struct {
	JobID   string    `json:"job_id"`
	Type    EventType `json:"type"`
	URL     string    `json:"url,omitempty"`
	Percent int       `json:"percent,omitempty"`
	Path    string    `json:"path,omitempty"`
	Message string    `json:"message,omitempty"`
}
