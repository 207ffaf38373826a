// Package events defines the push channel between the backend and the
// webview front-end.
package events

// Event names for frontend communication.
const (
	EventRecordingStatus = "recording-status"
	EventRecordingError  = "recording-error"
	EventRecordingSaved  = "recording-saved"
)

// Publisher abstracts the delivery layer so the recorder can emit events
// without knowing whether an SSE client, a CLI logger or a test sink is
// listening. Publish is fire-and-forget: implementations must not block
// the caller and must not report delivery failures back.
type Publisher interface {
	Publish(name string, payload any)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(name string, payload any)

func (f PublisherFunc) Publish(name string, payload any) { f(name, payload) }

// Discard drops every event. Used when no front-end is attached.
var Discard Publisher = PublisherFunc(func(string, any) {})
