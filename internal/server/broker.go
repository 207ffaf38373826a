package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
)

// event is one serialized SSE frame.
type event struct {
	name string
	data []byte
}

// Broker fans recorder events out to connected SSE clients. It implements
// events.Publisher; Publish never blocks, slow clients drop frames.
type Broker struct {
	mu          sync.Mutex
	subscribers map[chan event]struct{}
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[chan event]struct{}),
	}
}

// Publish serializes the payload and delivers it to every subscriber.
func (b *Broker) Publish(name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to serialize event", "event", name, "error", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subscribers {
		select {
		case ch <- event{name: name, data: data}:
		default:
			// Subscriber is not keeping up; drop the frame.
		}
	}
}

func (b *Broker) subscribe() chan event {
	ch := make(chan event, 16)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) unsubscribe(ch chan event) {
	b.mu.Lock()
	delete(b.subscribers, ch)
	b.mu.Unlock()
}

// ServeHTTP streams events to the webview as server-sent events.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := b.subscribe()
	defer b.unsubscribe(ch)

	slog.Debug("SSE client connected", "remote", r.RemoteAddr)

	for {
		select {
		case <-r.Context().Done():
			slog.Debug("SSE client disconnected", "remote", r.RemoteAddr)
			return
		case ev := <-ch:
			if _, err := w.Write([]byte("event: " + ev.name + "\ndata: " + string(ev.data) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
