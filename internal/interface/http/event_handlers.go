package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"example.com/aquapure-store/internal/domain/event"
)

const (
	eventBuffer       = 16
	heartbeatInterval = 25 * time.Second
)

var errStreamingUnsupported = errors.New("streaming unsupported")

// handleEvents streams state changes as server-sent events. Slow clients
// drop events rather than block publishers.
func (a *API) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, errStreamingUnsupported)
		return
	}

	ch := make(chan event.Event, eventBuffer)
	unsubscribe := a.events.Subscribe(func(e event.Event) {
		select {
		case ch <- e:
		default:
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case e := <-ch:
			data, err := json.Marshal(map[string]any{
				"kind":    e.Kind,
				"level":   e.Level,
				"message": e.Message,
				"at":      e.At,
			})
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Kind, data)
			flusher.Flush()
		}
	}
}
