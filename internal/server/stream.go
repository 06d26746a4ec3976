package server

import (
	"fmt"
	"net/http"
	"time"
)

// StreamHandler serves the latest annotated frame as an MJPEG stream.
type StreamHandler struct {
	status StatusSource
}

// NewStreamHandler creates a new StreamHandler over the given source.
func NewStreamHandler(status StatusSource) *StreamHandler {
	return &StreamHandler{status: status}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var lastUpdate time.Time
	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		snap := h.status.Snapshot()
		if len(snap.JPEG) == 0 || !snap.Updated.After(lastUpdate) {
			time.Sleep(100 * time.Millisecond)
			continue
		}
		lastUpdate = snap.Updated

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(snap.JPEG))
		w.Write(snap.JPEG)
		fmt.Fprintf(w, "\r\n")

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		time.Sleep(66 * time.Millisecond) // ~15 FPS ceiling
	}
}
