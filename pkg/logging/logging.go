package logging

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

type Fields struct {
	Component  string `json:"component"`
	Event      string `json:"event,omitempty"`
	Screen     string `json:"screen,omitempty"`
	Field      string `json:"field,omitempty"`
	Anchor     string `json:"anchor,omitempty"`
	Status     string `json:"status,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	Message    string `json:"message,omitempty"`
}

var (
	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// SetOutput redirects all log lines. The TUI owns stdout, so the storefront
// points this at a file before the program starts.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

func Log(fields Fields) {
	payload := map[string]any{
		"component":   fields.Component,
		"event":       fields.Event,
		"screen":      fields.Screen,
		"field":       fields.Field,
		"anchor":      fields.Anchor,
		"status":      fields.Status,
		"duration_ms": fields.DurationMS,
		"message":     fields.Message,
		"timestamp":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("{\"component\":%q,\"status\":\"log_error\",\"error\":%q}", fields.Component, err.Error())
		return
	}
	mu.Lock()
	defer mu.Unlock()
	_, _ = out.Write(append(data, '\n'))
}
