// Package events fans engine progress out to SSE subscribers.
package events

import (
	"encoding/json"
	"time"
)

// Event types published by the engine.
const (
	TypeFillStarted    = "fill_started"
	TypeFillComplete   = "fill_complete"
	TypeFillFailed     = "fill_failed"
	TypeSearchProgress = "search_progress"
	TypeSearchComplete = "search_complete"
	TypeSearchFailed   = "search_failed"
	TypeAlertsIngested = "alerts_ingested"
	TypeConfigUpdated  = "config_updated"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
