// Package webhook receives Shipit status callbacks and fans them out to
// registered handlers.
package webhook

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	EventCreated = "shipit.callback.created"
	EventUpdated = "shipit.callback.updated"
)

// Event is one callback received from Shipit.
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	ReceivedAt time.Time      `json:"received_at"`
	Data       map[string]any `json:"data"`
}

// NewEvent creates an event of type typ carrying data.
func NewEvent(typ string, data map[string]any) Event {
	if data == nil {
		data = map[string]any{}
	}
	return Event{
		ID:         uuid.New().String(),
		Type:       typ,
		ReceivedAt: time.Now().UTC(),
		Data:       data,
	}
}

// EventTypeForMethod maps a callback's HTTP method to the event it raises.
// POST announces a new package, PUT and PATCH a status change. Other methods
// raise nothing.
func EventTypeForMethod(method string) (string, bool) {
	switch method {
	case http.MethodPost:
		return EventCreated, true
	case http.MethodPut, http.MethodPatch:
		return EventUpdated, true
	}
	return "", false
}
