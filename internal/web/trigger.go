package web

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Request and response headers driving the partial-update protocol.
const (
	HeaderHXRequest          = "HX-Request"
	HeaderTrigger            = "HX-Trigger"
	HeaderTriggerAfterSettle = "HX-Trigger-After-Settle"
)

// Client-side event names.
const (
	EventReloadProducts     = "reloadProducts"
	EventShowToast          = "showToast"
	EventCloseModal         = "closeModal"
	EventStopInfiniteScroll = "stopInfiniteScroll"
)

// Toast types.
const (
	ToastSuccess = "success"
	ToastError   = "error"
)

// Toast is a user notification delivered through a trigger header.
type Toast struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Triggers is a typed set of client-side events. Each event maps to either
// `true` or a structured payload; the whole set is serialized exactly once
// when written to a response header.
type Triggers struct {
	events map[string]interface{}
}

// NewTriggers creates an empty trigger set.
func NewTriggers() *Triggers {
	return &Triggers{events: make(map[string]interface{})}
}

// Event adds a bare event (name → true).
func (t *Triggers) Event(name string) *Triggers {
	t.events[name] = true
	return t
}

// Toast adds a showToast event with the given type and message.
func (t *Triggers) Toast(toastType, message string) *Triggers {
	t.events[EventShowToast] = Toast{Type: toastType, Message: message}
	return t
}

// Empty reports whether no events were added.
func (t *Triggers) Empty() bool {
	return len(t.events) == 0
}

// Write serializes the set into the given response header. Writing an empty
// set is a no-op.
func (t *Triggers) Write(h http.Header, header string) error {
	if t.Empty() {
		return nil
	}
	payload, err := json.Marshal(t.events)
	if err != nil {
		return fmt.Errorf("failed to serialize trigger payload: %w", err)
	}
	h.Set(header, string(payload))
	return nil
}

// isHTMX reports whether the request asked for a partial response.
func isHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) != ""
}
