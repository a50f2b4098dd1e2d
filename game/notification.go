package game

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification kinds.
const (
	KindPoints  = "points"
	KindWarning = "warning"
)

// Notification is a short-lived message for the user. The presentation layer
// shows it for Duration and then drops it.
type Notification struct {
	ID       string        `json:"id"`
	Kind     string        `json:"kind"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"-"`
}

// MarshalJSON adds durationMs, the display time clients should honour.
func (n Notification) MarshalJSON() ([]byte, error) {
	type plain Notification
	return json.Marshal(struct {
		plain
		DurationMs int64 `json:"durationMs"`
	}{plain(n), n.Duration.Milliseconds()})
}

// Notifier delivers notifications. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

func newNotification(kind, msg string, d time.Duration) Notification {
	return Notification{ID: uuid.NewString(), Kind: kind, Message: msg, Duration: d}
}
