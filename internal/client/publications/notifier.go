package publications

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes success banners from error banners.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is a transient user-facing banner.
type Notification struct {
	ID      string
	Kind    Kind
	Message string
}

// NotificationEvent is delivered to subscribers both when a notification
// appears and when it auto-dismisses.
type NotificationEvent struct {
	Notification
	Dismissed bool
}

// DefaultDismissAfter matches the UI's banner lifetime.
const DefaultDismissAfter = 3 * time.Second

// Notifier fans transient notifications out to subscribers and dismisses
// them after a fixed duration. Inline form errors are not routed here; those
// live on the forms themselves.
type Notifier struct {
	dismissAfter time.Duration

	mu     sync.Mutex
	subs   []func(NotificationEvent)
	active map[string]Notification
}

func NewNotifier(dismissAfter time.Duration) *Notifier {
	if dismissAfter <= 0 {
		dismissAfter = DefaultDismissAfter
	}
	return &Notifier{
		dismissAfter: dismissAfter,
		active:       make(map[string]Notification),
	}
}

// Subscribe registers a callback for show/dismiss events. Callbacks run
// synchronously and must not block.
func (n *Notifier) Subscribe(fn func(NotificationEvent)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

// Success publishes a success banner.
func (n *Notifier) Success(message string) string {
	return n.publish(KindSuccess, message)
}

// Error publishes an error banner.
func (n *Notifier) Error(message string) string {
	return n.publish(KindError, message)
}

// Active returns the currently visible notifications.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, 0, len(n.active))
	for _, v := range n.active {
		out = append(out, v)
	}
	return out
}

func (n *Notifier) publish(kind Kind, message string) string {
	note := Notification{ID: uuid.NewString(), Kind: kind, Message: message}

	n.mu.Lock()
	n.active[note.ID] = note
	subs := make([]func(NotificationEvent), len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, fn := range subs {
		fn(NotificationEvent{Notification: note})
	}

	time.AfterFunc(n.dismissAfter, func() { n.dismiss(note) })
	return note.ID
}

func (n *Notifier) dismiss(note Notification) {
	n.mu.Lock()
	if _, ok := n.active[note.ID]; !ok {
		n.mu.Unlock()
		return
	}
	delete(n.active, note.ID)
	subs := make([]func(NotificationEvent), len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, fn := range subs {
		fn(NotificationEvent{Notification: note, Dismissed: true})
	}
}
