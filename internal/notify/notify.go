// Package notify sends the picker's desktop toasts over the freedesktop
// notification service.
package notify

// Urgency is the freedesktop urgency hint.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

const (
	appName        = "vitrine"
	appDisplayName = "Vitrine"
)

// Notification is one toast.
type Notification struct {
	Title      string
	Body       string
	Timeout    int32  // ms; -1 leaves it to the server
	ReplacesID uint32 // 0 opens a new toast
	Urgency    Urgency
}

// Notifier shows and withdraws toasts. Notify returns the server's ID for
// the toast, or 0 when nothing was shown.
type Notifier interface {
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// Discard drops every toast. It stands in when no notification service is
// reachable.
type Discard struct{}

func (Discard) Notify(Notification) (uint32, error) { return 0, nil }

func (Discard) Close(uint32) error { return nil }
