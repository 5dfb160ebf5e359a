//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	busName   = "org.freedesktop.Notifications"
	busPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	busNotify = busName + ".Notify"
	busClose  = busName + ".CloseNotification"
)

// caller is the part of dbus.BusObject the notifier uses.
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

type busNotifier struct {
	obj caller
}

// New connects to the session bus. Without one, toasts are discarded
// rather than failing the picker.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Discard{}, nil //nolint:nilerr // no session bus means no toasts
	}
	return &busNotifier{obj: conn.Object(busName, busPath)}, nil
}

func (b *busNotifier) Notify(n Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
		"transient":     dbus.MakeVariant(true),
	}
	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout)
	call := b.obj.Call(busNotify, 0,
		appDisplayName, n.ReplacesID, "", n.Title, n.Body, []string{}, hints, n.Timeout)
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify %q: %w", n.Title, err)
	}
	return id, nil
}

func (b *busNotifier) Close(id uint32) error {
	if err := b.obj.Call(busClose, 0, id).Err; err != nil {
		return fmt.Errorf("close notification %d: %w", id, err)
	}
	return nil
}
