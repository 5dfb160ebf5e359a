//go:build linux

package notify

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
)

type call struct {
	method string
	args   []any
}

// fakeBus answers Notify with a fixed ID and records every call.
type fakeBus struct {
	calls []call
	id    uint32
	err   error
}

func (f *fakeBus) Call(method string, _ dbus.Flags, args ...any) *dbus.Call {
	f.calls = append(f.calls, call{method: method, args: args})
	if f.err != nil {
		return &dbus.Call{Err: f.err}
	}
	if method == busNotify {
		return &dbus.Call{Body: []any{f.id}}
	}
	return &dbus.Call{}
}

func TestBusNotifier_NotifyArguments(t *testing.T) {
	bus := &fakeBus{id: 12}
	n := &busNotifier{obj: bus}

	toaster := NewToaster(n, nil)
	toaster.MaxReached(3)
	toaster.MaxReached(3)

	if len(bus.calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(bus.calls))
	}
	first, second := bus.calls[0], bus.calls[1]
	if first.method != busNotify {
		t.Errorf("method = %q", first.method)
	}
	if len(first.args) != 8 {
		t.Fatalf("got %d arguments, want 8", len(first.args))
	}
	if first.args[0] != appDisplayName || first.args[3] != "Selection full" {
		t.Errorf("app name, summary = %v, %v", first.args[0], first.args[3])
	}
	if first.args[1] != uint32(0) || second.args[1] != uint32(12) {
		t.Errorf("replaces_id = %v then %v, want 0 then 12", first.args[1], second.args[1])
	}
	hints, ok := first.args[6].(map[string]dbus.Variant)
	if !ok {
		t.Fatalf("hints = %T", first.args[6])
	}
	if hints["urgency"].Value() != byte(UrgencyNormal) {
		t.Errorf("urgency hint = %v", hints["urgency"].Value())
	}
	if hints["desktop-entry"].Value() != appName {
		t.Errorf("desktop-entry hint = %v", hints["desktop-entry"].Value())
	}
	if first.args[7] != int32(toastTimeout) {
		t.Errorf("timeout = %v", first.args[7])
	}

	toaster.Dismiss()
	last := bus.calls[len(bus.calls)-1]
	if last.method != busClose || last.args[0] != uint32(12) {
		t.Errorf("dismiss call = %+v", last)
	}
}

func TestBusNotifier_Errors(t *testing.T) {
	bus := &fakeBus{err: errors.New("org.freedesktop.DBus.Error.ServiceUnknown")}
	n := &busNotifier{obj: bus}

	if id, err := n.Notify(MaxReachedToast(1)); err == nil || id != 0 {
		t.Errorf("Notify = %d, %v; want 0 and an error", id, err)
	}
	if err := n.Close(3); err == nil {
		t.Error("Close should report the bus error")
	}
}
