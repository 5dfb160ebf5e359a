//go:build !linux

package notify

// New returns Discard: desktop toasts are only sent on Linux.
func New() (Notifier, error) {
	return Discard{}, nil
}
