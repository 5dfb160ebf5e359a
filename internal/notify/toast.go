package notify

import (
	"fmt"
	"log/slog"
)

const toastTimeout = 3000

// Toaster shows short-lived capacity messages. Each toast replaces the
// previous one so repeated rejections do not stack.
type Toaster struct {
	notifier Notifier
	logger   *slog.Logger
	lastID   uint32
}

// NewToaster wraps n. A nil notifier makes every call a no-op.
func NewToaster(n Notifier, logger *slog.Logger) *Toaster {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Toaster{notifier: n, logger: logger}
}

// MaxReached reports a rejected single toggle.
func (t *Toaster) MaxReached(maxSelection int) {
	t.show(MaxReachedToast(maxSelection))
}

// WillExceedMax reports a rejected select-all.
func (t *Toaster) WillExceedMax(maxSelection, requested int) {
	t.show(WillExceedMaxToast(maxSelection, requested))
}

// Dismiss withdraws the last toast, if any is still known.
func (t *Toaster) Dismiss() {
	if t == nil || t.notifier == nil || t.lastID == 0 {
		return
	}
	if err := t.notifier.Close(t.lastID); err != nil {
		t.logger.Debug("closing toast failed", "id", t.lastID, "err", err)
	}
	t.lastID = 0
}

func (t *Toaster) show(n Notification) {
	if t == nil || t.notifier == nil {
		return
	}
	n.ReplacesID = t.lastID
	id, err := t.notifier.Notify(n)
	if err != nil {
		t.logger.Warn("desktop notification failed", "title", n.Title, "err", err)
		return
	}
	if id != 0 {
		t.lastID = id
	}
}

// MaxReachedToast builds the toast for a toggle rejected at capacity.
func MaxReachedToast(maxSelection int) Notification {
	return Notification{
		Title:   "Selection full",
		Body:    fmt.Sprintf("You can select up to %s.", plural(maxSelection, "image")),
		Timeout: toastTimeout,
		Urgency: UrgencyNormal,
	}
}

// WillExceedMaxToast builds the toast for a select-all that would overflow.
func WillExceedMaxToast(maxSelection, requested int) Notification {
	return Notification{
		Title: "Too many images",
		Body: fmt.Sprintf("Selecting all would add %s; the limit is %d.",
			plural(requested, "image"), maxSelection),
		Timeout: toastTimeout,
		Urgency: UrgencyNormal,
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
