package platform

import (
	"errors"
	"sync"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"
)

// ErrNotificationsDenied is returned when desktop notifications are
// disabled or no notification backend is available.
var ErrNotificationsDenied = errors.New("notifications denied")

// NotificationSender delivers desktop notifications. fyne.App implements it.
type NotificationSender interface {
	SendNotification(notification *fyne.Notification)
}

// Notifier sends desktop notifications once permission has been granted.
// A denied notifier drops every message.
type Notifier struct {
	mu        sync.Mutex
	sender    NotificationSender
	logger    *zap.Logger
	requested bool
	allowed   bool
}

// NewNotifier wraps sender. A nil sender behaves as permanently denied.
func NewNotifier(sender NotificationSender, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{sender: sender, logger: logger}
}

// Request resolves permission the first time it is called; later calls
// return the first answer.
func (notifier *Notifier) Request(enabled bool) error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if !notifier.requested {
		notifier.requested = true
		notifier.allowed = enabled && notifier.sender != nil
		if !notifier.allowed {
			notifier.logger.Info("desktop notifications disabled")
		}
	}
	if !notifier.allowed {
		return ErrNotificationsDenied
	}
	return nil
}

// SetEnabled follows a settings change after the initial request.
func (notifier *Notifier) SetEnabled(enabled bool) {
	notifier.mu.Lock()
	notifier.requested = true
	notifier.allowed = enabled && notifier.sender != nil
	notifier.mu.Unlock()
}

// Notify sends a notification when allowed and reports whether it was sent.
func (notifier *Notifier) Notify(title, content string) bool {
	notifier.mu.Lock()
	allowed := notifier.allowed
	sender := notifier.sender
	notifier.mu.Unlock()
	if !allowed {
		return false
	}
	sender.SendNotification(fyne.NewNotification(title, content))
	return true
}
