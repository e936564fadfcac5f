package invoice

import "sync"

// NotificationLog is a process-wide append-only log of invoice events.
// It is injected into the Service rather than accessed as ambient state,
// which keeps the extraction core side-effect free and testable.
type NotificationLog struct {
	mu      sync.Mutex
	entries []Notification
}

// NewNotificationLog creates an empty NotificationLog
func NewNotificationLog() *NotificationLog {
	return &NotificationLog{}
}

// Append adds an entry to the log
func (l *NotificationLog) Append(n Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, n)
}

// List returns a copy of all entries in append order
func (l *NotificationLog) List() []Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := make([]Notification, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Reset clears the log
func (l *NotificationLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
