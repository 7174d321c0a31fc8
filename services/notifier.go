// Package services: services/notifier.go
package services

import (
	"github.com/gin-contrib/sessions"
	"go-student-dashboard/logger"
)

// FlashKey groups toast messages among the session flashes.
const FlashKey = "toast"

// Notifier shows a user-visible success message.
type Notifier interface {
	Success(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Success calls f.
func (f NotifierFunc) Success(message string) { f(message) }

// MultiNotifier fans a message out to several notifiers.
type MultiNotifier []Notifier

// Success forwards to every non-nil notifier in order.
func (m MultiNotifier) Success(message string) {
	for _, n := range m {
		if n != nil {
			n.Success(message)
		}
	}
}

// FlashNotifier queues the message as a session flash for the next page view.
type FlashNotifier struct {
	session sessions.Session
}

// NewFlashNotifier wraps the request's session.
func NewFlashNotifier(s sessions.Session) *FlashNotifier {
	return &FlashNotifier{session: s}
}

// Success adds a flash and saves the session.
func (f *FlashNotifier) Success(message string) {
	f.session.AddFlash(message, FlashKey)
	if err := f.session.Save(); err != nil {
		logger.Error.Printf("FlashNotifier: failed to save flash: %v", err)
	}
}

// PopFlashes drains queued toasts from the session.
func PopFlashes(s sessions.Session) []string {
	raw := s.Flashes(FlashKey)
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(); err != nil {
		logger.Error.Printf("PopFlashes: failed to save session: %v", err)
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if msg, ok := v.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}
