package ui

import (
	"fmt"
	"os/exec"
	"runtime"

	"lcstats/pkg/processor"
)

// NotificationSender interface for platform-specific notification implementations
type NotificationSender interface {
	Send(title, message string) error
}

// LinuxNotificationSender sends notifications on Linux using notify-send
type LinuxNotificationSender struct{}

func (l *LinuxNotificationSender) Send(title, message string) error {
	return exec.Command("notify-send", "--app-name=lcstats", title, message).Run()
}

// MacOSNotificationSender sends notifications on macOS using osascript
type MacOSNotificationSender struct{}

func (m *MacOSNotificationSender) Send(title, message string) error {
	script := fmt.Sprintf(`display notification %q with title %q`, message, title)
	return exec.Command("osascript", "-e", script).Run()
}

// Notifier sends a desktop notification when a long run finishes.
// It implements processor.Observer but only reacts to RunFinished.
type Notifier struct {
	processor.NopObserver
	sender NotificationSender
}

// NewNotifier creates a Notifier for the current platform.
// Unsupported platforms get a Notifier that does nothing.
func NewNotifier() *Notifier {
	var sender NotificationSender

	switch runtime.GOOS {
	case "linux":
		sender = &LinuxNotificationSender{}
	case "darwin":
		sender = &MacOSNotificationSender{}
	}

	return &Notifier{sender: sender}
}

// NewNotifierWithSender creates a Notifier with an explicit sender
func NewNotifierWithSender(sender NotificationSender) *Notifier {
	return &Notifier{sender: sender}
}

// RunFinished sends the run summary as a notification
func (n *Notifier) RunFinished(summary processor.Summary) {
	if n.sender == nil {
		return
	}

	title := "lcstats run finished"
	if summary.Cancelled {
		title = "lcstats run cancelled"
	}
	message := fmt.Sprintf("%d profiles looked up, %d failed, %d rows skipped",
		summary.Processed, summary.Failed+summary.NotFound, summary.Skipped)

	// Notifications are best effort
	_ = n.sender.Send(title, message)
}
