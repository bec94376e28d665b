package publish

import (
	"fmt"
	"io"
	"sync"

	"github.com/pterm/pterm"
)

// Level classifies a notification
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier surfaces publish outcomes to the user
type Notifier interface {
	Notify(level Level, message string)
}

// NopNotifier drops every notification
type NopNotifier struct{}

func (NopNotifier) Notify(Level, string) {}

// ConsoleNotifier prints notifications with pterm's prefix printers
type ConsoleNotifier struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
}

// NewConsoleNotifier writes successes to out and errors to errOut
func NewConsoleNotifier(out, errOut io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out, errOut: errOut}
}

func (c *ConsoleNotifier) Notify(level Level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if level == LevelError {
		fmt.Fprintln(c.errOut, pterm.Error.Sprint(message))
		return
	}
	fmt.Fprintln(c.out, pterm.Success.Sprint(message))
}

// Notification is one recorded Notify call
type Notification struct {
	Level   Level
	Message string
}

// RecordingNotifier keeps every notification, for tests and embedding
type RecordingNotifier struct {
	mu    sync.Mutex
	items []Notification
}

func (r *RecordingNotifier) Notify(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Level: level, Message: message})
}

// Notifications returns a copy of everything recorded so far
func (r *RecordingNotifier) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}
