// Package notify delivers a titled message to the user: an alert box on a
// device, a line on a terminal, or a structured log record.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// ErrNilWriter is returned when a WriterNotifier has no destination.
var ErrNilWriter = errors.New("notify: writer is required")

// Notifier shows message under title.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(ctx context.Context, title, message string) error

// Notify implements Notifier.
func (fn NotifierFunc) Notify(ctx context.Context, title, message string) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, title, message)
}

// WriterNotifier prints notifications as "<title>: <message>" lines.
type WriterNotifier struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

// WriterOption customises a WriterNotifier.
type WriterOption func(*WriterNotifier)

// WithPrefix prepends prefix to every line.
func WithPrefix(prefix string) WriterOption {
	return func(n *WriterNotifier) {
		n.prefix = prefix
	}
}

// NewWriter builds a WriterNotifier writing to w.
func NewWriter(w io.Writer, opts ...WriterOption) *WriterNotifier {
	n := &WriterNotifier{w: w}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// Notify implements Notifier.
func (n *WriterNotifier) Notify(ctx context.Context, title, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n == nil || n.w == nil {
		return ErrNilWriter
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	line := message
	if title = strings.TrimSpace(title); title != "" {
		line = title + ": " + message
	}
	if _, err := fmt.Fprintln(n.w, n.prefix+line); err != nil {
		return fmt.Errorf("notify: write: %w", err)
	}
	return nil
}

// LogNotifier records notifications as slog records.
type LogNotifier struct {
	Logger *slog.Logger
	Level  slog.Level
}

// Notify implements Notifier.
func (n LogNotifier) Notify(ctx context.Context, title, message string) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(ctx, n.Level, "notification", slog.String("title", title), slog.String("message", message))
	return nil
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Message is a single recorded notification.
type Message struct {
	Title   string
	Message string
}

// Notify implements Notifier.
func (r *Recorder) Notify(_ context.Context, title, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Title: title, Message: message})
	return nil
}

// Messages returns a copy of the recorded notifications.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Multi fans a notification out to every notifier, joining their errors.
func Multi(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(ctx context.Context, title, message string) error {
		var errs []error
		for _, n := range notifiers {
			if n == nil {
				continue
			}
			if err := n.Notify(ctx, title, message); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
