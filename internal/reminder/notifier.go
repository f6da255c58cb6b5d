package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindTask  Kind = "task"
	KindDaily Kind = "daily"
)

// Notification is one reminder ready to be delivered. Daily reminders carry
// zero UserID and HabitID and are addressed to everybody.
type Notification struct {
	Kind    Kind
	UserID  uuid.UUID
	HabitID uuid.UUID
	Title   string
	Body    string
	At      time.Time
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// SlogNotifier delivers reminders as structured log records.
type SlogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogNotifier{logger: logger.With(slog.String("component", "reminder"))}
}

func (n *SlogNotifier) Notify(ctx context.Context, msg Notification) error {
	attrs := []slog.Attr{
		slog.String("kind", string(msg.Kind)),
		slog.String("title", msg.Title),
		slog.String("body", msg.Body),
		slog.Time("at", msg.At),
	}
	if msg.UserID != uuid.Nil {
		attrs = append(attrs, slog.String("uid", msg.UserID.String()))
	}
	if msg.HabitID != uuid.Nil {
		attrs = append(attrs, slog.String("habit_id", msg.HabitID.String()))
	}
	n.logger.LogAttrs(ctx, slog.LevelInfo, "reminder", attrs...)
	return nil
}
