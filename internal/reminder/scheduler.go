// Package reminder plans habit reminders: a one-shot reminder some time after
// a habit is created and a repeating evening reminder.
package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/dopamine/pkg/entity"
)

const (
	DefaultTaskDelay = time.Hour
	DefaultDailyHour = 20

	notifyTimeout = 5 * time.Second
)

type Option func(*Scheduler)

func WithTaskDelay(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.delay = d
		}
	}
}

func WithDailyHour(hour int) Option {
	return func(s *Scheduler) {
		if hour >= 0 && hour < 24 {
			s.dailyHour = hour
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

type task struct {
	userID uuid.UUID
	timer  *time.Timer
}

// Scheduler keeps one pending timer per habit. All methods are safe for
// concurrent use.
type Scheduler struct {
	notifier  Notifier
	loc       *time.Location
	delay     time.Duration
	dailyHour int
	now       func() time.Time

	mu    sync.Mutex
	tasks map[uuid.UUID]*task
}

func New(notifier Notifier, loc *time.Location, opts ...Option) *Scheduler {
	if notifier == nil {
		notifier = NewSlogNotifier(nil)
	}
	if loc == nil {
		loc = time.Local
	}
	s := &Scheduler{
		notifier:  notifier,
		loc:       loc,
		delay:     DefaultTaskDelay,
		dailyHour: DefaultDailyHour,
		now:       time.Now,
		tasks:     make(map[uuid.UUID]*task),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScheduleTaskReminder plans a reminder for an incomplete habit, replacing
// the one already pending for it.
func (s *Scheduler) ScheduleTaskReminder(habit *entity.Habit) {
	if habit == nil || habit.IsCompleted {
		return
	}
	msg := Notification{
		Kind:    KindTask,
		UserID:  habit.UserID,
		HabitID: habit.ID,
		Title:   "Don't forget!",
		Body:    "Time to complete: " + habit.Title,
	}
	t := &task{userID: habit.UserID}
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.tasks[habit.ID]; ok {
		prev.timer.Stop()
	}
	t.timer = time.AfterFunc(s.delay, func() {
		s.fire(habit.ID, t, msg)
	})
	s.tasks[habit.ID] = t
}

func (s *Scheduler) fire(habitID uuid.UUID, t *task, msg Notification) {
	s.mu.Lock()
	current, ok := s.tasks[habitID]
	if !ok || current != t {
		s.mu.Unlock()
		return
	}
	delete(s.tasks, habitID)
	s.mu.Unlock()
	msg.At = s.now()
	s.deliver(msg)
}

func (s *Scheduler) CancelTaskReminder(habitID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tasks[habitID]; ok {
		t.timer.Stop()
		delete(s.tasks, habitID)
	}
}

func (s *Scheduler) CancelUserReminders(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tasks {
		if t.userID == userID {
			t.timer.Stop()
			delete(s.tasks, id)
		}
	}
}

// Pending reports how many task reminders are waiting to fire.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// NextDaily returns the first daily reminder moment strictly after now.
func (s *Scheduler) NextDaily(now time.Time) time.Time {
	local := now.In(s.loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), s.dailyHour, 0, 0, 0, s.loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, s.dailyHour, 0, 0, 0, s.loc)
	}
	return next
}

// RunDaily blocks delivering the daily reminder until ctx is done.
func (s *Scheduler) RunDaily(ctx context.Context) error {
	for {
		next := s.NextDaily(s.now())
		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			s.deliver(Notification{
				Kind:  KindDaily,
				Title: "Daily check",
				Body:  "How are your habits going today? Take a look!",
				At:    next,
			})
		}
	}
}

// Stop drops every pending task reminder.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tasks {
		t.timer.Stop()
		delete(s.tasks, id)
	}
}

func (s *Scheduler) deliver(msg Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := s.notifier.Notify(ctx, msg); err != nil {
		slog.Error("reminder delivery error", slog.String("kind", string(msg.Kind)), slog.String("error", err.Error()))
	}
}
