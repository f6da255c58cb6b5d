package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/limbo/dopamine/pkg/entity"
)

type Option func(*settings)

type settings struct {
	now           func() time.Time
	reminders     ReminderScheduler
	defaultTarget int
}

func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

func WithReminders(r ReminderScheduler) Option {
	return func(s *settings) {
		if r != nil {
			s.reminders = r
		}
	}
}

func WithDefaultDailyTarget(target int) Option {
	return func(s *settings) {
		if target > 0 {
			s.defaultTarget = target
		}
	}
}

func collect(opts []Option) settings {
	s := settings{
		now:           time.Now,
		reminders:     noopReminders{},
		defaultTarget: entity.DefaultDailyTarget,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

type noopReminders struct{}

func (noopReminders) ScheduleTaskReminder(*entity.Habit) {}
func (noopReminders) CancelTaskReminder(uuid.UUID) {}
func (noopReminders) CancelUserReminders(uuid.UUID) {}
