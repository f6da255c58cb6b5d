package progression

import (
	"time"

	"github.com/limbo/dopamine/pkg/entity"
)

type Tier string

const (
	TierRestDay         Tier = "rest_day"
	TierGoodStart       Tier = "good_start"
	TierHighPerformance Tier = "high_performance"
)

func (t Tier) Summary() string {
	switch t {
	case TierHighPerformance:
		return "You were unstoppable that day!"
	case TierGoodStart:
		return "That was a good start!"
	default:
		return "Looks like you took a rest that day."
	}
}

// SummaryThresholds are the completed-habit counts at which a day moves into
// the next tier. Counts below GoodStartMin are a rest day.
type SummaryThresholds struct {
	GoodStartMin       int
	HighPerformanceMin int
}

func DefaultThresholds() SummaryThresholds {
	return SummaryThresholds{
		GoodStartMin:       1,
		HighPerformanceMin: 3,
	}
}

// Normalize raises GoodStartMin to at least one and keeps HighPerformanceMin
// from falling below it.
func (st SummaryThresholds) Normalize() SummaryThresholds {
	st.GoodStartMin = max(st.GoodStartMin, 1)
	st.HighPerformanceMin = max(st.HighPerformanceMin, st.GoodStartMin)
	return st
}

func (st SummaryThresholds) TierFor(completed int) Tier {
	switch {
	case completed >= st.HighPerformanceMin && completed >= st.GoodStartMin:
		return TierHighPerformance
	case completed >= st.GoodStartMin && completed > 0:
		return TierGoodStart
	default:
		return TierRestDay
	}
}

type DayDetails struct {
	Date            time.Time       `json:"date"`
	CompletedHabits []*entity.Habit `json:"completed_habits"`
	TotalPoints     int             `json:"total_points"`
	Tier            Tier            `json:"tier"`
	Summary         string          `json:"summary"`
}

// CompletedOn keeps habits completed on the same calendar day as date,
// preserving input order.
func (c Calendar) CompletedOn(habits []*entity.Habit, date time.Time) []*entity.Habit {
	completed := make([]*entity.Habit, 0)
	for _, h := range habits {
		if h == nil || h.CompletedAt == nil {
			continue
		}
		if c.SameDay(*h.CompletedAt, date) {
			completed = append(completed, h)
		}
	}
	return completed
}

func (c Calendar) DetailsFor(date time.Time, habits []*entity.Habit, st SummaryThresholds) DayDetails {
	completed := c.CompletedOn(habits, date)
	tier := st.TierFor(len(completed))
	return DayDetails{
		Date:            c.StartOfDay(date),
		CompletedHabits: completed,
		TotalPoints:     sumPoints(completed, func(*entity.Habit) bool { return true }),
		Tier:            tier,
		Summary:         tier.Summary(),
	}
}
