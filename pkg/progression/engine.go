package progression

import (
	"time"

	"github.com/limbo/dopamine/pkg/entity"
)

// Engine bundles the calendar and summary tiers used by one deployment.
type Engine struct {
	Calendar   Calendar
	Thresholds SummaryThresholds
}

func NewEngine(loc *time.Location, thresholds SummaryThresholds) *Engine {
	return &Engine{
		Calendar:   NewCalendar(loc),
		Thresholds: thresholds.Normalize(),
	}
}

type Snapshot struct {
	TotalPoints    int         `json:"total_points"`
	TodayPoints    int         `json:"today_points"`
	DailyTarget    int         `json:"daily_target"`
	DailyProgress  float64     `json:"daily_progress"`
	TargetAchieved bool        `json:"target_achieved"`
	Level          LevelInfo   `json:"level"`
	Weekly         []DayPoints `json:"weekly"`
}

// Snapshot recomputes every dashboard figure from habits as of now.
func (e *Engine) Snapshot(habits []*entity.Habit, dailyTarget int, now time.Time) Snapshot {
	total := TotalPoints(habits)
	today := e.Calendar.TodayPoints(habits, now)
	return Snapshot{
		TotalPoints:    total,
		TodayPoints:    today,
		DailyTarget:    dailyTarget,
		DailyProgress:  DailyProgress(today, dailyTarget),
		TargetAchieved: IsTargetAchieved(today, dailyTarget),
		Level:          LevelFor(total),
		Weekly:         e.Calendar.WeeklyData(habits, now),
	}
}

func (e *Engine) Weekly(habits []*entity.Habit, reference time.Time) []DayPoints {
	return e.Calendar.WeeklyData(habits, reference)
}

func (e *Engine) DayDetails(date time.Time, habits []*entity.Habit) DayDetails {
	return e.Calendar.DetailsFor(date, habits, e.Thresholds)
}
