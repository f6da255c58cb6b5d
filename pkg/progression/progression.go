package progression

import (
	"time"

	"github.com/limbo/dopamine/pkg/entity"
)

// WeekLength is the number of days in the weekly series.
const WeekLength = 7

// DayPoints is one entry of the weekly chart.
type DayPoints struct {
	Date   time.Time `json:"date"`
	Points int       `json:"points"`
}

// TotalPoints sums points of currently completed habits.
func TotalPoints(habits []*entity.Habit) int {
	return sumPoints(habits, func(h *entity.Habit) bool {
		return h.IsCompleted
	})
}

// PointsOn sums points of habits whose completion timestamp falls on day,
// no matter what the live completion flag says.
func (c Calendar) PointsOn(habits []*entity.Habit, day time.Time) int {
	return sumPoints(habits, func(h *entity.Habit) bool {
		return h.CompletedAt != nil && c.SameDay(*h.CompletedAt, day)
	})
}

func (c Calendar) TodayPoints(habits []*entity.Habit, now time.Time) int {
	return c.PointsOn(habits, now)
}

// DailyProgress is the capped fraction of the daily target reached so far.
func DailyProgress(todayPoints, dailyTarget int) float64 {
	if dailyTarget <= 0 || todayPoints <= 0 {
		return 0
	}
	return min(float64(todayPoints)/float64(dailyTarget), 1.0)
}

func IsTargetAchieved(todayPoints, dailyTarget int) bool {
	return dailyTarget > 0 && todayPoints >= dailyTarget
}

// WeeklyData returns WeekLength entries, oldest first, the last one being the
// reference day. Days without completions are present with zero points.
func (c Calendar) WeeklyData(habits []*entity.Habit, reference time.Time) []DayPoints {
	week := make([]DayPoints, WeekLength)
	for i := range week {
		day := c.DaysBefore(reference, WeekLength-1-i)
		week[i] = DayPoints{
			Date:   day,
			Points: c.PointsOn(habits, day),
		}
	}
	return week
}
