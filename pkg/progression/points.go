// Package progression turns a snapshot of habits into points, level and
// per-day aggregates. Everything here is pure: callers pass the current habit
// collection on every call and nothing is cached between calls.
package progression

import "github.com/limbo/dopamine/pkg/entity"

const (
	EasyPoints   = 5
	MediumPoints = 15
	HardPoints   = 40
)

// Points maps a difficulty tier to its reward. Values other than 1 and 2
// fall into the hard bucket.
func Points(difficulty int) int {
	switch difficulty {
	case 1:
		return EasyPoints
	case 2:
		return MediumPoints
	default:
		return HardPoints
	}
}

// HabitPoints is a shortcut for Points(h.Difficulty).
func HabitPoints(h *entity.Habit) int {
	return Points(h.Difficulty)
}

func sumPoints(habits []*entity.Habit, keep func(h *entity.Habit) bool) int {
	total := 0
	for _, h := range habits {
		if h == nil || !keep(h) {
			continue
		}
		total += Points(h.Difficulty)
	}
	return total
}
