package service

import "time"

var quotes = []string{
	"Today is a great day to be better than yesterday.",
	"Small steps lead to big results.",
	"Focus is the key to everything.",
	"Discipline is the price of freedom.",
	"Just start, the dopamine will follow.",
	"Challenges are the bricks that build your character.",
	"Today's effort is tomorrow's pride.",
}

// DailyQuote picks the quote of the day by day-of-year, so it changes at
// local midnight and repeats every len(quotes) days.
func DailyQuote(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return quotes[t.In(loc).YearDay()%len(quotes)]
}
