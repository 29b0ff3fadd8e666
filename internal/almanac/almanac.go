package almanac

import (
	"time"

	"github.com/6tail/lunar-go/calendar"
)

// zodiac lists the twelve animals in cycle order. Year 4 CE was a Rat year,
// which anchors the (year-4) offset below.
var zodiac = [12]string{
	"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake",
	"Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig",
}

// Date is one instant described in both calendars.
type Date struct {
	Gregorian time.Time
	Weekday   string

	LunarYear  int
	LunarMonth int
	LunarDay   int
	Zodiac     string

	SolarTermIndex int
}

// At converts an instant into the combined calendar view.
func At(now time.Time) Date {
	lunar := calendar.NewSolarFromDate(now).GetLunar()

	return Date{
		Gregorian:      now,
		Weekday:        now.Weekday().String(),
		LunarYear:      lunar.GetYear(),
		LunarMonth:     absInt(lunar.GetMonth()),
		LunarDay:       lunar.GetDay(),
		Zodiac:         ZodiacFor(lunar.GetYear()),
		SolarTermIndex: CurrentTermIndex(now),
	}
}

// ZodiacFor returns the animal for a lunar year. Safe for years before 4 CE.
func ZodiacFor(lunarYear int) string {
	idx := (lunarYear - 4) % 12
	if idx < 0 {
		idx += 12
	}
	return zodiac[idx]
}

// absInt folds the negative month numbers the lunar library uses for leap
// months back into the plain 1..12 range.
func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
