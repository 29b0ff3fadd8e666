package almanac

import "time"

// SolarTerm is one of the 24 divisions of the solar year, with the exact
// instant it begins.
type SolarTerm struct {
	Name  string
	Start time.Time
}

// term builds a 2025 table entry in local time.
func term(name string, month time.Month, day, hour, minute int) SolarTerm {
	return SolarTerm{
		Name:  name,
		Start: time.Date(2025, month, day, hour, minute, 0, 0, time.Local),
	}
}

// solarTerms2025 holds the published start instants for 2025, in order.
var solarTerms2025 = []SolarTerm{
	term("Minor Cold", time.January, 5, 10, 33),
	term("Major Cold", time.January, 20, 4, 0),
	term("Beginning of Spring", time.February, 3, 22, 10),
	term("Rain Water", time.February, 18, 18, 7),
	term("Awakening of Insects", time.March, 5, 16, 7),
	term("Spring Equinox", time.March, 20, 17, 1),
	term("Pure Brightness", time.April, 4, 20, 49),
	term("Grain Rain", time.April, 20, 3, 56),
	term("Beginning of Summer", time.May, 5, 13, 57),
	term("Grain Full", time.May, 21, 2, 55),
	term("Grain in Ear", time.June, 5, 17, 57),
	term("Summer Solstice", time.June, 21, 10, 42),
	term("Minor Heat", time.July, 7, 4, 5),
	term("Major Heat", time.July, 22, 21, 29),
	term("Beginning of Autumn", time.August, 7, 13, 52),
	term("End of Heat", time.August, 23, 4, 34),
	term("White Dew", time.September, 7, 16, 52),
	term("Autumn Equinox", time.September, 23, 2, 19),
	term("Cold Dew", time.October, 8, 8, 41),
	term("Frost's Descent", time.October, 23, 11, 51),
	term("Beginning of Winter", time.November, 7, 12, 4),
	term("Minor Snow", time.November, 22, 9, 36),
	term("Major Snow", time.December, 7, 5, 5),
	term("Winter Solstice", time.December, 21, 23, 3),
}

// CurrentTermIndex returns the index of the solar term covering now.
//
// Each term spans the half-open interval from its start to the next term's
// start; the final term runs to January 1st of the following year. An
// instant outside every interval (before the first term or after the table's
// year) yields 0. A genuine match on index 0 is a match, not the fallback.
func CurrentTermIndex(now time.Time) int {
	for i, t := range solarTerms2025 {
		end := yearEnd(t.Start)
		if i < len(solarTerms2025)-1 {
			end = solarTerms2025[i+1].Start
		}
		if !now.Before(t.Start) && now.Before(end) {
			return i
		}
	}
	return 0
}

// TermName returns the name for a term index, or the empty string when the
// index is out of range.
func TermName(index int) string {
	if index < 0 || index >= len(solarTerms2025) {
		return ""
	}
	return solarTerms2025[index].Name
}

func yearEnd(start time.Time) time.Time {
	return time.Date(start.Year()+1, time.January, 1, 0, 0, 0, 0, start.Location())
}
