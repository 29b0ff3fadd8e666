package memo

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// memoDateLayout is the zero-padded date prefix consumers of the reminder
// topic parse. Payloads are "YYYY/MM/DD:content".
const memoDateLayout = "2006/01/02"

// dateInput accepts one- or two-digit month/day, e.g. "6/5" or "12/31".
var dateInput = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`)

var (
	errDateFormat   = errors.New("expected month/day")
	errDateInvalid  = errors.New("no such calendar day")
	errEmptyContent = errors.New("empty content")
)

// NormalizeDate parses a "month/day" string against the current year and
// returns the zero-padded "YYYY/MM/DD" form. Days that do not exist in the
// given month (e.g. 2/30) are rejected.
func NormalizeDate(now time.Time, input string) (string, error) {
	m := dateInput.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return "", errDateFormat
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])

	candidate := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, now.Location())
	if int(candidate.Month()) != month || candidate.Day() != day {
		return "", errDateInvalid
	}
	return candidate.Format(memoDateLayout), nil
}

// FormatMemo joins a normalized date and the reminder text into the wire form.
func FormatMemo(date, content string) (string, error) {
	if content == "" {
		return "", errEmptyContent
	}
	return fmt.Sprintf("%s:%s", date, content), nil
}

// QuickDates returns "month/day" suggestions for the five days starting
// tomorrow. AddDate carries month and year boundaries correctly, so a
// suggestion made on January 31st is February 1st rather than January 32nd.
func QuickDates(now time.Time) []string {
	dates := make([]string, 0, 5)
	for offset := 1; offset <= 5; offset++ {
		d := now.AddDate(0, 0, offset)
		dates = append(dates, fmt.Sprintf("%d/%d", int(d.Month()), d.Day()))
	}
	return dates
}
