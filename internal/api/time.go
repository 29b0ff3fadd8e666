package api

import (
	"net/http"

	"github.com/arlenmoss/emberwatch/internal/almanac"
)

// gregorianLayout is the timestamp format served on the calendar endpoint.
const gregorianLayout = "2006-01-02 15:04:05"

// timeResponse is the combined calendar payload the clock firmware parses.
type timeResponse struct {
	Gregorian string       `json:"gregorian"`
	Weekday   string       `json:"weekday"`
	Solar     solarSection `json:"solar"`
	Lunar     lunarSection `json:"lunar"`
}

type solarSection struct {
	Year      int `json:"year"`
	Month     int `json:"month"`
	Day       int `json:"day"`
	SolarTerm int `json:"solar_term"`
}

type lunarSection struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Zodiac string `json:"zodiac"`
}

// handleTime serves the current instant in both calendars.
func (s *Server) handleTime(w http.ResponseWriter, _ *http.Request) {
	now := s.now()
	d := almanac.At(now)

	writeJSON(w, http.StatusOK, timeResponse{
		Gregorian: now.Format(gregorianLayout),
		Weekday:   d.Weekday,
		Solar: solarSection{
			Year:      now.Year(),
			Month:     int(now.Month()),
			Day:       now.Day(),
			SolarTerm: d.SolarTermIndex,
		},
		Lunar: lunarSection{
			Year:   d.LunarYear,
			Month:  d.LunarMonth,
			Day:    d.LunarDay,
			Zodiac: d.Zodiac,
		},
	})
}
