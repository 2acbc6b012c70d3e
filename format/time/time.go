package time

import (
	"fmt"
	"strings"
	"time"
)

var dateFormatReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"MM", "01",
	"M", "1",
	"DD", "02",
	"D", "2",
	"+hh:mm", "Z07:00",
	"+hhmm", "Z0700",
	"+hh", "Z07",
	"-hh:mm", "Z07:00",
	"-hhmm", "Z0700",
	"hh", "15",
	"mm", "04",
	"m", "4",
	"ss", "05",
	".SSS", ".999",
	".SS", ".99",
	".S", ".9",
	"-hh", "Z07",
	"Z", "Z07:00",
)

// Layouts lists layouts tried when no layout was specified
var Layouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateFormatToTimeLayout converts ISO 2022-07-15 date format to RFC3339 time layout
func DateFormatToTimeLayout(dateFormat string) string {
	return dateFormatReplacer.Replace(dateFormat)
}

// Parse parses value with supplied layout, or with the first matching of Layouts if layout is empty
func Parse(layout, value string) (time.Time, error) {
	if layout != "" {
		return parse(layout, value)
	}
	var err error
	for _, candidate := range Layouts {
		var ts time.Time
		if ts, err = parse(candidate, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse time %q: %w", value, err)
}

func parse(layout, value string) (time.Time, error) {
	if strings.Contains(value, "T") != strings.Contains(layout, "T") {
		layout = strings.Replace(layout, "T", " ", 1)
		value = strings.Replace(value, "T", " ", 1)
	}
	ts, err := time.ParseInLocation(layout, value, time.UTC)
	if err == nil {
		return ts, nil
	}
	if len(value) < len(layout) { //layout with optional time or zone fragment
		if ts, e := time.ParseInLocation(layout[:len(value)], value, time.UTC); e == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}
