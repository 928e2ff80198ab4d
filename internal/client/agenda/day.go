// Package agenda turns the flat collections fetched from the backend into
// the views a dashboard shows: the upcoming schedule, the notes drawer,
// today's programme and the mood for a given day.
//
// All comparisons happen on normalized days: "YYYY-MM-DD" strings in a
// fixed calendar (see NormalizeDay), which order lexicographically the same
// way they order in time. The empty string stands for "no usable date" and
// never matches a real day.
package agenda

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/zatyshok/internal/common"
)

// timestampLayouts are tried in order after the bare-day form. Layouts
// without a zone are read in the caller's location.
var timestampLayouts = []struct {
	layout string
	zoned  bool
}{
	{time.RFC3339Nano, true},
	{time.RFC3339, true},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
	{"2006-01-02 15:04:05", false},
}

// NormalizeDay converts raw into the calendar day it denotes in loc.
//
// A bare "YYYY-MM-DD" is already a calendar day and is returned unchanged,
// so normalizing twice gives the same result. Timestamps carrying an offset
// are converted into loc before the day is taken; zone-less timestamps are
// read as wall-clock time in loc. Anything else yields "".
func NormalizeDay(raw string, loc *time.Location) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}

	if len(raw) == len(common.DayLayout) {
		if _, err := time.Parse(common.DayLayout, raw); err == nil {
			return raw
		}
		return ""
	}

	for _, l := range timestampLayouts {
		var (
			ts  time.Time
			err error
		)
		if l.zoned {
			ts, err = time.Parse(l.layout, raw)
		} else {
			ts, err = time.ParseInLocation(l.layout, raw, loc)
		}
		if err == nil {
			return ts.In(loc).Format(common.DayLayout)
		}
	}
	return ""
}

// NormalizePtr is NormalizeDay for nullable dates.
func NormalizePtr(raw *string, loc *time.Location) string {
	if raw == nil {
		return ""
	}
	return NormalizeDay(*raw, loc)
}

// Today returns the normalized day of now in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc).Format(common.DayLayout)
}

// ShiftDay moves a normalized day by n calendar days. It returns "" for an
// empty or malformed day.
func ShiftDay(day string, n int) string {
	t, err := time.Parse(common.DayLayout, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, n).Format(common.DayLayout)
}
