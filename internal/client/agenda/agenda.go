package agenda

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/zatyshok/internal/client/models"
)

// Buckets is the presentation-ready split of a calendar collection.
type Buckets struct {
	// Schedule holds dated goals and events due today or later, earliest
	// first; entries sharing a day keep their collection order.
	Schedule []models.Entry
	// Notes holds every note regardless of date, highest id first.
	Notes []models.Entry
}

// Split partitions entries against today (a normalized day). Goals and
// events without a usable date are dropped from Schedule silently: the
// schedule only lists dated items.
func Split(entries []models.Entry, today string, loc *time.Location) Buckets {
	type dated struct {
		entry models.Entry
		day   string
	}

	var upcoming []dated
	notes := make([]models.Entry, 0)

	for _, e := range entries {
		if e.Category == models.CategoryNote {
			notes = append(notes, e)
			continue
		}
		day := NormalizePtr(e.Date, loc)
		if day == "" || day < today {
			continue
		}
		upcoming = append(upcoming, dated{entry: e, day: day})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].day < upcoming[j].day
	})
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].IDOrZero() > notes[j].IDOrZero()
	})

	schedule := make([]models.Entry, 0, len(upcoming))
	for _, d := range upcoming {
		schedule = append(schedule, d.entry)
	}

	return Buckets{Schedule: schedule, Notes: notes}
}

// DueOn returns the goals and events whose normalized date is day, in
// collection order.
func DueOn(entries []models.Entry, day string, loc *time.Location) []models.Entry {
	result := make([]models.Entry, 0)
	if day == "" {
		return result
	}
	for _, e := range entries {
		if e.Category == models.CategoryNote {
			continue
		}
		if NormalizePtr(e.Date, loc) == day {
			result = append(result, e)
		}
	}
	return result
}

// MoodForDay returns the first record whose normalized date equals day.
// With duplicate same-day records the winner depends on server order.
func MoodForDay(moods []models.MoodRecord, day string, loc *time.Location) (models.MoodRecord, bool) {
	if day == "" {
		return models.MoodRecord{}, false
	}
	for _, m := range moods {
		if NormalizeDay(m.Date, loc) == day {
			return m, true
		}
	}
	return models.MoodRecord{}, false
}
