package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/zatyshok/internal/client/agenda"
	"github.com/dmitrijs2005/zatyshok/internal/client/models"
)

var moodIcons = map[models.Mood]string{
	models.MoodGreat: ":D",
	models.MoodOK:    ":)",
	models.MoodMeh:   ":|",
	models.MoodBad:   ":(",
}

// formatEntry renders one calendar line, e.g.
//
//	#3  2024-06-08  event  evening  [12:00] picnic  (her)
func formatEntry(e models.Entry, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%-4d", e.IDOrZero())

	day := agenda.NormalizePtr(e.Date, loc)
	if day == "" {
		day = "----------"
	}
	fmt.Fprintf(&b, " %s  %-5s", day, e.Category)
	if e.Moment != "" {
		fmt.Fprintf(&b, "  %-9s", e.Moment)
	}
	b.WriteString("  " + e.Text)
	if e.CreatedBy != nil {
		fmt.Fprintf(&b, "  (%s)", *e.CreatedBy)
	}
	return b.String()
}

func formatMood(m models.MoodRecord, loc *time.Location) string {
	s := fmt.Sprintf("%s  %s %s", agenda.NormalizeDay(m.Date, loc), moodIcons[m.Mood], m.Mood)
	if m.Note != "" {
		s += "  " + m.Note
	}
	return s
}
