package cli

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/zatyshok/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestFormatEntry(t *testing.T) {
	her := models.AuthorHer
	e := models.Entry{
		ID:        i64(3),
		Text:      "[12:00] picnic",
		Date:      strPtr("2024-06-08T10:00:00Z"),
		Moment:    models.MomentAfternoon,
		Category:  models.CategoryEvent,
		CreatedBy: &her,
	}
	assert.Equal(t, "#3    2024-06-08  event  afternoon  [12:00] picnic  (her)", formatEntry(e, time.UTC))

	undated := models.Entry{Text: "thought", Category: models.CategoryNote}
	assert.Equal(t, "#0    ----------  note   thought", formatEntry(undated, time.UTC))
}

func TestFormatMood(t *testing.T) {
	m := models.MoodRecord{Mood: models.MoodMeh, Date: "2024-06-01", Note: "rainy"}
	assert.Equal(t, "2024-06-01  :| meh  rainy", formatMood(m, time.UTC))
}
