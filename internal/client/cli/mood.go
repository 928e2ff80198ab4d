package cli

import (
	"context"

	"github.com/dmitrijs2005/zatyshok/internal/client/models"
)

// Mood records today's check-in.
func (a *App) Mood(ctx context.Context) error {
	options := make([]string, 0, len(models.Moods))
	for _, m := range models.Moods {
		options = append(options, string(m))
	}
	mood, err := GetChoice(a.reader, "How are you today?", options, "", a.out)
	if err != nil {
		return err
	}
	note, err := getSimpleText(a.reader, "A few words (optional)", a.out)
	if err != nil {
		return err
	}

	if err := a.moods.Submit(ctx, models.Mood(mood), note); err != nil {
		a.println(writeFailure(err))
		return err
	}
	a.println("Mood saved.")
	return nil
}

// Moods prints today's and yesterday's check-ins followed by the history.
func (a *App) Moods(ctx context.Context) error {
	all := a.moods.Reload(ctx)
	loc := a.config.Location()

	if m, ok := a.moods.Today(); ok {
		a.println("Today:     " + formatMood(m, loc))
	}
	if m, ok := a.moods.Yesterday(); ok {
		a.println("Yesterday: " + formatMood(m, loc))
	}
	if len(all) == 0 {
		a.println("No check-ins yet.")
		return nil
	}
	a.println("History:")
	for _, m := range all {
		a.println("  " + formatMood(m, loc))
	}
	return nil
}
