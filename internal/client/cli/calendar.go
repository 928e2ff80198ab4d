package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/zatyshok/internal/client/agenda"
	"github.com/dmitrijs2005/zatyshok/internal/client/client"
	"github.com/dmitrijs2005/zatyshok/internal/client/models"
	"github.com/dmitrijs2005/zatyshok/internal/common"
)

// Today prints the daily dashboard: what is due today and today's mood.
func (a *App) Today(ctx context.Context) error {
	a.entries.Reload(ctx)
	a.moods.Reload(ctx)
	loc := a.config.Location()

	a.printf("Today is %s\n", agenda.Today(now(), loc))
	due := a.entries.Today()
	if len(due) == 0 {
		a.println("Nothing planned for today.")
	}
	for _, e := range due {
		a.println(formatEntry(e, loc))
	}

	if m, ok := a.moods.Today(); ok {
		a.println("Mood: " + formatMood(m, loc))
	} else {
		a.println("No mood check-in yet today (type 'mood').")
	}
	return nil
}

// Schedule prints upcoming dated goals and events.
func (a *App) Schedule(ctx context.Context) error {
	b := a.entries.Reload(ctx)
	if len(b.Schedule) == 0 {
		a.println("Nothing upcoming.")
		return nil
	}
	for _, e := range b.Schedule {
		a.println(formatEntry(e, a.config.Location()))
	}
	return nil
}

// Notes prints every note, newest first.
func (a *App) Notes(ctx context.Context) error {
	b := a.entries.Reload(ctx)
	if len(b.Notes) == 0 {
		a.println("No notes yet.")
		return nil
	}
	for _, e := range b.Notes {
		a.println(formatEntry(e, a.config.Location()))
	}
	return nil
}

// Add walks through the write form: category, text, date, time, moment.
func (a *App) Add(ctx context.Context) error {
	category, err := GetChoice(a.reader, "Category",
		[]string{string(models.CategoryGoal), string(models.CategoryEvent), string(models.CategoryNote)},
		string(models.CategoryGoal), a.out)
	if err != nil {
		return err
	}
	text, err := getSimpleText(a.reader, "Text", a.out)
	if err != nil {
		return err
	}

	draft := models.EntryDraft{Text: text, Category: models.Category(category)}

	if draft.Category != models.CategoryNote {
		today := agenda.Today(now(), a.config.Location())
		day, err := getSimpleText(a.reader, "Date YYYY-MM-DD (default "+today+")", a.out)
		if err != nil {
			return err
		}
		if day == "" {
			day = today
		}
		draft.Date = &day
	}

	timeOfDay, err := getSimpleText(a.reader, "Time HH:MM (optional)", a.out)
	if err != nil {
		return err
	}
	moment, err := GetChoice(a.reader, "Moment",
		[]string{string(models.MomentMorning), string(models.MomentAfternoon), string(models.MomentEvening)},
		string(models.MomentMorning), a.out)
	if err != nil {
		return err
	}
	draft.Moment = models.Moment(moment)

	if err := a.entries.AddEntry(ctx, draft, timeOfDay); err != nil {
		a.println(writeFailure(err))
		return err
	}
	a.println("Saved.")
	return nil
}

// Delete removes an entry by id after confirmation. The id comes from the
// argument or is prompted for.
func (a *App) Delete(ctx context.Context, args []string) error {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else {
		var err error
		if raw, err = getSimpleText(a.reader, "Enter entry id to delete", a.out); err != nil {
			return err
		}
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 10, 64)
	if err != nil {
		a.println("Invalid id: " + raw)
		return err
	}

	deleted, err := a.entries.DeleteEntry(ctx, id, a.categoryOf(id))
	if err != nil {
		a.println(writeFailure(err))
		return err
	}
	if deleted {
		a.println("Deleted.")
	}
	return nil
}

func (a *App) categoryOf(id int64) models.Category {
	b := a.entries.Buckets()
	for _, list := range [][]models.Entry{b.Schedule, b.Notes} {
		for _, e := range list {
			if e.IDOrZero() == id {
				return e.Category
			}
		}
	}
	return ""
}

// confirm backs the entry service's Confirmer.
func (a *App) confirm(_ context.Context, prompt string) bool {
	ok, err := GetConfirmation(a.reader, prompt, a.out)
	return err == nil && ok
}

// Confirmer exposes the interactive confirmation prompt.
func (a *App) Confirmer() func(ctx context.Context, prompt string) bool {
	return a.confirm
}

func writeFailure(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidDraft):
		return "Invalid input: " + err.Error()
	case errors.Is(err, client.ErrAuthRejected):
		return "Your session has ended."
	case errors.Is(err, client.ErrDeleteFailed):
		return "Could not delete the entry: " + err.Error()
	case errors.Is(err, client.ErrTransport):
		return "Server unreachable, nothing was saved."
	default:
		return "Error: " + err.Error()
	}
}
