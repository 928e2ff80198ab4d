package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/zatyshok/internal/client/agenda"
	"github.com/dmitrijs2005/zatyshok/internal/client/client"
	"github.com/dmitrijs2005/zatyshok/internal/client/models"
	"github.com/dmitrijs2005/zatyshok/internal/common"
)

// now is replaced in tests.
var now = time.Now

const timeOfDayLayout = "15:04"

// Confirmer asks the user to approve a destructive action.
type Confirmer func(ctx context.Context, prompt string) bool

// EntryService keeps the last fetched calendar and its two buckets.
type EntryService interface {
	// Reload fetches the calendar and rebuilds both buckets.
	Reload(ctx context.Context) agenda.Buckets
	Buckets() agenda.Buckets
	Schedule() []models.Entry
	Notes() []models.Entry
	// DueOn lists the cached non-note entries of a day; Today is DueOn for
	// the current day.
	DueOn(day string) []models.Entry
	Today() []models.Entry
	AddEntry(ctx context.Context, draft models.EntryDraft, timeOfDay string) error
	// DeleteEntry reports whether the entry was deleted; false with a nil
	// error means the user declined.
	DeleteEntry(ctx context.Context, id int64, category models.Category) (bool, error)
}

type entryService struct {
	client  client.Client
	loc     *time.Location
	confirm Confirmer

	mu      sync.RWMutex
	entries []models.Entry
	buckets agenda.Buckets
}

// NewEntryService builds the service. A nil confirmer approves everything.
func NewEntryService(c client.Client, loc *time.Location, confirm Confirmer) EntryService {
	if loc == nil {
		loc = time.Local
	}
	if confirm == nil {
		confirm = func(context.Context, string) bool { return true }
	}
	return &entryService{
		client:  c,
		loc:     loc,
		confirm: confirm,
		buckets: agenda.Buckets{Schedule: []models.Entry{}, Notes: []models.Entry{}},
	}
}

func (s *entryService) today() string {
	return agenda.Today(now(), s.loc)
}

func (s *entryService) Reload(ctx context.Context) agenda.Buckets {
	entries := s.client.Calendar(ctx)
	buckets := agenda.Split(entries, s.today(), s.loc)

	s.mu.Lock()
	s.entries = entries
	s.buckets = buckets
	s.mu.Unlock()
	return buckets
}

func (s *entryService) Buckets() agenda.Buckets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buckets
}

func (s *entryService) Schedule() []models.Entry {
	return s.Buckets().Schedule
}

func (s *entryService) Notes() []models.Entry {
	return s.Buckets().Notes
}

func (s *entryService) DueOn(day string) []models.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return agenda.DueOn(s.entries, day, s.loc)
}

func (s *entryService) Today() []models.Entry {
	return s.DueOn(s.today())
}

// AddEntry prefixes an optional HH:MM time to the text, dates an undated
// note with today, posts the draft and reloads.
func (s *entryService) AddEntry(ctx context.Context, draft models.EntryDraft, timeOfDay string) error {
	if timeOfDay != "" {
		if _, err := time.Parse(timeOfDayLayout, timeOfDay); err != nil {
			return fmt.Errorf("%w: time %q is not HH:MM", common.ErrInvalidDraft, timeOfDay)
		}
		draft.Text = fmt.Sprintf("[%s] %s", timeOfDay, draft.Text)
	}
	if draft.Date == nil || *draft.Date == "" {
		today := s.today()
		draft.Date = &today
	}

	if err := models.Validate(draft); err != nil {
		return err
	}
	if _, err := s.client.AddEntry(ctx, draft); err != nil {
		return fmt.Errorf("saving error: %w", err)
	}

	s.Reload(ctx)
	return nil
}

func (s *entryService) DeleteEntry(ctx context.Context, id int64, category models.Category) (bool, error) {
	if !s.confirm(ctx, deletePrompt(category)) {
		return false, nil
	}

	if err := s.client.DeleteEntry(ctx, id); err != nil {
		if !errors.Is(err, client.ErrDeleteFailed) {
			err = &client.Error{Kind: client.KindDeleteFailed, Err: err}
		}
		return false, fmt.Errorf("delete entry %d: %w", id, err)
	}

	s.Reload(ctx)
	return true, nil
}

func deletePrompt(category models.Category) string {
	switch category {
	case models.CategoryNote:
		return "Delete this note?"
	case models.CategoryGoal:
		return "Delete this goal?"
	case models.CategoryEvent:
		return "Delete this event?"
	default:
		return "Delete this entry?"
	}
}
