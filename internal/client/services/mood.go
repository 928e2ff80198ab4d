package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/zatyshok/internal/client/agenda"
	"github.com/dmitrijs2005/zatyshok/internal/client/client"
	"github.com/dmitrijs2005/zatyshok/internal/client/models"
)

// MoodService keeps the last fetched mood check-ins.
type MoodService interface {
	Reload(ctx context.Context) []models.MoodRecord
	List() []models.MoodRecord
	ForDay(day string) (models.MoodRecord, bool)
	Today() (models.MoodRecord, bool)
	Yesterday() (models.MoodRecord, bool)
	// Submit records a mood for today and reloads.
	Submit(ctx context.Context, mood models.Mood, note string) error
}

type moodService struct {
	client client.Client
	loc    *time.Location

	mu    sync.RWMutex
	moods []models.MoodRecord
}

func NewMoodService(c client.Client, loc *time.Location) MoodService {
	if loc == nil {
		loc = time.Local
	}
	return &moodService{client: c, loc: loc, moods: []models.MoodRecord{}}
}

func (s *moodService) Reload(ctx context.Context) []models.MoodRecord {
	moods := s.client.Moods(ctx)

	s.mu.Lock()
	s.moods = moods
	s.mu.Unlock()
	return moods
}

func (s *moodService) List() []models.MoodRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moods
}

func (s *moodService) ForDay(day string) (models.MoodRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return agenda.MoodForDay(s.moods, day, s.loc)
}

func (s *moodService) Today() (models.MoodRecord, bool) {
	return s.ForDay(agenda.Today(now(), s.loc))
}

func (s *moodService) Yesterday() (models.MoodRecord, bool) {
	return s.ForDay(agenda.ShiftDay(agenda.Today(now(), s.loc), -1))
}

func (s *moodService) Submit(ctx context.Context, mood models.Mood, note string) error {
	rec := models.MoodRecord{Mood: mood, Note: note, Date: agenda.Today(now(), s.loc)}
	if err := models.Validate(rec); err != nil {
		return err
	}
	if err := s.client.AddMood(ctx, rec); err != nil {
		return fmt.Errorf("saving mood error: %w", err)
	}

	s.Reload(ctx)
	return nil
}
