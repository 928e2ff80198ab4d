package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/zatyshok/internal/client/models"
)

// fakeClient implements client.Client for unit tests.
type fakeClient struct {
	CalendarRet []models.Entry
	MoodsRet    []models.MoodRecord

	AddEntryErr    error
	DeleteEntryErr error
	AddMoodErr     error

	LoginRet    models.Session
	LoginErr    error
	RegisterRet string
	RegisterErr error
	PingRet     string
	PingErr     error

	LastDraft    models.EntryDraft
	LastDeleted  int64
	LastMood     models.MoodRecord
	LastUsername string
	LastPassword string

	CalendarCalls int
	MoodsCalls    int
	DeleteCalls   int
}

func (f *fakeClient) Ping(context.Context) (string, error) { return f.PingRet, f.PingErr }

func (f *fakeClient) Login(_ context.Context, username, password string) (models.Session, error) {
	f.LastUsername, f.LastPassword = username, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, username, password string) (string, error) {
	f.LastUsername, f.LastPassword = username, password
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Calendar(context.Context) []models.Entry {
	f.CalendarCalls++
	return append([]models.Entry{}, f.CalendarRet...)
}

func (f *fakeClient) AddEntry(_ context.Context, draft models.EntryDraft) (*models.Entry, error) {
	f.LastDraft = draft
	if f.AddEntryErr != nil {
		return nil, f.AddEntryErr
	}
	return nil, nil
}

func (f *fakeClient) DeleteEntry(_ context.Context, id int64) error {
	f.DeleteCalls++
	f.LastDeleted = id
	return f.DeleteEntryErr
}

func (f *fakeClient) Moods(context.Context) []models.MoodRecord {
	f.MoodsCalls++
	return append([]models.MoodRecord{}, f.MoodsRet...)
}

func (f *fakeClient) AddMood(_ context.Context, rec models.MoodRecord) error {
	f.LastMood = rec
	return f.AddMoodErr
}

// freezeNow pins the package clock for the duration of a test.
func freezeNow(t *testing.T, at time.Time) {
	t.Helper()
	old := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = old })
}

func i64(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

func entryIDs(entries []models.Entry) []int64 {
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.IDOrZero())
	}
	return out
}
