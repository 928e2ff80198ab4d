package client

import (
	"context"

	"github.com/dmitrijs2005/zatyshok/internal/client/models"
)

type Client interface {
	Ping(ctx context.Context) (string, error)
	Login(ctx context.Context, username, password string) (models.Session, error)
	Register(ctx context.Context, username, password string) (string, error)

	Calendar(ctx context.Context) []models.Entry
	AddEntry(ctx context.Context, draft models.EntryDraft) (*models.Entry, error)
	DeleteEntry(ctx context.Context, id int64) error

	Moods(ctx context.Context) []models.MoodRecord
	AddMood(ctx context.Context, rec models.MoodRecord) error
}
