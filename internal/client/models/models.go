// Package models defines the records exchanged with the Zatyshok backend:
// calendar entries, mood check-ins, sessions and the auth payloads.
package models

import "github.com/goccy/go-json"

// Category classifies a calendar entry.
type Category string

const (
	CategoryNote  Category = "note"
	CategoryGoal  Category = "goal"
	CategoryEvent Category = "event"
)

// Moment is the part of the day an entry belongs to.
type Moment string

const (
	MomentMorning   Moment = "morning"
	MomentAfternoon Moment = "afternoon"
	MomentEvening   Moment = "evening"
)

// Author tells which of the two partners created an entry. The server
// assigns it; the client only reads it.
type Author string

const (
	AuthorMe  Author = "me"
	AuthorHer Author = "her"
)

// Mood is a daily check-in value.
type Mood string

const (
	MoodGreat Mood = "great"
	MoodOK    Mood = "ok"
	MoodMeh   Mood = "meh"
	MoodBad   Mood = "bad"
)

// Moods lists the check-in values in display order.
var Moods = []Mood{MoodGreat, MoodOK, MoodMeh, MoodBad}

// Entry is a calendar record as returned by GET /calendar. ID and CreatedBy
// are absent until the server persists the entry. Date may be a bare day,
// a full timestamp, or null.
type Entry struct {
	ID        *int64   `json:"id,omitempty"`
	Text      string   `json:"text"`
	Date      *string  `json:"date"`
	Moment    Moment   `json:"moment,omitempty"`
	Category  Category `json:"category"`
	CreatedBy *Author  `json:"created_by,omitempty"`
}

// UnmarshalJSON reads a server entry. A date that is not a string or null
// is treated as absent so the record itself survives.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID        *int64          `json:"id"`
		Text      string          `json:"text"`
		Date      json.RawMessage `json:"date"`
		Moment    Moment          `json:"moment"`
		Category  Category        `json:"category"`
		CreatedBy *Author         `json:"created_by"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Entry{
		ID:        aux.ID,
		Text:      aux.Text,
		Moment:    aux.Moment,
		Category:  aux.Category,
		CreatedBy: aux.CreatedBy,
	}
	if len(aux.Date) > 0 {
		var day *string
		if err := json.Unmarshal(aux.Date, &day); err == nil {
			e.Date = day
		}
	}
	return nil
}

// IDOrZero returns the entry id, or 0 when the entry is not persisted yet.
func (e Entry) IDOrZero() int64 {
	if e.ID == nil {
		return 0
	}
	return *e.ID
}

// DateOrEmpty returns the raw date, or "" for a null date.
func (e Entry) DateOrEmpty() string {
	if e.Date == nil {
		return ""
	}
	return *e.Date
}

// EntryDraft is the body of POST /calendar: an entry minus the
// server-owned fields.
type EntryDraft struct {
	Text     string   `json:"text" validate:"required,notblank"`
	Date     *string  `json:"date" validate:"omitempty,day"`
	Moment   Moment   `json:"moment" validate:"required,moment"`
	Category Category `json:"category" validate:"required,category"`
}

// MoodRecord is a daily mood check-in.
type MoodRecord struct {
	ID   *int64 `json:"id,omitempty"`
	Mood Mood   `json:"mood" validate:"required,mood"`
	Note string `json:"note"`
	Date string `json:"date" validate:"required,day"`
}

// Session is the authenticated state persisted by the host.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Active reports whether the session carries a token.
func (s Session) Active() bool {
	return s.Token != ""
}

// Credentials is the body of POST /login and POST /register.
type Credentials struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

// MessageReply is the success body of /register and of the root ping.
type MessageReply struct {
	Message string `json:"message"`
}

// ErrorReply is the structured failure body of /login and /register.
type ErrorReply struct {
	Error string `json:"error"`
}
