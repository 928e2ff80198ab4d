// Package testutil provides an in-process fake of the Zatyshok backend for
// transport, service and CLI tests.
package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/zatyshok/internal/client/models"
	"github.com/dmitrijs2005/zatyshok/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// DefaultAppToken is the app credential the fake expects unless changed.
const DefaultAppToken = "test-app-token"

// Recorded is one request as the fake saw it.
type Recorded struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// FakeAPI serves the calendar, mood and auth endpoints from memory.
type FakeAPI struct {
	Server   *httptest.Server
	AppToken string

	mu       sync.Mutex
	users    map[string]string
	tokens   map[string]string
	entries  []models.Entry
	moods    []models.MoodRecord
	nextID   int64
	fail     map[string]int
	rewrite  map[string]int
	requests []Recorded
}

// NewFakeAPI starts the fake and closes it when the test ends.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		AppToken: DefaultAppToken,
		users:    map[string]string{},
		tokens:   map[string]string{},
		fail:     map[string]int{},
		rewrite:  map[string]int{},
		nextID:   1,
	}
	f.Server = httptest.NewServer(f.routes())
	t.Cleanup(f.Server.Close)
	return f
}

func (f *FakeAPI) URL() string { return f.Server.URL }

func (f *FakeAPI) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(f.record, f.overrides, f.appToken)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.MessageReply{Message: "Zatyshok API is alive"})
	})
	r.Post(common.PathLogin, f.login)
	r.Post(common.PathRegister, f.register)

	r.Group(func(r chi.Router) {
		r.Use(f.bearer)
		r.Get(common.PathCalendar, f.listEntries)
		r.Post(common.PathCalendar, f.createEntry)
		r.Delete(common.PathCalendar+"/{id}", f.deleteEntry)
		r.Get(common.PathMoods, f.listMoods)
		r.Post(common.PathMoods, f.createMood)
	})
	return r
}

func routeKey(method, path string) string {
	return method + " " + path
}

// FailWith makes method+path answer status with an {error} body without
// running the handler.
func (f *FakeAPI) FailWith(method, path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[routeKey(method, path)] = status
}

// RewriteStatus runs the handler normally but replaces its status code.
func (f *FakeAPI) RewriteStatus(method, path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rewrite[routeKey(method, path)] = status
}

// AddUser registers an account and returns a valid session token for it.
func (f *FakeAPI) AddUser(username, password string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[username] = password
	return f.issueLocked(username)
}

func (f *FakeAPI) issueLocked(username string) string {
	token := uuid.NewString()
	f.tokens[token] = username
	return token
}

// RevokeAll invalidates every issued token.
func (f *FakeAPI) RevokeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = map[string]string{}
}

// SeedEntries appends entries, assigning ids to those without one.
func (f *FakeAPI) SeedEntries(entries ...models.Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range entries {
		if e.ID == nil {
			id := f.nextID
			e.ID = &id
		}
		if *e.ID >= f.nextID {
			f.nextID = *e.ID + 1
		}
		f.entries = append(f.entries, e)
	}
}

func (f *FakeAPI) SeedMoods(moods ...models.MoodRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moods = append(f.moods, moods...)
}

func (f *FakeAPI) Entries() []models.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Entry(nil), f.entries...)
}

func (f *FakeAPI) Moods() []models.MoodRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.MoodRecord(nil), f.moods...)
}

func (f *FakeAPI) Requests() []Recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Recorded(nil), f.requests...)
}

// LastRequest returns the most recent request; ok is false when none came.
func (f *FakeAPI) LastRequest() (Recorded, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return Recorded{}, false
	}
	return f.requests[len(f.requests)-1], true
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		f.mu.Lock()
		f.requests = append(f.requests, Recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		f.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

type statusRewriter struct {
	http.ResponseWriter
	status int
}

func (s *statusRewriter) WriteHeader(int) {
	s.ResponseWriter.WriteHeader(s.status)
}

func (f *FakeAPI) overrides(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := routeKey(r.Method, r.URL.Path)
		f.mu.Lock()
		failStatus, failing := f.fail[key]
		rewriteStatus, rewriting := f.rewrite[key]
		f.mu.Unlock()

		switch {
		case failing:
			writeJSON(w, failStatus, models.ErrorReply{Error: http.StatusText(failStatus)})
		case rewriting:
			next.ServeHTTP(&statusRewriter{ResponseWriter: w, status: rewriteStatus}, r)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (f *FakeAPI) appToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(common.AppTokenHeaderName) != f.AppToken {
			writeJSON(w, http.StatusForbidden, models.ErrorReply{Error: "Unknown application"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) bearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get(common.AuthorizationHeaderName), common.BearerPrefix)
		f.mu.Lock()
		_, ok := f.tokens[token]
		f.mu.Unlock()
		if token == "" || !ok {
			writeJSON(w, http.StatusUnauthorized, models.ErrorReply{Error: "Session expired"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorReply{Error: "Malformed body"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if pw, ok := f.users[creds.Username]; !ok || pw != creds.Password {
		writeJSON(w, http.StatusUnauthorized, models.ErrorReply{Error: "Wrong username or password"})
		return
	}
	writeJSON(w, http.StatusOK, models.Session{Token: f.issueLocked(creds.Username), Username: creds.Username})
}

func (f *FakeAPI) register(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" || creds.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorReply{Error: "Username and password are required"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[creds.Username]; ok {
		writeJSON(w, http.StatusConflict, models.ErrorReply{Error: "Username already taken"})
		return
	}
	f.users[creds.Username] = creds.Password
	writeJSON(w, http.StatusCreated, models.MessageReply{Message: "Account created"})
}

func (f *FakeAPI) listEntries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, f.Entries())
}

func (f *FakeAPI) createEntry(w http.ResponseWriter, r *http.Request) {
	var draft models.EntryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorReply{Error: "Malformed body"})
		return
	}

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	author := models.AuthorMe
	e := models.Entry{
		ID:        &id,
		Text:      draft.Text,
		Date:      draft.Date,
		Moment:    draft.Moment,
		Category:  draft.Category,
		CreatedBy: &author,
	}
	f.entries = append(f.entries, e)
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, e)
}

func (f *FakeAPI) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorReply{Error: "Bad id"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.IDOrZero() == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			writeJSON(w, http.StatusOK, models.MessageReply{Message: "Deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, models.ErrorReply{Error: "Entry not found"})
}

func (f *FakeAPI) listMoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, f.Moods())
}

func (f *FakeAPI) createMood(w http.ResponseWriter, r *http.Request) {
	var rec models.MoodRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorReply{Error: "Malformed body"})
		return
	}

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	rec.ID = &id
	f.moods = append(f.moods, rec)
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, models.MessageReply{Message: "Mood saved"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(common.ContentTypeHeaderName, common.MIMEApplication)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
