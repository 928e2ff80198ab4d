package testutil

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/dmitrijs2005/zatyshok/internal/client/models"
	"github.com/dmitrijs2005/zatyshok/internal/common"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, f *FakeAPI, method, path, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, f.URL()+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set(common.AppTokenHeaderName, f.AppToken)
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestFakeAPI_RejectsUnknownApp(t *testing.T) {
	f := NewFakeAPI(t)
	f.AppToken = "other"

	req, err := http.NewRequest(http.MethodGet, f.URL()+common.PathRoot, nil)
	require.NoError(t, err)
	req.Header.Set(common.AppTokenHeaderName, DefaultAppToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestFakeAPI_BearerGuardsCalendar(t *testing.T) {
	f := NewFakeAPI(t)
	token := f.AddUser("olena", "secret")

	assert.Equal(t, http.StatusUnauthorized, do(t, f, http.MethodGet, common.PathCalendar, "", "").StatusCode)
	assert.Equal(t, http.StatusOK, do(t, f, http.MethodGet, common.PathCalendar, token, "").StatusCode)

	f.RevokeAll()
	assert.Equal(t, http.StatusUnauthorized, do(t, f, http.MethodGet, common.PathCalendar, token, "").StatusCode)
}

func TestFakeAPI_LoginIssuesToken(t *testing.T) {
	f := NewFakeAPI(t)
	f.AddUser("olena", "secret")

	resp := do(t, f, http.MethodPost, common.PathLogin, "", `{"username":"olena","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, f, http.MethodPost, common.PathLogin, "", `{"username":"olena","password":"secret"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var s models.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	assert.NotEmpty(t, s.Token)
	assert.Equal(t, "olena", s.Username)
}

func TestFakeAPI_SeedAndDelete(t *testing.T) {
	f := NewFakeAPI(t)
	token := f.AddUser("olena", "secret")
	f.SeedEntries(models.Entry{Text: "walk"}, models.Entry{Text: "read"})

	entries := f.Entries()
	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].IDOrZero(), entries[1].IDOrZero())

	path := common.PathCalendar + "/" + strconv.FormatInt(entries[0].IDOrZero(), 10)
	assert.Equal(t, http.StatusOK, do(t, f, http.MethodDelete, path, token, "").StatusCode)
	assert.Equal(t, http.StatusNotFound, do(t, f, http.MethodDelete, path, token, "").StatusCode)
	assert.Len(t, f.Entries(), 1)
}

func TestFakeAPI_FailWithAndRecord(t *testing.T) {
	f := NewFakeAPI(t)
	f.FailWith(http.MethodGet, common.PathRoot, http.StatusBadGateway)

	resp := do(t, f, http.MethodGet, common.PathRoot, "", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	last, ok := f.LastRequest()
	require.True(t, ok)
	assert.Equal(t, http.MethodGet, last.Method)
	assert.Equal(t, common.PathRoot, last.Path)
	assert.Equal(t, DefaultAppToken, last.Header.Get(common.AppTokenHeaderName))
}
