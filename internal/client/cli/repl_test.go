package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	args     []string
	drains   int
}

func (f *fakeExec) isLoggedIn() bool               { return f.loggedIn }
func (f *fakeExec) drainNotices(context.Context)   { f.drains++ }
func (f *fakeExec) record(name string) error       { f.calls = append(f.calls, name); return nil }
func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Today(context.Context) error    { return f.record("today") }
func (f *fakeExec) Schedule(context.Context) error { return f.record("schedule") }
func (f *fakeExec) Notes(context.Context) error    { return f.record("notes") }
func (f *fakeExec) Add(context.Context) error      { return f.record("add") }
func (f *fakeExec) Delete(_ context.Context, args []string) error {
	f.args = args
	return f.record("delete")
}
func (f *fakeExec) Mood(context.Context) error  { return f.record("mood") }
func (f *fakeExec) Moods(context.Context) error { return f.record("moods") }
func (f *fakeExec) Ping(context.Context) error  { return f.record("ping") }

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := &bytes.Buffer{}
	input := strings.Join([]string{
		"help",
		"today",
		"login",
		"help",
		"today",
		"s",
		"notes",
		"add",
		"delete 42",
		"mood",
		"moods",
		"ping",
		"foobar",
		"logout",
		"exit",
		"today",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input), out)

	require.Equal(t, []string{"login", "today", "schedule", "notes", "add", "delete", "mood", "moods", "ping", "logout"}, exec.calls)
	require.Equal(t, []string{"42"}, exec.args)
	require.Equal(t, 15, exec.drains, "notices are drained before every prompt")
	require.Equal(t, 15, strings.Count(out.String(), "zatyshok status> "), "prompts go to the output writer")
	require.Contains(t, out.String(), "Unknown command: foobar")
}

func TestRunREPL_GuardsLoggedOutCommands(t *testing.T) {
	out := &bytes.Buffer{}

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("schedule\nquit\n"), out)

	require.Empty(t, exec.calls)
	require.Contains(t, out.String(), "Please log in first (type 'login').\n")
	require.Contains(t, out.String(), "Bye!\n")
}

func TestRunREPL_EOFWithoutNewline(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("today"), &bytes.Buffer{})

	require.Equal(t, []string{"today"}, exec.calls)
}

func TestRunREPL_UnknownCommand(t *testing.T) {
	out := &bytes.Buffer{}

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("dance\nregister\n"), out)

	require.Empty(t, exec.calls)
	require.Contains(t, out.String(), "Unknown command: dance\n")
	require.Contains(t, out.String(), "Already logged in; type 'logout' first.\n")
}
