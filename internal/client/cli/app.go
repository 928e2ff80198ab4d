package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/zatyshok/internal/client/config"
	"github.com/dmitrijs2005/zatyshok/internal/client/services"
	"github.com/dmitrijs2005/zatyshok/internal/logging"
)

// now is replaced in tests.
var now = time.Now

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Deps are the collaborators an App drives.
type Deps struct {
	Config  *config.Config
	Auth    services.AuthService
	Entries services.EntryService
	Moods   services.MoodService
	Logger  logging.Logger
	In      io.Reader
	Out     io.Writer
}

type App struct {
	config  *config.Config
	auth    services.AuthService
	entries services.EntryService
	moods   services.MoodService
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	mu       sync.Mutex
	userName string
	mode     Mode

	sessionExpired  atomic.Bool
	versionRejected atomic.Bool
}

func NewApp(d Deps) *App {
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	return &App{
		config:  d.Config,
		auth:    d.Auth,
		entries: d.Entries,
		moods:   d.Moods,
		log:     d.Logger,
		reader:  bufio.NewReader(d.In),
		out:     d.Out,
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setUser(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

func (a *App) user() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userName
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userName != ""
}

// SessionExpired is the transport hook for 401/403. The store is already
// cleared; the notice and state reset happen before the next prompt.
func (a *App) SessionExpired(context.Context) {
	a.sessionExpired.Store(true)
}

// VersionRejected is the transport hook for 426.
func (a *App) VersionRejected(context.Context) {
	a.versionRejected.Store(true)
}

// drainNotices shows queued notices. The version notice blocks until the
// user presses Enter.
func (a *App) drainNotices(ctx context.Context) {
	if a.sessionExpired.Swap(false) {
		a.resetState(ctx)
		a.println("Your session has ended. Please log in again.")
	}
	if a.versionRejected.Swap(false) {
		a.println("A newer version of Zatyshok is required. Please update the application.")
		_, _ = getSimpleText(a.reader, "Press Enter to continue", a.out)
	}
}

// resetState drops the user and refetches both caches, which come back
// empty without a session. The rejection that refetch provokes is not news.
func (a *App) resetState(ctx context.Context) {
	a.setUser("")
	a.entries.Reload(ctx)
	a.moods.Reload(ctx)
	a.sessionExpired.Store(false)
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := a.auth.Ping(pingCtx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
