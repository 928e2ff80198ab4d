package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	drainNotices(ctx context.Context)
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Today(ctx context.Context) error
	Schedule(ctx context.Context) error
	Notes(ctx context.Context) error
	Add(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
	Mood(ctx context.Context) error
	Moods(ctx context.Context) error
	Ping(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Zatyshok CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Queued notices are shown before each prompt.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help              show available commands
//	  - register          create an account
//	  - login             authenticate
//	  - ping              check the server
//	  - exit | quit       leave the program
//
//	Logged in:
//	  - help              show available commands
//	  - today             today's programme and mood
//	  - schedule | s      upcoming goals and events
//	  - notes | n         all notes, newest first
//	  - add | a           write a goal, event or note
//	  - delete <id>       delete an entry (asks first)
//	  - mood              today's check-in
//	  - moods             mood history
//	  - ping              check the server
//	  - logout            log out
//	  - exit | quit       leave the program
//
// Prompts and REPL messages go to out, the same writer the handlers use.
// Errors returned by command handlers are ignored here; handlers report
// their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	printLine := func(args ...any) { fmt.Fprintln(out, args...) }

	for {
		a.drainNotices(ctx)

		printLine(fmt.Sprintf("zatyshok %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printLine("Bye!")
			return
		}

		if !a.isLoggedIn() {
			switch cmd {
			case "help":
				printLine("Available commands: register, login, ping, exit")
			case "register":
				_ = a.Register(ctx)
			case "login":
				_ = a.Login(ctx)
			case "ping":
				_ = a.Ping(ctx)
			default:
				printLine("Please log in first (type 'login').")
			}
			continue
		}

		switch cmd {
		case "help":
			printLine("Available commands: today, (s)chedule, (n)otes, (a)dd, delete <id>, mood, moods, ping, logout, exit")
		case "today":
			_ = a.Today(ctx)
		case "s", "schedule":
			_ = a.Schedule(ctx)
		case "n", "notes":
			_ = a.Notes(ctx)
		case "a", "add":
			_ = a.Add(ctx)
		case "delete", "rm":
			_ = a.Delete(ctx, args)
		case "mood":
			_ = a.Mood(ctx)
		case "moods":
			_ = a.Moods(ctx)
		case "ping":
			_ = a.Ping(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "login", "register":
			printLine("Already logged in; type 'logout' first.")
		default:
			printLine("Unknown command:", cmd)
		}
	}
}
