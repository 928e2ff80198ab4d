// Package cli provides the interactive Zatyshok terminal client.
//
// It stands in for the desktop shell: a line-oriented REPL over the auth,
// calendar and mood services. Typical flow: restore the persisted session
// (or prompt for credentials), start a background connectivity watcher, and
// execute user commands.
//
// Key features:
//   - Login / Register / Logout
//   - Today dashboard, upcoming schedule, notes
//   - Add and delete calendar entries (with confirmation)
//   - Daily mood check-in and history
//
// Session rejection and the "client out of date" notice raised by the
// transport are queued by the hooks and shown before the next prompt.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
