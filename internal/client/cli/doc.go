// Package cli provides the interactive Wekip terminal client.
//
// It wires configuration, the local store, the session, the API services and
// the screens, then runs a read-eval-print loop. Every command first moves to
// its route. The route guard may send the user elsewhere (to login when
// signed out, home when signed in), in which case the command does not run.
//
// Signed out:
//   - login, register, verify, resend, forgot
//
// Signed in:
//   - home, refresh, receipts [search], filter <start> <end>, share, whoami, logout
//
// The REPL is started with App.Run, which blocks until the user exits.
package cli
