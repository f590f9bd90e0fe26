package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	markReady()

	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Verify(ctx context.Context) error
	Resend(ctx context.Context) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context) error

	Home(ctx context.Context) error
	Refresh(ctx context.Context) error
	Receipts(ctx context.Context, search string) error
	Filter(ctx context.Context, start, end string) error
	Share(ctx context.Context) error
	Whoami(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from reader and dispatches them to a until EOF or
// "exit". Navigation is marked ready right before the first prompt.
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	a.markReady()

	for {
		printlnFn(fmt.Sprintf("wekip %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: home, refresh, receipts [search], filter <start|-> <end|->, share, whoami, logout, reset, exit")
			} else {
				printlnFn("Available commands: login, register, verify, resend, forgot, reset, exit")
			}

		case "login":
			_ = a.Login(ctx)
		case "register":
			_ = a.Register(ctx)
		case "verify":
			_ = a.Verify(ctx)
		case "resend":
			_ = a.Resend(ctx)
		case "forgot":
			_ = a.Forgot(ctx)
		case "reset":
			_ = a.Reset(ctx)

		case "home":
			_ = a.Home(ctx)
		case "refresh":
			_ = a.Refresh(ctx)
		case "receipts":
			_ = a.Receipts(ctx, strings.Join(args, " "))
		case "filter":
			if len(args) != 2 {
				printlnFn("Usage: filter <start YYYY-MM-DD> <end YYYY-MM-DD>, or filter - - for the past year")
				continue
			}
			_ = a.Filter(ctx, args[0], args[1])
		case "share":
			_ = a.Share(ctx)
		case "whoami":
			_ = a.Whoami(ctx)
		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
