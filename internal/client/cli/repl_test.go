package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	ready    int

	calls []string
	args  []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) markReady()       { f.ready++ }

func (f *fakeExec) record(name string, args ...string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args...)
	return nil
}

func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Verify(ctx context.Context) error   { return f.record("verify") }
func (f *fakeExec) Resend(ctx context.Context) error   { return f.record("resend") }
func (f *fakeExec) Forgot(ctx context.Context) error   { return f.record("forgot") }
func (f *fakeExec) Reset(ctx context.Context) error    { return f.record("reset") }
func (f *fakeExec) Home(ctx context.Context) error     { return f.record("home") }
func (f *fakeExec) Refresh(ctx context.Context) error  { return f.record("refresh") }
func (f *fakeExec) Receipts(ctx context.Context, search string) error {
	return f.record("receipts", search)
}
func (f *fakeExec) Filter(ctx context.Context, start, end string) error {
	return f.record("filter", start, end)
}
func (f *fakeExec) Share(ctx context.Context) error  { return f.record("share") }
func (f *fakeExec) Whoami(ctx context.Context) error { return f.record("whoami") }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := capturePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"home",
		"receipts coffee shop",
		"filter 2024-01-01 2024-02-01",
		"filter 2024-01-01",
		"refresh",
		"share",
		"whoami",
		"logout",
		"verify",
		"resend",
		"forgot",
		"reset",
		"register",
		"foobar",
		"exit",
		"home",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input))

	want := []string{
		"login", "home", "receipts", "filter", "refresh", "share", "whoami",
		"logout", "verify", "resend", "forgot", "reset", "register",
	}
	assert.Equal(t, want, exec.calls)
	assert.Equal(t, []string{"coffee shop", "2024-01-01", "2024-02-01"}, exec.args)
	assert.Equal(t, 1, exec.ready)

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "login, register, verify")
	assert.Contains(t, joined, "home, refresh, receipts")
	assert.Contains(t, joined, "Usage: filter")
	assert.Contains(t, joined, "Unknown command: foobar")
	assert.Contains(t, joined, "wekip status> ")
	assert.Contains(t, joined, "Bye!")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("whoami")))

	require.Equal(t, []string{"whoami"}, exec.calls)
}

func TestRunREPL_QuitAlias(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("quit\nlogin\n")))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Bye!")
}
