package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/wekip/internal/client/api"
	"github.com/dmitrijs2005/wekip/internal/client/codec"
	"github.com/dmitrijs2005/wekip/internal/client/forms"
	"github.com/dmitrijs2005/wekip/internal/client/models"
	"github.com/dmitrijs2005/wekip/internal/client/repositories/kv"
	"github.com/dmitrijs2005/wekip/internal/client/router"
	"github.com/dmitrijs2005/wekip/internal/client/screens"
	"github.com/dmitrijs2005/wekip/internal/client/tui"
)

// Prompt and program seams. Tests replace them with stubs.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword

	runProgram = func(m tea.Model) error {
		_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}
)

// errRedirected is returned when the route guard moved the user elsewhere.
var errRedirected = errors.New("redirected")

// navigate pushes route unless it is already current. It reports false when
// the route guard redirected the user, in which case the command must stop.
func (a *App) navigate(route string) bool {
	if a.nav.Current() == route {
		return true
	}
	a.nav.Push(route)
	if cur := a.nav.Current(); cur != route {
		fmt.Fprintln(a.out, faintStyle.Render("Redirected to "+cur))
		return false
	}
	return true
}

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) askPassword(prompt string) (string, error) {
	return getPassword(a.reader, prompt, a.out)
}

// report prints failures the screens do not show on their own.
func (a *App) report(err error) error {
	if err == nil {
		return nil
	}

	var fe forms.FieldErrors
	switch {
	case errors.As(err, &fe):
		fields := make([]string, 0, len(fe))
		for f := range fe {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintln(a.out, dangerStyle.Render("  "+fe[f]))
		}
	case errors.Is(err, screens.ErrCooldownActive):
		a.notify.Danger(fmt.Sprintf("Resend code in %ds", a.cooldown()))
	}
	return err
}

func (a *App) cooldown() int {
	if a.nav.Current() == router.ForgotPassword {
		return a.forgotScreen.Cooldown()
	}
	return a.verifyScreen.Cooldown()
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	if !a.navigate(router.Login) {
		return errRedirected
	}

	email, err := a.ask("Email")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Password")
	if err != nil {
		return err
	}

	err = a.loginScreen.Submit(ctx, forms.Login{Email: email, Password: password})
	if err != nil && api.Message(err) == screens.MsgEmailNotVerified {
		fmt.Fprintln(a.out, "Your email is not verified yet. Use 'verify' to enter the code.")
		return err
	}
	return a.report(err)
}

// Register prompts for a new account and continues with verification.
func (a *App) Register(ctx context.Context) error {
	if !a.navigate(router.Register) {
		return errRedirected
	}

	var f forms.Register
	var err error
	if f.Email, err = a.ask("Email"); err != nil {
		return err
	}
	if f.Username, err = a.ask("Username"); err != nil {
		return err
	}
	if f.Password, err = a.askPassword("Password"); err != nil {
		return err
	}
	if f.ConfirmPassword, err = a.askPassword("Confirm password"); err != nil {
		return err
	}

	if err := a.report(a.registerScreen.Submit(ctx, f)); err != nil {
		return err
	}
	return a.Verify(ctx)
}

// Verify confirms an email address. Without an open verification route it
// asks which address to verify first.
func (a *App) Verify(ctx context.Context) error {
	route := a.nav.Current()
	if _, ok := router.VerifyEmailPayload(route); !ok {
		email, err := a.ask("Email")
		if err != nil {
			return err
		}
		payload, err := codec.Encode(models.VerificationPayload{Email: strings.TrimSpace(email)})
		if err != nil {
			return err
		}
		route = router.VerifyEmail(payload)
		if !a.navigate(route) {
			return errRedirected
		}
	}

	if err := a.verifyScreen.Open(route); err != nil {
		a.notify.Danger("Invalid verification link")
		return err
	}

	otp, err := a.ask(fmt.Sprintf("Code sent to %s (empty to skip)", a.verifyScreen.Email()))
	if err != nil {
		return err
	}
	if otp == "" {
		return nil
	}
	return a.report(a.verifyScreen.Submit(ctx, otp))
}

// Resend asks for another code for the screen the user is on.
func (a *App) Resend(ctx context.Context) error {
	route := a.nav.Current()
	switch {
	case route == router.ForgotPassword && a.forgotScreen.Step() == 2:
		return a.report(a.forgotScreen.Resend(ctx))
	default:
		if _, ok := router.VerifyEmailPayload(route); !ok {
			fmt.Fprintln(a.out, "Nothing to resend. Use 'verify' or 'forgot' first.")
			return nil
		}
		if err := a.verifyScreen.Open(route); err != nil {
			return err
		}
		return a.report(a.verifyScreen.Resend(ctx))
	}
}

// Forgot walks through the password reset wizard. Coming from another route
// starts it over, and an empty code drops back to the email step.
func (a *App) Forgot(ctx context.Context) error {
	if a.nav.Current() != router.ForgotPassword {
		a.forgotScreen.Restart()
	}
	if !a.navigate(router.ForgotPassword) {
		return errRedirected
	}

	if a.forgotScreen.Step() == 1 {
		email, err := a.ask("Email")
		if err != nil {
			return err
		}
		if err := a.report(a.forgotScreen.RequestCode(ctx, forms.ForgotPasswordStep1{Email: email})); err != nil {
			return err
		}
	}

	otp, err := a.ask(fmt.Sprintf("Code sent to %s (empty to start over)", a.forgotScreen.Email()))
	if err != nil {
		return err
	}
	if otp == "" {
		a.forgotScreen.Restart()
		return nil
	}
	password, err := a.askPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := a.askPassword("Confirm password")
	if err != nil {
		return err
	}
	return a.report(a.forgotScreen.Reset(ctx, otp, password, confirm))
}

// Reset wipes every locally stored value and signs out.
func (a *App) Reset(ctx context.Context) error {
	repo := kv.NewSQLiteRepository(a.db)
	keys, err := repo.Keys(ctx)
	if err != nil {
		a.notify.Danger("Unable to read local data")
		return err
	}
	if err := repo.Clear(ctx); err != nil {
		a.notify.Danger("Unable to clear local data")
		return err
	}
	a.session.SignOut(ctx)

	if len(keys) == 0 {
		fmt.Fprintln(a.out, "Local data was already empty")
	}
	for _, k := range keys {
		fmt.Fprintln(a.out, faintStyle.Render("removed "+k))
	}
	a.notify.Success("Local data cleared")
	return nil
}

// Home shows the dashboard.
func (a *App) Home(ctx context.Context) error {
	if !a.navigate(router.Home) {
		return errRedirected
	}
	if err := a.homeScreen.Load(ctx); err != nil {
		a.notify.Danger(api.Message(err))
		return err
	}
	a.renderHome()
	return nil
}

// Refresh reloads whichever list screen is open.
func (a *App) Refresh(ctx context.Context) error {
	if a.nav.Current() == router.Receipts {
		if err := a.receiptsScreen.Refresh(ctx, true); err != nil {
			a.notify.Danger(api.Message(err))
			return err
		}
		a.renderReceipts()
		return nil
	}

	if !a.navigate(router.Home) {
		return errRedirected
	}
	if err := a.homeScreen.Refresh(ctx); err != nil {
		a.notify.Danger(api.Message(err))
		return err
	}
	a.renderHome()
	return nil
}

// Receipts lists receipts matching search within the selected range.
func (a *App) Receipts(ctx context.Context, search string) error {
	if !a.navigate(router.Receipts) {
		return errRedirected
	}
	a.receiptsScreen.SetSearch(search)
	return a.loadReceipts(ctx)
}

// Filter selects the date range of the receipt list. "-" for both resets it.
func (a *App) Filter(ctx context.Context, start, end string) error {
	if !a.navigate(router.Receipts) {
		return errRedirected
	}

	if start == "-" && end == "-" {
		a.receiptsScreen.ResetRange()
		return a.loadReceipts(ctx)
	}

	s, err := time.Parse(time.DateOnly, start)
	if err != nil {
		a.notify.Danger("Start date must look like 2006-01-02")
		return err
	}
	e, err := time.Parse(time.DateOnly, end)
	if err != nil {
		a.notify.Danger("End date must look like 2006-01-02")
		return err
	}
	a.receiptsScreen.SetRange(s, e)
	return a.loadReceipts(ctx)
}

func (a *App) loadReceipts(ctx context.Context) error {
	if err := a.receiptsScreen.Load(ctx); err != nil {
		a.notify.Danger(api.Message(err))
		return err
	}
	a.renderReceipts()
	return nil
}

// Share shows the current share code, issuing a new one when there is none
// or the last one expired.
func (a *App) Share(ctx context.Context) error {
	if !a.navigate(router.ShareCode) {
		return errRedirected
	}
	var err error
	switch {
	case a.shareScreen.Code() == "":
		err = a.shareScreen.Mount(ctx)
	case !a.shareScreen.RefreshDisabled():
		err = a.shareScreen.Regenerate(ctx)
	}
	if err != nil {
		return err
	}

	if a.interactive {
		return runProgram(tui.New(ctx, a.shareScreen))
	}

	fmt.Fprintln(a.out, headingStyle.Render("Share code"))
	fmt.Fprintln(a.out, "  "+a.shareScreen.Code())
	fmt.Fprintln(a.out, "Your code will expire in "+a.shareScreen.Timer())
	return nil
}

// Whoami prints the signed-in account.
func (a *App) Whoami(ctx context.Context) error {
	c := a.session.Credential()
	if c == nil {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}

	fmt.Fprintf(a.out, "Username: %s\n", c.Username)
	fmt.Fprintf(a.out, "Email:    %s\n", c.Email)
	if exp, ok := a.session.Expiry(); ok {
		fmt.Fprintf(a.out, "Session:  valid until %s\n", exp.Local().Format(time.DateTime))
	}
	if token, err := a.device.Register(ctx); err == nil {
		fmt.Fprintf(a.out, "Device:   %s\n", token)
	}
	return nil
}

// Logout ends the session. The route guard takes the user back to login.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	a.auth.Logout(ctx)
	a.notify.Success("Signed out")
	return nil
}

func (a *App) renderHome() {
	st := a.homeScreen.Stats()
	fmt.Fprintln(a.out, headingStyle.Render("Overview"))
	fmt.Fprintf(a.out, "  Receipts:   %d\n", st.Receipts)
	fmt.Fprintf(a.out, "  Businesses: %d\n", st.Businesses)
	fmt.Fprintln(a.out)

	fmt.Fprintln(a.out, headingStyle.Render("Recent receipts"))
	a.renderSections(a.homeScreen.Recent(), a.homeScreen.EmptyMessage())
}

func (a *App) renderReceipts() {
	rng := a.receiptsScreen.Range()
	title := fmt.Sprintf("Receipts %s to %s", rng.Start.Format(time.DateOnly), rng.End.Format(time.DateOnly))
	if s := a.receiptsScreen.Search(); s != "" {
		title += fmt.Sprintf(" matching %q", s)
	}
	fmt.Fprintln(a.out, headingStyle.Render(title))
	a.renderSections(a.receiptsScreen.Sections(), a.receiptsScreen.EmptyMessage())
}

func (a *App) renderSections(sections []models.GroupedReceipt, empty string) {
	if len(sections) == 0 {
		fmt.Fprintln(a.out, faintStyle.Render("  "+empty))
		return
	}
	for _, g := range sections {
		fmt.Fprintln(a.out, "  "+g.Title())
		for _, r := range g.Receipts {
			fmt.Fprintf(a.out, "    %s  %s\n", r.Time(), r.Business.Name)
		}
	}
}
