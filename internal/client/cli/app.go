package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/wekip/internal/client/api"
	"github.com/dmitrijs2005/wekip/internal/client/clock"
	"github.com/dmitrijs2005/wekip/internal/client/config"
	"github.com/dmitrijs2005/wekip/internal/client/device"
	"github.com/dmitrijs2005/wekip/internal/client/router"
	"github.com/dmitrijs2005/wekip/internal/client/screens"
	"github.com/dmitrijs2005/wekip/internal/client/services"
	"github.com/dmitrijs2005/wekip/internal/client/session"
	"github.com/dmitrijs2005/wekip/internal/client/storage"
	"github.com/dmitrijs2005/wekip/internal/logging"
)

// App is the composition root of the terminal client.
type App struct {
	cfg    *config.Config
	log    logging.Logger
	db     *sql.DB
	clock  clock.Clock
	reader *bufio.Reader
	out    io.Writer
	notify *Printer

	session *session.Service
	nav     *router.Navigator
	guard   *router.Guard
	device  *device.Registrar

	auth     services.AuthService
	receipts services.ReceiptService
	share    services.ShareCodeService

	loginScreen    *screens.Login
	registerScreen *screens.Register
	verifyScreen   *screens.VerifyEmail
	forgotScreen   *screens.ForgotPassword
	homeScreen     *screens.Home
	receiptsScreen *screens.Receipts
	shareScreen    *screens.ShareCode

	// interactive enables the full screen share code view.
	interactive bool

	unsubscribe func()
}

// NewApp opens the local store and wires every component. in and out are the
// REPL streams.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if cfg.DatabasePath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o700); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	gw := api.NewGateway(cfg.APIBaseURL, cfg.RequestTimeout, log)
	client := api.NewClient(gw)

	a := &App{
		cfg:    cfg,
		log:    log,
		db:     db,
		clock:  clock.Real(),
		reader: bufio.NewReader(in),
		out:    out,
		notify: NewPrinter(out),
		nav:    router.NewNavigator(router.Home),
		device: device.NewRegistrar(db, log),
	}

	if f, ok := out.(*os.File); ok {
		a.interactive = isTerminal(int(f.Fd()))
	}

	a.session = session.NewService(session.NewStore(db), log)
	a.guard = router.NewGuard(a.nav, a.session, log)

	a.auth = services.NewAuthService(client, a.session, log)
	a.receipts = services.NewReceiptService(client, a.session, log)
	a.share = services.NewShareCodeService(client, a.session, log)

	a.loginScreen = screens.NewLogin(a.auth, a.nav, a.notify)
	a.registerScreen = screens.NewRegister(a.auth, a.nav, a.notify)
	a.verifyScreen = screens.NewVerifyEmail(a.auth, a.nav, a.notify, a.clock, cfg.ResendCooldown)
	a.forgotScreen = screens.NewForgotPassword(a.auth, a.nav, a.notify, a.clock, cfg.ResendCooldown)
	a.resetTabs()

	a.unsubscribe = a.session.Subscribe(func(s session.State) {
		if !s.Loading && !s.Authenticated() {
			a.resetTabs()
		}
	})

	return a, nil
}

// resetTabs drops everything the signed-in screens remember.
func (a *App) resetTabs() {
	a.homeScreen = screens.NewHome(a.receipts, a.cfg.RecentLimit)
	a.receiptsScreen = screens.NewReceipts(a.receipts, a.clock)
	a.receiptsScreen.OnRefresh(func(on bool) {
		if on {
			fmt.Fprintln(a.out, faintStyle.Render("Refreshing…"))
		}
	})
	a.shareScreen = screens.NewShareCode(a.share, a.notify, a.clock, a.cfg.ShareCodeTTL)
}

// Run restores the session, starts the route guard and serves the REPL until
// the user exits or in is exhausted.
func (a *App) Run(ctx context.Context) {
	a.guard.Start()
	defer a.guard.Stop()

	a.session.Init(ctx)

	if token, err := a.device.Register(ctx); err != nil {
		a.log.Warn(ctx, "device registration failed", "error", err)
	} else {
		a.log.Info(ctx, "device registered", "push_token", token)
	}

	fmt.Fprintln(a.out, headingStyle.Render("Wekip")+" (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

// Close releases the local store.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	return a.db.Close()
}

func (a *App) status() string {
	s := a.nav.Current()
	if c := a.session.Credential(); c != nil && c.Username != "" {
		s = c.Username + " " + s
	}
	return s
}

func (a *App) isLoggedIn() bool {
	return a.session.State().Authenticated()
}

func (a *App) markReady() {
	a.nav.MarkReady()
}
