// Package server runs the development API server: an implementation of the
// Wekip HTTP API for local use of the client. Users live in memory unless a
// PostgreSQL DSN is configured.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"

	"github.com/dmitrijs2005/wekip/internal/logging"
	"github.com/dmitrijs2005/wekip/internal/server/config"
	"github.com/dmitrijs2005/wekip/internal/server/httpapi"
	"github.com/dmitrijs2005/wekip/internal/server/receipts"
	"github.com/dmitrijs2005/wekip/internal/server/storage"
	"github.com/dmitrijs2005/wekip/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

// openPostgres is a seam for testing storage.OpenPostgres.
var openPostgres = storage.OpenPostgres

type App struct {
	config *config.Config
	logger logging.Logger
	server *http.Server
	db     *sql.DB
}

// newUsersRepository picks the users store: PostgreSQL when a DSN is
// configured, process memory otherwise. db is nil for the latter.
func newUsersRepository(ctx context.Context, c *config.Config) (users.Repository, *sql.DB, error) {
	if c.DatabaseDSN == "" {
		return users.NewInMemoryRepository(), nil, nil
	}
	db, err := openPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return users.NewPostgresRepository(db), db, nil
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repo, db, err := newUsersRepository(ctx, c)
	if err != nil {
		return nil, err
	}

	us := users.NewService(repo, c, logger)
	rs := receipts.NewStore(c.ShareCodeTTL)
	h := httpapi.NewHandler(us, rs, logger)

	handler := handlers.RecoveryHandler()(h.Router())
	handler = handlers.LoggingHandler(os.Stdout, handler)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: &http.Server{
			Addr:              c.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Close releases the database, if any.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run listens on the configured address until ctx is cancelled or a
// termination signal arrives, then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return err
	}
	return app.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (app *App) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)
	app.logger.Info(ctx, "Starting server...", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return app.server.Shutdown(shutdownCtx)
}
