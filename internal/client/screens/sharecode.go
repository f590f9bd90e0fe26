package screens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/wekip/internal/client/clock"
	"github.com/dmitrijs2005/wekip/internal/client/models"
	"github.com/dmitrijs2005/wekip/internal/client/services"
)

// ShareCode shows a code another party uses to attach receipts to the
// account. A new code can be requested only once the current one expired.
type ShareCode struct {
	svc    services.ShareCodeService
	notify Notifier

	countdown *clock.Countdown
	ttl       time.Duration

	code models.ShareCode
}

func NewShareCode(svc services.ShareCodeService, notify Notifier, clk clock.Clock, ttl time.Duration) *ShareCode {
	return &ShareCode{svc: svc, notify: notify, countdown: clock.NewCountdown(clk), ttl: ttl}
}

// Mount issues the first code when the screen opens.
func (s *ShareCode) Mount(ctx context.Context) error {
	return s.generate(ctx)
}

// Regenerate issues a new code once the current one expired.
func (s *ShareCode) Regenerate(ctx context.Context) error {
	if s.RefreshDisabled() {
		return ErrRefreshDisabled
	}
	return s.generate(ctx)
}

func (s *ShareCode) generate(ctx context.Context) error {
	code, err := s.svc.Generate(ctx)
	if err != nil {
		return fail(s.notify, err)
	}
	s.code = code
	s.countdown.Start(s.lifetime(code))
	return nil
}

// lifetime is the configured ttl unless the server expires the code sooner.
func (s *ShareCode) lifetime(code models.ShareCode) time.Duration {
	if code.ExpiresIn > 0 && code.ExpiresIn < s.ttl {
		return code.ExpiresIn
	}
	return s.ttl
}

func (s *ShareCode) Code() string { return s.code.Code }

// Copy returns the code for the clipboard. It is empty before Mount.
func (s *ShareCode) Copy() string { return s.code.Code }

func (s *ShareCode) Remaining() int { return s.countdown.Remaining() }

// Timer renders the time left as mm:ss.
func (s *ShareCode) Timer() string { return s.countdown.Format() }

func (s *ShareCode) RefreshDisabled() bool { return s.countdown.Active() }
