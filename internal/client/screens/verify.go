package screens

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/wekip/internal/client/clock"
	"github.com/dmitrijs2005/wekip/internal/client/codec"
	"github.com/dmitrijs2005/wekip/internal/client/forms"
	"github.com/dmitrijs2005/wekip/internal/client/models"
	"github.com/dmitrijs2005/wekip/internal/client/router"
	"github.com/dmitrijs2005/wekip/internal/client/services"
)

// VerifyEmail confirms an account with the emailed code.
type VerifyEmail struct {
	auth   services.AuthService
	nav    *router.Navigator
	notify Notifier

	cooldown    *clock.Countdown
	cooldownLen time.Duration

	payload models.VerificationPayload
}

func NewVerifyEmail(auth services.AuthService, nav *router.Navigator, notify Notifier, clk clock.Clock, cooldown time.Duration) *VerifyEmail {
	return &VerifyEmail{
		auth:        auth,
		nav:         nav,
		notify:      notify,
		cooldown:    clock.NewCountdown(clk),
		cooldownLen: cooldown,
	}
}

// Open reads the payload carried by a verify-email route. Opening another
// email drops the resend cooldown of the previous one.
func (s *VerifyEmail) Open(route string) error {
	raw, ok := router.VerifyEmailPayload(route)
	if !ok {
		return fmt.Errorf("%w: %s", codec.ErrInvalidPayload, route)
	}

	var p models.VerificationPayload
	if err := codec.Decode(raw, &p); err != nil {
		return err
	}
	if p.Email != s.payload.Email {
		s.cooldown.Stop()
	}
	s.payload = p
	return nil
}

func (s *VerifyEmail) Email() string { return s.payload.Email }

func (s *VerifyEmail) Submit(ctx context.Context, otp string) error {
	f := forms.VerifyEmail{Email: s.payload.Email, OTP: otp}
	if err := forms.Validate(&f).Err(); err != nil {
		return err
	}

	if err := s.auth.VerifyEmail(ctx, f.OTP); err != nil {
		return fail(s.notify, err)
	}

	s.notify.Success("Email verified successfully")
	s.nav.Push(router.Login)
	return nil
}

// Resend asks for a new verification code and starts the cooldown. The
// cooldown runs even when the request fails.
func (s *VerifyEmail) Resend(ctx context.Context) error {
	if s.cooldown.Active() {
		return ErrCooldownActive
	}
	s.cooldown.Start(s.cooldownLen)

	if err := s.auth.ResendCode(ctx, s.payload.Email); err != nil {
		return fail(s.notify, err)
	}
	s.notify.Success("OTP resent successfully")
	return nil
}

// Cooldown is the number of seconds until Resend is allowed again.
func (s *VerifyEmail) Cooldown() int { return s.cooldown.Remaining() }
