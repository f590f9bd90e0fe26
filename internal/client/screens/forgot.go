package screens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/wekip/internal/client/clock"
	"github.com/dmitrijs2005/wekip/internal/client/forms"
	"github.com/dmitrijs2005/wekip/internal/client/router"
	"github.com/dmitrijs2005/wekip/internal/client/services"
)

const MsgPasswordReset = "Your password has been reset. You're back in control of your account."

// ForgotPassword is the two step password reset wizard. Step 1 asks for the
// email, step 2 for the code and the new password.
type ForgotPassword struct {
	auth   services.AuthService
	nav    *router.Navigator
	notify Notifier

	cooldown    *clock.Countdown
	cooldownLen time.Duration

	step  int
	email string
}

func NewForgotPassword(auth services.AuthService, nav *router.Navigator, notify Notifier, clk clock.Clock, cooldown time.Duration) *ForgotPassword {
	return &ForgotPassword{
		auth:        auth,
		nav:         nav,
		notify:      notify,
		cooldown:    clock.NewCountdown(clk),
		cooldownLen: cooldown,
		step:        1,
	}
}

func (s *ForgotPassword) Step() int     { return s.step }
func (s *ForgotPassword) Email() string { return s.email }

// RequestCode submits step 1 and advances to step 2 on success.
func (s *ForgotPassword) RequestCode(ctx context.Context, f forms.ForgotPasswordStep1) error {
	if err := forms.ValidateForgotPassword(&f).Err(); err != nil {
		return err
	}
	if err := s.sendCode(ctx, f.Email); err != nil {
		return err
	}
	s.email = f.Email
	s.step = 2
	return nil
}

// Reset submits step 2. The email is the one step 1 used.
func (s *ForgotPassword) Reset(ctx context.Context, otp, password, confirm string) error {
	f := forms.ForgotPasswordStep2{Email: s.email, OTP: otp, Password: password, ConfirmPassword: confirm}
	if err := forms.ValidateForgotPassword(&f).Err(); err != nil {
		return err
	}

	if err := s.auth.ResetPassword(ctx, f.Email, f.OTP, f.Password); err != nil {
		return fail(s.notify, err)
	}

	s.notify.Success(MsgPasswordReset)
	s.reset()
	s.nav.Push(router.Login)
	return nil
}

// Resend repeats step 1 for the same email, gated by the cooldown.
func (s *ForgotPassword) Resend(ctx context.Context) error {
	if s.step != 2 {
		return ErrNoResetRequested
	}
	if s.cooldown.Active() {
		return ErrCooldownActive
	}
	s.cooldown.Start(s.cooldownLen)
	return s.sendCode(ctx, s.email)
}

func (s *ForgotPassword) Cooldown() int { return s.cooldown.Remaining() }

func (s *ForgotPassword) sendCode(ctx context.Context, email string) error {
	if err := s.auth.SendResetCode(ctx, email); err != nil {
		return fail(s.notify, err)
	}
	s.notify.Success("OTP resent successfully")
	return nil
}

// Restart drops the email and goes back to step 1.
func (s *ForgotPassword) Restart() { s.reset() }

func (s *ForgotPassword) reset() {
	s.step = 1
	s.email = ""
	s.cooldown.Stop()
}
