package screens

import (
	"context"

	"github.com/dmitrijs2005/wekip/internal/client/codec"
	"github.com/dmitrijs2005/wekip/internal/client/forms"
	"github.com/dmitrijs2005/wekip/internal/client/models"
	"github.com/dmitrijs2005/wekip/internal/client/router"
	"github.com/dmitrijs2005/wekip/internal/client/services"
)

type Register struct {
	auth   services.AuthService
	nav    *router.Navigator
	notify Notifier
}

func NewRegister(auth services.AuthService, nav *router.Navigator, notify Notifier) *Register {
	return &Register{auth: auth, nav: nav, notify: notify}
}

// Submit creates the account and opens email verification for it.
func (s *Register) Submit(ctx context.Context, f forms.Register) error {
	if err := forms.Validate(&f).Err(); err != nil {
		return err
	}

	resp, err := s.auth.Register(ctx, f.Email, f.Username, f.Password)
	if err != nil {
		return fail(s.notify, err)
	}

	payload, err := codec.Encode(models.VerificationPayload{
		Email:           f.Email,
		VerificationKey: resp.VerificationKey,
	})
	if err != nil {
		return fail(s.notify, err)
	}

	s.notify.Success("Sign Up Successfully")
	s.nav.Push(router.VerifyEmail(payload))
	return nil
}
