package screens

import (
	"context"

	"github.com/dmitrijs2005/wekip/internal/client/api"
	"github.com/dmitrijs2005/wekip/internal/client/codec"
	"github.com/dmitrijs2005/wekip/internal/client/forms"
	"github.com/dmitrijs2005/wekip/internal/client/models"
	"github.com/dmitrijs2005/wekip/internal/client/router"
	"github.com/dmitrijs2005/wekip/internal/client/services"
)

// MsgEmailNotVerified is the login failure that leads to email verification.
const MsgEmailNotVerified = "Email not verified"

type Login struct {
	auth   services.AuthService
	nav    *router.Navigator
	notify Notifier
}

func NewLogin(auth services.AuthService, nav *router.Navigator, notify Notifier) *Login {
	return &Login{auth: auth, nav: nav, notify: notify}
}

// Submit validates f and signs in. An unverified account is sent to the
// verification screen instead of being reported.
func (s *Login) Submit(ctx context.Context, f forms.Login) error {
	if err := forms.Validate(&f).Err(); err != nil {
		return err
	}

	_, err := s.auth.Login(ctx, f.Email, f.Password)
	if err != nil {
		if api.Message(err) == MsgEmailNotVerified {
			payload, encErr := codec.Encode(models.VerificationPayload{Email: f.Email})
			if encErr != nil {
				return fail(s.notify, encErr)
			}
			s.nav.Replace(router.VerifyEmail(payload))
			return err
		}
		return fail(s.notify, err)
	}

	if s.nav.Current() != router.Home {
		s.nav.Push(router.Home)
	}
	return nil
}
