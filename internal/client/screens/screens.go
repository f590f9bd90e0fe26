// Package screens holds the state and operations of every client screen,
// independent of how they are drawn. Screens report outcomes through a
// Notifier and move between routes through a router.Navigator.
package screens

import (
	"errors"

	"github.com/dmitrijs2005/wekip/internal/client/api"
)

var (
	// ErrCooldownActive rejects a resend while its countdown runs.
	ErrCooldownActive = errors.New("please wait before requesting another code")
	// ErrRefreshDisabled rejects a new share code while the current one is valid.
	ErrRefreshDisabled = errors.New("share code is still valid")
	// ErrNoResetRequested rejects a reset code resend before step 1 succeeded.
	ErrNoResetRequested = errors.New("request a reset code first")
)

// Notifier shows transient success and failure messages.
type Notifier interface {
	Success(title string)
	Danger(title string)
}

// fail reports err to the user and returns it.
func fail(n Notifier, err error) error {
	n.Danger(api.Message(err))
	return err
}
