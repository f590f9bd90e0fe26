package router

import (
	"context"

	"github.com/dmitrijs2005/wekip/internal/client/session"
	"github.com/dmitrijs2005/wekip/internal/logging"
)

// Decide is the route guard rule. It returns the route to redirect to, if any.
//
// Nothing happens until navigation is ready and the session has finished
// loading. Afterwards a signed-out user outside the auth area goes to Login
// and a signed-in user inside it goes Home.
func Decide(ready, loading, authenticated bool, segments []string) (string, bool) {
	if !ready || loading {
		return "", false
	}

	inAuthGroup := InAuthGroup(segments)
	switch {
	case !authenticated && !inAuthGroup:
		return Login, true
	case authenticated && inAuthGroup:
		return Home, true
	default:
		return "", false
	}
}

// SessionSource is the part of session.Service the guard observes.
type SessionSource interface {
	State() session.State
	Subscribe(fn func(session.State)) func()
}

// Guard re-runs Decide whenever the session, the route or readiness changes.
type Guard struct {
	nav  *Navigator
	sess SessionSource
	log  logging.Logger

	stop []func()
}

func NewGuard(nav *Navigator, sess SessionSource, log logging.Logger) *Guard {
	if nav == nil || sess == nil {
		panic("router: guard needs a navigator and a session")
	}
	return &Guard{nav: nav, sess: sess, log: log.With("component", "guard")}
}

// Start subscribes the guard and evaluates once.
func (g *Guard) Start() {
	g.stop = append(g.stop,
		g.nav.Subscribe(g.Evaluate),
		g.sess.Subscribe(func(session.State) { g.Evaluate() }),
	)
	g.Evaluate()
}

func (g *Guard) Stop() {
	for _, fn := range g.stop {
		fn()
	}
	g.stop = nil
}

// Evaluate applies Decide to the current inputs.
func (g *Guard) Evaluate() {
	state := g.sess.State()
	current := g.nav.Current()

	target, redirect := Decide(g.nav.Ready(), state.Loading, state.Authenticated(), Segments(current))
	if !redirect || target == current {
		return
	}

	g.log.Debug(context.Background(), "redirect", "from", current, "to", target)
	g.nav.Replace(target)
}
