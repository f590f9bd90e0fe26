// Package session is the single source of truth for "who is signed in".
//
// A Service is built once in the composition root and handed to every
// consumer through its constructor. Memory state is authoritative for the
// life of the process; the persisted copy is best effort.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/wekip/internal/client/models"
	"github.com/dmitrijs2005/wekip/internal/logging"
)

// State is a snapshot handed to listeners.
type State struct {
	Credential *models.Credential
	Loading    bool
}

// Authenticated reports whether a credential is present.
func (s State) Authenticated() bool {
	return s.Credential != nil
}

type Service struct {
	store Persister
	log   logging.Logger

	initOnce sync.Once

	mu        sync.RWMutex
	cred      *models.Credential
	loading   bool
	listeners map[int]func(State)
	nextID    int
}

func NewService(store Persister, log logging.Logger) *Service {
	if store == nil {
		panic("session: nil store")
	}
	return &Service{
		store:     store,
		log:       log.With("component", "session"),
		loading:   true,
		listeners: make(map[int]func(State)),
	}
}

// Require returns s, panicking when it is nil. Constructors of session
// consumers call it so a missing service fails at wiring time.
func Require(s *Service) *Service {
	if s == nil {
		panic("session: service used without being provided")
	}
	return s
}

// Init reads the persisted credential once. Any failure leaves the user
// signed out. Loading turns false exactly once, after the read.
func (s *Service) Init(ctx context.Context) {
	s.initOnce.Do(func() {
		cred, err := s.store.Load(ctx)
		if err != nil {
			s.log.Warn(ctx, "persisted session unreadable, starting signed out", "error", err)
			cred = nil
		}

		s.mu.Lock()
		// a SignIn racing ahead of Init wins
		if s.cred == nil {
			s.cred = cred
		}
		s.loading = false
		s.mu.Unlock()

		s.notify()
	})
}

func (s *Service) SignIn(ctx context.Context, c models.Credential) {
	s.mu.Lock()
	s.cred = &c
	s.mu.Unlock()
	s.notify()

	if err := s.store.Save(ctx, c); err != nil {
		s.log.Warn(ctx, "persisting session failed", "error", err)
		return
	}
	s.log.Info(ctx, "signed in", "email", c.Email)
}

func (s *Service) SignOut(ctx context.Context) {
	s.mu.Lock()
	wasSignedIn := s.cred != nil
	s.cred = nil
	s.mu.Unlock()
	s.notify()

	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn(ctx, "removing persisted session failed", "error", err)
		return
	}
	if wasSignedIn {
		s.log.Info(ctx, "signed out")
	}
}

func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Credential: copyCredential(s.cred), Loading: s.loading}
}

// Credential returns a copy of the current credential or nil.
func (s *Service) Credential() *models.Credential {
	return s.State().Credential
}

func (s *Service) Loading() bool {
	return s.State().Loading
}

// Token returns the bearer token or "" when signed out.
func (s *Service) Token() string {
	if c := s.Credential(); c != nil {
		return c.Token
	}
	return ""
}

// Expiry reports the exp claim when the token is a JWT. The signature is
// not checked; the server remains the authority.
func (s *Service) Expiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Subscribe registers fn for every state change. The returned func removes it.
func (s *Service) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Service) notify() {
	s.mu.RLock()
	state := State{Credential: copyCredential(s.cred), Loading: s.loading}
	fns := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(state)
	}
}

func copyCredential(c *models.Credential) *models.Credential {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
