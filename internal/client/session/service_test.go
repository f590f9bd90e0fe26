package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/wekip/internal/client/models"
	"github.com/dmitrijs2005/wekip/internal/logging"
)

type fakeStore struct {
	loaded  *models.Credential
	loadErr error
	saveErr error
	clrErr  error

	loads  int
	saved  []models.Credential
	clears int
}

func (f *fakeStore) Save(_ context.Context, c models.Credential) error {
	f.saved = append(f.saved, c)
	return f.saveErr
}

func (f *fakeStore) Load(context.Context) (*models.Credential, error) {
	f.loads++
	return f.loaded, f.loadErr
}

func (f *fakeStore) Clear(context.Context) error {
	f.clears++
	return f.clrErr
}

func newService(f *fakeStore) *Service {
	return NewService(f, logging.Discard())
}

func TestService_StartsLoading(t *testing.T) {
	s := newService(&fakeStore{})
	assert.True(t, s.Loading())
	assert.Nil(t, s.Credential())
}

func TestService_Init_LoadsPersistedCredentialOnce(t *testing.T) {
	f := &fakeStore{loaded: &models.Credential{Token: "t", Email: "a@b.co", Username: "ann"}}
	s := newService(f)

	var states []State
	s.Subscribe(func(st State) { states = append(states, st) })

	s.Init(context.Background())
	s.Init(context.Background())

	assert.Equal(t, 1, f.loads)
	assert.False(t, s.Loading())
	require.NotNil(t, s.Credential())
	assert.Equal(t, "t", s.Token())
	require.Len(t, states, 1, "loading flips exactly once")
	assert.False(t, states[0].Loading)
}

func TestService_Init_ReadFailureMeansSignedOut(t *testing.T) {
	s := newService(&fakeStore{loadErr: errors.New("parse error")})

	s.Init(context.Background())

	assert.False(t, s.Loading())
	assert.Nil(t, s.Credential())
	assert.False(t, s.State().Authenticated())
}

func TestService_SignIn_PersistsAndNotifies(t *testing.T) {
	f := &fakeStore{}
	s := newService(f)
	s.Init(context.Background())

	var got State
	s.Subscribe(func(st State) { got = st })

	c := models.Credential{Token: "tok", Email: "a@b.co", Username: "ann"}
	s.SignIn(context.Background(), c)

	require.Equal(t, []models.Credential{c}, f.saved)
	require.NotNil(t, got.Credential)
	assert.Equal(t, c, *got.Credential)
}

func TestService_SignIn_StorageErrorSwallowed(t *testing.T) {
	s := newService(&fakeStore{saveErr: errors.New("disk full")})

	s.SignIn(context.Background(), models.Credential{Token: "tok"})

	assert.Equal(t, "tok", s.Token(), "memory stays authoritative")
}

func TestService_SignOut_ClearsMemoryAndStore(t *testing.T) {
	f := &fakeStore{clrErr: errors.New("io")}
	s := newService(f)
	s.SignIn(context.Background(), models.Credential{Token: "tok"})

	s.SignOut(context.Background())

	assert.Nil(t, s.Credential())
	assert.Equal(t, "", s.Token())
	assert.Equal(t, 1, f.clears)
}

func TestService_SignInBeforeInit_IsNotOverwritten(t *testing.T) {
	f := &fakeStore{loaded: &models.Credential{Token: "old"}}
	s := newService(f)

	s.SignIn(context.Background(), models.Credential{Token: "new"})
	s.Init(context.Background())

	assert.Equal(t, "new", s.Token())
}

func TestService_CredentialIsACopy(t *testing.T) {
	s := newService(&fakeStore{})
	s.SignIn(context.Background(), models.Credential{Token: "tok"})

	c := s.Credential()
	c.Token = "mutated"

	assert.Equal(t, "tok", s.Token())
}

func TestService_Unsubscribe(t *testing.T) {
	s := newService(&fakeStore{})
	calls := 0
	unsubscribe := s.Subscribe(func(State) { calls++ })

	s.SignIn(context.Background(), models.Credential{Token: "a"})
	unsubscribe()
	s.SignOut(context.Background())

	assert.Equal(t, 1, calls)
}

func TestService_Expiry(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	s := newService(&fakeStore{})

	_, ok := s.Expiry()
	assert.False(t, ok, "signed out")

	s.SignIn(context.Background(), models.Credential{Token: "opaque-token"})
	_, ok = s.Expiry()
	assert.False(t, ok, "not a JWT")

	s.SignIn(context.Background(), models.Credential{Token: token})
	got, ok := s.Expiry()
	require.True(t, ok)
	assert.True(t, exp.Equal(got))
}

func TestRequire_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { Require(nil) })
	assert.NotPanics(t, func() { Require(newService(&fakeStore{})) })
}

func TestNewService_PanicsOnNilStore(t *testing.T) {
	assert.Panics(t, func() { NewService(nil, logging.Discard()) })
}
