package services

import (
	"context"

	"github.com/dmitrijs2005/wekip/internal/client/api"
	"github.com/dmitrijs2005/wekip/internal/client/models"
)

type fakeSession struct {
	token    string
	signedIn []models.Credential
	signOuts int
}

func (f *fakeSession) Token() string { return f.token }

func (f *fakeSession) SignIn(_ context.Context, c models.Credential) {
	f.signedIn = append(f.signedIn, c)
	f.token = c.Token
}

func (f *fakeSession) SignOut(context.Context) {
	f.signOuts++
	f.token = ""
}

type fakeAuthAPI struct {
	loginResp models.AuthResponse
	loginErr  error

	registerResp models.RegisterResponse
	registerErr  error

	err error

	calls []string
	args  [][]string
}

func (f *fakeAuthAPI) record(name string, args ...string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
}

func (f *fakeAuthAPI) Login(_ context.Context, email, password string) (models.AuthResponse, error) {
	f.record("login", email, password)
	return f.loginResp, f.loginErr
}

func (f *fakeAuthAPI) Register(_ context.Context, email, username, password string) (models.RegisterResponse, error) {
	f.record("register", email, username, password)
	return f.registerResp, f.registerErr
}

func (f *fakeAuthAPI) VerifyEmail(_ context.Context, otp string) error {
	f.record("verify", otp)
	return f.err
}

func (f *fakeAuthAPI) ResendCode(_ context.Context, email string) error {
	f.record("get_otp", email)
	return f.err
}

func (f *fakeAuthAPI) ForgotPassword(_ context.Context, email string) error {
	f.record("forgot", email)
	return f.err
}

func (f *fakeAuthAPI) ChangePassword(_ context.Context, email, otp, password string) error {
	f.record("change", email, otp, password)
	return f.err
}

type fakeReceiptAPI struct {
	page  models.Page[models.GroupedReceipt]
	stats models.Stats
	code  models.ShareCode
	err   error

	// unauthorized makes every call behave like a 401.
	unauthorized bool

	lastAuth  api.Auth
	lastQuery api.ReceiptQuery
	lastLimit int
	calls     int
}

func (f *fakeReceiptAPI) answer(auth api.Auth) error {
	f.calls++
	f.lastAuth = auth
	if f.unauthorized {
		if auth.OnFailure != nil {
			auth.OnFailure()
		}
		return &api.Error{Status: 401, Message: "Unauthorized"}
	}
	return f.err
}

func (f *fakeReceiptAPI) RecentReceipts(_ context.Context, auth api.Auth, limit int) (models.Page[models.GroupedReceipt], error) {
	f.lastLimit = limit
	return f.page, f.answer(auth)
}

func (f *fakeReceiptAPI) Receipts(_ context.Context, auth api.Auth, q api.ReceiptQuery) (models.Page[models.GroupedReceipt], error) {
	f.lastQuery = q
	return f.page, f.answer(auth)
}

func (f *fakeReceiptAPI) Stats(_ context.Context, auth api.Auth) (models.Stats, error) {
	return f.stats, f.answer(auth)
}

func (f *fakeReceiptAPI) ShareCode(_ context.Context, auth api.Auth) (models.ShareCode, error) {
	return f.code, f.answer(auth)
}
