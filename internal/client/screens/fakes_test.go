package screens

import (
	"context"

	"github.com/dmitrijs2005/wekip/internal/client/api"
	"github.com/dmitrijs2005/wekip/internal/client/models"
)

type toast struct {
	kind  string
	title string
}

type recordingNotifier struct {
	toasts []toast
}

func (n *recordingNotifier) Success(title string) {
	n.toasts = append(n.toasts, toast{"success", title})
}

func (n *recordingNotifier) Danger(title string) {
	n.toasts = append(n.toasts, toast{"danger", title})
}

type fakeAuth struct {
	loginErr    error
	registerKey string
	err         error

	calls []string
}

func (f *fakeAuth) Login(_ context.Context, email, _ string) (models.Credential, error) {
	f.calls = append(f.calls, "login")
	if f.loginErr != nil {
		return models.Credential{}, f.loginErr
	}
	return models.Credential{Token: "t", Email: email}, nil
}

func (f *fakeAuth) Register(context.Context, string, string, string) (models.RegisterResponse, error) {
	f.calls = append(f.calls, "register")
	return models.RegisterResponse{VerificationKey: f.registerKey}, f.err
}

func (f *fakeAuth) VerifyEmail(context.Context, string) error {
	f.calls = append(f.calls, "verify")
	return f.err
}

func (f *fakeAuth) ResendCode(context.Context, string) error {
	f.calls = append(f.calls, "get_otp")
	return f.err
}

func (f *fakeAuth) SendResetCode(context.Context, string) error {
	f.calls = append(f.calls, "forgot")
	return f.err
}

func (f *fakeAuth) ResetPassword(context.Context, string, string, string) error {
	f.calls = append(f.calls, "change")
	return f.err
}

func (f *fakeAuth) Logout(context.Context) {
	f.calls = append(f.calls, "logout")
}

type fakeReceipts struct {
	sections []models.GroupedReceipt
	stats    models.Stats
	code     models.ShareCode
	err      error

	queries  []api.ReceiptQuery
	recent   int
	generate int

	// during runs inside List, before it returns.
	during func()
}

func (f *fakeReceipts) Recent(_ context.Context, limit int) ([]models.GroupedReceipt, error) {
	f.recent++
	return f.sections, f.err
}

func (f *fakeReceipts) List(_ context.Context, q api.ReceiptQuery) ([]models.GroupedReceipt, error) {
	f.queries = append(f.queries, q)
	if f.during != nil {
		f.during()
	}
	return f.sections, f.err
}

func (f *fakeReceipts) Stats(context.Context) (models.Stats, error) {
	return f.stats, f.err
}

func (f *fakeReceipts) Generate(context.Context) (models.ShareCode, error) {
	f.generate++
	return f.code, f.err
}
