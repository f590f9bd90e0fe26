// Package services contains application services for the Wekip client.
// This file defines the authentication service: login, registration, email
// verification, password reset and logout.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wekip/internal/client/models"
	"github.com/dmitrijs2005/wekip/internal/logging"
)

// ErrSignedOut is returned by private operations when there is no session.
var ErrSignedOut = errors.New("not signed in")

// AuthAPI is the part of api.Client the auth service needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (models.AuthResponse, error)
	Register(ctx context.Context, email, username, password string) (models.RegisterResponse, error)
	VerifyEmail(ctx context.Context, otp string) error
	ResendCode(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, email, otp, password string) error
}

// Session is the part of session.Service the services use.
type Session interface {
	Token() string
	SignIn(ctx context.Context, c models.Credential)
	SignOut(ctx context.Context)
}

// AuthService defines authentication operations.
//
// Contract:
//   - Login: authenticate and start the session.
//   - Register: create an unverified account.
//   - VerifyEmail / ResendCode: confirm the email with a code, or ask for a new one.
//   - SendResetCode / ResetPassword: the two password reset steps.
//   - Logout: end the session.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.Credential, error)
	Register(ctx context.Context, email, username, password string) (models.RegisterResponse, error)
	VerifyEmail(ctx context.Context, otp string) error
	ResendCode(ctx context.Context, email string) error
	SendResetCode(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, password string) error
	Logout(ctx context.Context)
}

type authService struct {
	api     AuthAPI
	session Session
	log     logging.Logger
}

func NewAuthService(a AuthAPI, s Session, log logging.Logger) AuthService {
	if a == nil || s == nil {
		panic("services: auth service needs an api and a session")
	}
	return &authService{api: a, session: s, log: log.With("service", "auth")}
}

// Login signs the user in. The session is only touched on success.
func (a *authService) Login(ctx context.Context, email, password string) (models.Credential, error) {
	resp, err := a.api.Login(ctx, email, password)
	if err != nil {
		return models.Credential{}, fmt.Errorf("login: %w", err)
	}

	cred := resp.Credential()
	if cred.Email == "" {
		cred.Email = email
	}
	a.session.SignIn(ctx, cred)
	a.log.Info(ctx, "signed in", "email", cred.Email)
	return cred, nil
}

func (a *authService) Register(ctx context.Context, email, username, password string) (models.RegisterResponse, error) {
	resp, err := a.api.Register(ctx, email, username, password)
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register: %w", err)
	}
	a.log.Info(ctx, "registered", "email", email)
	return resp, nil
}

func (a *authService) VerifyEmail(ctx context.Context, otp string) error {
	if err := a.api.VerifyEmail(ctx, otp); err != nil {
		return fmt.Errorf("verify email: %w", err)
	}
	return nil
}

func (a *authService) ResendCode(ctx context.Context, email string) error {
	if err := a.api.ResendCode(ctx, email); err != nil {
		return fmt.Errorf("resend code: %w", err)
	}
	return nil
}

func (a *authService) SendResetCode(ctx context.Context, email string) error {
	if err := a.api.ForgotPassword(ctx, email); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

func (a *authService) ResetPassword(ctx context.Context, email, otp, password string) error {
	if err := a.api.ChangePassword(ctx, email, otp, password); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) {
	a.session.SignOut(ctx)
	a.log.Info(ctx, "signed out")
}
