// Package users implements accounts of the development API server: sign up,
// email verification, sign in and password reset.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/wekip/internal/common"
	"github.com/dmitrijs2005/wekip/internal/logging"
	"github.com/dmitrijs2005/wekip/internal/server/auth"
	"github.com/dmitrijs2005/wekip/internal/server/config"
)

// OTPValidity is how long an emailed code stays usable.
const OTPValidity = 10 * time.Minute

type Service struct {
	repo      Repository
	log       logging.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
	fixedOTP  string

	now     func() time.Time
	newCode func() (string, error)

	mu            sync.Mutex
	verifications []otp
	resets        map[string]otp
}

func NewService(repo Repository, cfg *config.Config, log logging.Logger) *Service {
	s := &Service{
		repo:      repo,
		log:       log,
		jwtSecret: []byte(cfg.SecretKey),
		tokenTTL:  cfg.TokenTTL,
		fixedOTP:  cfg.FixedOTP,
		now:       time.Now,
		resets:    make(map[string]otp),
	}
	s.newCode = s.generateCode
	return s
}

func (s *Service) generateCode() (string, error) {
	if s.fixedOTP != "" {
		return s.fixedOTP, nil
	}
	return common.RandomCode(6, common.Digits)
}

// Register creates an unverified user and issues the verification code. The
// returned key identifies the verification attempt.
func (s *Service) Register(ctx context.Context, email, username, password string) (*User, string, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if email == "" || username == "" || len(password) < 8 {
		return nil, "", common.ErrorValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, &User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return nil, "", err
	}

	if err := s.issueVerification(ctx, u); err != nil {
		return nil, "", err
	}
	return u, uuid.NewString(), nil
}

// Login checks the password and returns an access token. Unverified users
// are refused with common.ErrorEmailNotVerified.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorInvalidCredentials
		}
		return "", nil, common.ErrorInternal
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return "", nil, common.ErrorInvalidCredentials
	}
	if !u.Verified {
		return "", nil, common.ErrorEmailNotVerified
	}

	token, err := auth.GenerateToken(u.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", nil, common.ErrorInternal
	}
	return token, u, nil
}

// VerifyEmail marks the user holding code as verified. The most recently
// issued matching code wins.
func (s *Service) VerifyEmail(ctx context.Context, code string) error {
	s.mu.Lock()
	idx := -1
	now := s.now()
	for i := len(s.verifications) - 1; i >= 0; i-- {
		v := s.verifications[i]
		if v.code == code && now.Before(v.expires) {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return common.ErrorInvalidOTP
	}
	userID := s.verifications[idx].userID
	s.dropVerifications(userID)
	s.mu.Unlock()

	return s.repo.MarkVerified(ctx, userID)
}

// ResendVerification replaces the pending verification code of email.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u.Verified {
		return common.ErrorAlreadyVerified
	}
	return s.issueVerification(ctx, u)
}

// ForgotPassword issues a reset code for email, replacing any earlier one.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := s.newCode()
	if err != nil {
		return common.ErrorInternal
	}

	s.mu.Lock()
	s.resets[u.ID] = otp{userID: u.ID, code: code, expires: s.now().Add(OTPValidity)}
	s.mu.Unlock()

	s.log.Info(ctx, "password reset code issued", "email", u.Email, "otp", code)
	return nil
}

// ChangePassword sets a new password when code matches the pending reset.
func (s *Service) ChangePassword(ctx context.Context, email, code, password string) error {
	if len(password) < 8 {
		return common.ErrorValidation
	}

	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	s.mu.Lock()
	pending, ok := s.resets[u.ID]
	if !ok || pending.code != code || !s.now().Before(pending.expires) {
		s.mu.Unlock()
		return common.ErrorInvalidOTP
	}
	delete(s.resets, u.ID)
	s.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.SetPasswordHash(ctx, u.ID, hash)
}

// Authenticate resolves an access token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	id, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	return u, nil
}

func (s *Service) issueVerification(ctx context.Context, u *User) error {
	code, err := s.newCode()
	if err != nil {
		return common.ErrorInternal
	}

	s.mu.Lock()
	s.dropVerifications(u.ID)
	s.verifications = append(s.verifications, otp{userID: u.ID, code: code, expires: s.now().Add(OTPValidity)})
	s.mu.Unlock()

	s.log.Info(ctx, "verification code issued", "email", u.Email, "otp", code)
	return nil
}

// dropVerifications removes pending codes of userID. Callers hold s.mu.
func (s *Service) dropVerifications(userID string) {
	kept := s.verifications[:0]
	for _, v := range s.verifications {
		if v.userID != userID {
			kept = append(kept, v)
		}
	}
	s.verifications = kept
}
