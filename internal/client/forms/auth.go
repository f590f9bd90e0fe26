package forms

import "strings"

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (f *Login) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

type Register struct {
	Email           string `json:"email" validate:"required,email"`
	Username        string `json:"username" validate:"required,min=3"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,min=8"`
}

func (f *Register) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
	f.Username = strings.TrimSpace(f.Username)
	f.Password = strings.TrimSpace(f.Password)
	f.ConfirmPassword = strings.TrimSpace(f.ConfirmPassword)
}

func (f *Register) crossCheck(fe FieldErrors) {
	passwordsMatch(fe, f.Password, f.ConfirmPassword, "Passwords do not match")
}

// VerifyEmail is the one-time code form. Email comes from the route payload.
type VerifyEmail struct {
	Email string `json:"email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

func (f *VerifyEmail) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

// passwordsMatch reports a mismatch on confirmPassword unless that field
// already failed on its own.
func passwordsMatch(fe FieldErrors, password, confirm, msg string) {
	if password != confirm {
		fe.set("confirmPassword", msg)
	}
}
