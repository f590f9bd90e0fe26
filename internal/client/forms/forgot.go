package forms

import "strings"

// ForgotPassword is the password reset wizard input. It is either a
// ForgotPasswordStep1 or a ForgotPasswordStep2.
type ForgotPassword interface {
	Form
	Step() int
}

// ForgotPasswordStep1 requests a reset code for an email.
type ForgotPasswordStep1 struct {
	Email string `json:"email" validate:"required,email"`
}

func (*ForgotPasswordStep1) Step() int { return 1 }

func (f *ForgotPasswordStep1) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

// ForgotPasswordStep2 sets the new password using the emailed code.
type ForgotPasswordStep2 struct {
	Email           string `json:"email" validate:"required,email"`
	OTP             string `json:"otp" validate:"required,len=6"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,min=8"`
}

func (*ForgotPasswordStep2) Step() int { return 2 }

func (f *ForgotPasswordStep2) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
	f.Password = strings.TrimSpace(f.Password)
	f.ConfirmPassword = strings.TrimSpace(f.ConfirmPassword)
}

func (f *ForgotPasswordStep2) crossCheck(fe FieldErrors) {
	passwordsMatch(fe, f.Password, f.ConfirmPassword, "Password and Confirm Password do not match")
}

// ValidateForgotPassword validates whichever step f is.
func ValidateForgotPassword(f ForgotPassword) FieldErrors {
	switch f := f.(type) {
	case *ForgotPasswordStep1:
		return validateStep1(f)
	case *ForgotPasswordStep2:
		return validateStep2(f)
	default:
		return FieldErrors{"step": "unknown step"}
	}
}

func validateStep1(f *ForgotPasswordStep1) FieldErrors { return Validate(f) }

func validateStep2(f *ForgotPasswordStep2) FieldErrors { return Validate(f) }
