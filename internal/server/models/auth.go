package models

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  Owner  `json:"user"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	VerificationKey string `json:"verification_key"`
}

// VerifyEmailRequest carries the emailed code in Token. Group names the
// account kind, only "user" exists.
type VerifyEmailRequest struct {
	Token string `json:"token"`
	Group string `json:"group"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type ChangePasswordRequest struct {
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

type Message struct {
	Message string `json:"message"`
}
