// Package models holds the records exchanged with the Wekip API and the
// credential blob kept on the device.
package models

// Credential is the persisted session blob. Its presence means the user is
// signed in.
type Credential struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type User struct {
	ID       int64  `json:"id,omitempty"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// AuthResponse is the body of a successful login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Credential turns a login response into the session blob.
func (r AuthResponse) Credential() Credential {
	return Credential{Token: r.Token, Email: r.User.Email, Username: r.User.Username}
}

// RegisterResponse carries the key the verification screen hands back.
type RegisterResponse struct {
	VerificationKey string `json:"verification_key"`
}

// VerificationPayload travels inside the verify-email route.
type VerificationPayload struct {
	Email           string `json:"email"`
	VerificationKey string `json:"verification_key,omitempty"`
}

// Message is the generic {"message": "..."} body of the API.
type Message struct {
	Message string `json:"message"`
}
