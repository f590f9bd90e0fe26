package users

import "time"

type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash []byte
	Verified     bool
	CreatedAt    time.Time
}

// otp is a one-time code waiting to be used.
type otp struct {
	userID  string
	code    string
	expires time.Time
}
