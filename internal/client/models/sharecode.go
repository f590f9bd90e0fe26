package models

import (
	"encoding/json"
	"time"
)

// DefaultShareCodeTTL is used when the server omits expires_in.
const DefaultShareCodeTTL = 15 * time.Minute

// ShareCode lets another party attach a receipt to the user's account.
type ShareCode struct {
	Code      string
	ExpiresIn time.Duration
}

type shareCodeJSON struct {
	Code      string `json:"code"`
	ExpiresIn int64  `json:"expires_in,omitempty"`
}

func (s *ShareCode) UnmarshalJSON(b []byte) error {
	var raw shareCodeJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s.Code = raw.Code
	s.ExpiresIn = time.Duration(raw.ExpiresIn) * time.Second
	if s.ExpiresIn <= 0 {
		s.ExpiresIn = DefaultShareCodeTTL
	}
	return nil
}

func (s ShareCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(shareCodeJSON{Code: s.Code, ExpiresIn: int64(s.ExpiresIn / time.Second)})
}
