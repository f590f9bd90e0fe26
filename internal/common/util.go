package common

import (
	"crypto/rand"
	"math/big"
)

// Digits is the alphabet of one-time codes and share codes.
const Digits = "0123456789"

// RandomCode draws n characters from alphabet using crypto/rand.
func RandomCode(n int, alphabet string) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
