package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegments(t *testing.T) {
	assert.Equal(t, []string{"(auth)", "login"}, Segments(Login))
	assert.Equal(t, []string{"(tabs)"}, Segments(Home))
	assert.Equal(t, []string{}, Segments("/"))
}

func TestInAuthGroup(t *testing.T) {
	assert.True(t, InAuthGroup(Segments(Register)))
	assert.True(t, InAuthGroup(Segments(VerifyEmail("abc"))))
	assert.False(t, InAuthGroup(Segments(Receipts)))
	assert.False(t, InAuthGroup(nil))
}

func TestVerifyEmailPayload(t *testing.T) {
	p, ok := VerifyEmailPayload(VerifyEmail("eyJ9"))
	assert.True(t, ok)
	assert.Equal(t, "eyJ9", p)

	_, ok = VerifyEmailPayload(VerifyEmail(""))
	assert.False(t, ok)

	_, ok = VerifyEmailPayload(Login)
	assert.False(t, ok)
}
