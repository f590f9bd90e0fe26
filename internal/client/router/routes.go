// Package router models the client's navigation: named routes grouped into an
// unauthenticated "(auth)" area and an authenticated "(tabs)" area, a route
// stack, and the guard that keeps the current route consistent with the
// session.
package router

import "strings"

const (
	AuthGroup = "(auth)"
	TabsGroup = "(tabs)"
)

const (
	Login          = "/(auth)/login"
	Register       = "/(auth)/register"
	ForgotPassword = "/(auth)/forgot-password"
	Home           = "/(tabs)/"
	Receipts       = "/(tabs)/receipts"
	ShareCode      = "/(tabs)/create"

	verifyEmailPrefix = "/(auth)/verify-email/"
)

// VerifyEmail builds the verification route carrying an encoded payload.
func VerifyEmail(payload string) string {
	return verifyEmailPrefix + payload
}

// VerifyEmailPayload extracts the payload segment of a verification route.
func VerifyEmailPayload(route string) (string, bool) {
	payload, ok := strings.CutPrefix(route, verifyEmailPrefix)
	if !ok || payload == "" {
		return "", false
	}
	return payload, true
}

// Segments splits a route into its non-empty path segments.
func Segments(route string) []string {
	parts := strings.Split(route, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// InAuthGroup reports whether the first segment is the unauthenticated area.
func InAuthGroup(segments []string) bool {
	return len(segments) > 0 && segments[0] == AuthGroup
}
