package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/wekip/internal/logging"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestGateway(t *testing.T, h http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewGateway(srv.URL, 5*time.Second, logging.Discard())
}

func TestGateway_PublicDecodesBody(t *testing.T) {
	var gotBody map[string]string
	var gotAuth string
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})

	var out struct {
		Message string `json:"message"`
	}
	err := gw.Public(context.Background(), Request{
		Method: http.MethodPost,
		URL:    "/auth/get_otp",
		Body:   map[string]string{"email": "a@b.co"},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "ok", out.Message)
	assert.Equal(t, "a@b.co", gotBody["email"])
	assert.Empty(t, gotAuth)
}

func TestGateway_ErrorMessage(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Email not verified"})
	})

	err := gw.Public(context.Background(), Request{Method: http.MethodPost, URL: "/auth/user/login"}, nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Email not verified", apiErr.Message)
	assert.Equal(t, "Email not verified", Message(err))
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestGateway_ErrorWithoutMessage(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := gw.Public(context.Background(), Request{Method: http.MethodGet, URL: "/x"}, nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}

func TestGateway_PrivateSendsBearerAndQuery(t *testing.T) {
	var gotAuth, gotLimit string
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotLimit = r.URL.Query().Get("limit")
		writeJSON(w, http.StatusOK, map[string]any{"results": []any{}})
	})

	failures := 0
	err := gw.Private(context.Background(),
		Request{Method: http.MethodGet, URL: "/receipt", Query: map[string]string{"limit": "6"}},
		"tok", func() { failures++ }, nil)

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "6", gotLimit)
	assert.Zero(t, failures)
}

func TestGateway_PrivateUnauthorizedCallsBackOnce(t *testing.T) {
	calls := 0
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
	})

	failures := 0
	err := gw.Private(context.Background(), Request{Method: http.MethodGet, URL: "/receipt/stats"},
		"stale", func() { failures++ }, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, 1, failures)
	assert.Equal(t, 1, calls, "no retries")
}

func TestGateway_PublicUnauthorizedHasNoCallback(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
	})

	err := gw.Public(context.Background(), Request{Method: http.MethodPost, URL: "/auth/user/login"}, nil)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestGateway_NoRetryOnServerError(t *testing.T) {
	calls := 0
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	err := gw.Public(context.Background(), Request{Method: http.MethodGet, URL: "/receipt/stats"}, nil)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestGateway_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	gw := NewGateway(url, time.Second, logging.Discard())
	err := gw.Public(context.Background(), Request{Method: http.MethodGet, URL: "/receipt"}, nil)

	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, "Unable to reach the server", Message(err))
}

func TestGateway_RejectsUnknownMethod(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not be sent")
	})

	err := gw.Public(context.Background(), Request{Method: "TRACE", URL: "/"}, nil)
	assert.Error(t, err)
}
