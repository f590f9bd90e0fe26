package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/wekip/internal/logging"
	"github.com/dmitrijs2005/wekip/internal/server/config"
	"github.com/dmitrijs2005/wekip/internal/server/models"
	"github.com/dmitrijs2005/wekip/internal/server/receipts"
	"github.com/dmitrijs2005/wekip/internal/server/users"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.FixedOTP = "123456"

	log := logging.Discard()
	h := NewHandler(users.NewService(users.NewInMemoryRepository(), cfg, log), receipts.NewStore(cfg.ShareCodeTTL), log)
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body, out any) int {
	t.Helper()

	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func signUp(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	var reg models.RegisterResponse
	code := call(t, srv, http.MethodPost, "/auth/user/register", "", models.RegisterRequest{
		Email: "ann@example.com", Username: "ann", Password: "password1",
	}, &reg)
	require.Equal(t, http.StatusCreated, code)
	require.NotEmpty(t, reg.VerificationKey)

	var msg models.Message
	code = call(t, srv, http.MethodPost, "/auth/user/login", "", models.LoginRequest{
		Email: "ann@example.com", Password: "password1",
	}, &msg)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "Email not verified", msg.Message)

	code = call(t, srv, http.MethodPost, "/auth/verify-email", "", models.VerifyEmailRequest{Token: "123456", Group: "user"}, nil)
	require.Equal(t, http.StatusOK, code)

	var login models.LoginResponse
	code = call(t, srv, http.MethodPost, "/auth/user/login", "", models.LoginRequest{
		Email: "ann@example.com", Password: "password1",
	}, &login)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ann", login.User.Username)
	return login.Token
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)
	token := signUp(t, srv)
	assert.NotEmpty(t, token)

	var msg models.Message
	code := call(t, srv, http.MethodPost, "/auth/user/register", "", models.RegisterRequest{
		Email: "ann@example.com", Username: "other", Password: "password1",
	}, &msg)
	assert.Equal(t, http.StatusConflict, code)

	code = call(t, srv, http.MethodPost, "/auth/get_otp", "", models.EmailRequest{Email: "ann@example.com"}, &msg)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email already verified", msg.Message)

	code = call(t, srv, http.MethodPost, "/auth/forgot-password", "", models.EmailRequest{Email: "nobody@example.com"}, &msg)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", msg.Message)

	code = call(t, srv, http.MethodPost, "/auth/forgot-password", "", models.EmailRequest{Email: "ann@example.com"}, nil)
	require.Equal(t, http.StatusOK, code)

	code = call(t, srv, http.MethodPost, "/auth/change-password", "", models.ChangePasswordRequest{
		Email: "ann@example.com", OTP: "123456", Password: "newpassword",
	}, nil)
	require.Equal(t, http.StatusOK, code)

	code = call(t, srv, http.MethodPost, "/auth/user/login", "", models.LoginRequest{
		Email: "ann@example.com", Password: "password1",
	}, &msg)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid email or password", msg.Message)
}

func TestVerifyEmail_UnknownGroup(t *testing.T) {
	srv := newTestServer(t)

	var msg models.Message
	code := call(t, srv, http.MethodPost, "/auth/verify-email", "", models.VerifyEmailRequest{Token: "123456", Group: "business"}, &msg)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Unknown group", msg.Message)
}

func TestPrivateRoutes_RequireToken(t *testing.T) {
	srv := newTestServer(t)

	var msg models.Message
	assert.Equal(t, http.StatusUnauthorized, call(t, srv, http.MethodGet, "/receipt/stats", "", nil, &msg))
	assert.Equal(t, "Missing token", msg.Message)
	assert.Equal(t, http.StatusUnauthorized, call(t, srv, http.MethodGet, "/receipt?limit=6", "garbage", nil, &msg))
	assert.Equal(t, "Invalid token", msg.Message)
}

func TestReceipts(t *testing.T) {
	srv := newTestServer(t)
	token := signUp(t, srv)

	var recent models.Page[models.GroupedReceipt]
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/receipt?limit=2", token, nil, &recent))
	n := 0
	for _, g := range recent.Results {
		n += len(g.Receipts)
	}
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, recent.Limit)

	var stats models.Stats
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/receipt/stats", token, nil, &stats))
	assert.Positive(t, stats.Receipts)
	assert.Positive(t, stats.Businesses)

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -2)
	path := "/receipt?start_date=" + start.Format(time.RFC3339) + "&end_date=" + end.Format(time.RFC3339) + "&search=spar"
	var ranged models.Page[models.GroupedReceipt]
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, path, token, nil, &ranged))
	for _, g := range ranged.Results {
		for _, r := range g.Receipts {
			assert.Equal(t, "Spar", r.Business.Name)
		}
	}

	var msg models.Message
	assert.Equal(t, http.StatusBadRequest, call(t, srv, http.MethodGet, "/receipt?start_date=yesterday", token, nil, &msg))
	assert.Equal(t, http.StatusBadRequest, call(t, srv, http.MethodGet, "/receipt?limit=-1", token, nil, &msg))
}

func TestShareCode(t *testing.T) {
	srv := newTestServer(t)
	token := signUp(t, srv)

	var sc models.ShareCode
	require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/receipt/share-code", token, nil, &sc))
	assert.Len(t, sc.Code, 6)
	assert.Equal(t, int64(900), sc.ExpiresIn)

	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/receipt/share-code/"+sc.Code, token, nil, nil))
	assert.Equal(t, http.StatusNotFound, call(t, srv, http.MethodGet, "/receipt/share-code/ZZZZZZ", token, nil, nil))
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t)

	var msg models.Message
	assert.Equal(t, http.StatusNotFound, call(t, srv, http.MethodGet, "/nowhere", "", nil, &msg))
	assert.Equal(t, "Not found", msg.Message)
}
