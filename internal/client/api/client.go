package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/wekip/internal/client/models"
)

// Auth carries what a private call needs from the session.
type Auth struct {
	Token     string
	OnFailure func()
}

// ReceiptQuery filters the receipt list.
type ReceiptQuery struct {
	Start  time.Time
	End    time.Time
	Search string
}

// Client exposes the Wekip endpoints.
type Client struct {
	gw *Gateway
}

func NewClient(gw *Gateway) *Client {
	return &Client{gw: gw}
}

func (c *Client) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.gw.Public(ctx, Request{
		Method: http.MethodPost,
		URL:    "/auth/user/login",
		Body:   map[string]string{"email": email, "password": password},
	}, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, email, username, password string) (models.RegisterResponse, error) {
	var out models.RegisterResponse
	err := c.gw.Public(ctx, Request{
		Method: http.MethodPost,
		URL:    "/auth/user/register",
		Body:   map[string]string{"email": email, "username": username, "password": password},
	}, &out)
	return out, err
}

// VerifyEmail confirms a user email with the emailed one-time code.
func (c *Client) VerifyEmail(ctx context.Context, otp string) error {
	return c.gw.Public(ctx, Request{
		Method: http.MethodPost,
		URL:    "/auth/verify-email",
		Body:   map[string]string{"token": otp, "group": "user"},
	}, nil)
}

// ResendCode asks for a new email verification code.
func (c *Client) ResendCode(ctx context.Context, email string) error {
	return c.gw.Public(ctx, Request{
		Method: http.MethodPost,
		URL:    "/auth/get_otp",
		Body:   map[string]string{"email": email},
	}, nil)
}

// ForgotPassword sends, or sends again, a password reset code.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.gw.Public(ctx, Request{
		Method: http.MethodPost,
		URL:    "/auth/forgot-password",
		Body:   map[string]string{"email": email},
	}, nil)
}

func (c *Client) ChangePassword(ctx context.Context, email, otp, password string) error {
	return c.gw.Public(ctx, Request{
		Method: http.MethodPost,
		URL:    "/auth/change-password",
		Body:   map[string]string{"email": email, "otp": otp, "password": password},
	}, nil)
}

func (c *Client) RecentReceipts(ctx context.Context, auth Auth, limit int) (models.Page[models.GroupedReceipt], error) {
	var out models.Page[models.GroupedReceipt]
	err := c.gw.Private(ctx, Request{
		Method: http.MethodGet,
		URL:    "/receipt",
		Query:  map[string]string{"limit": strconv.Itoa(limit)},
	}, auth.Token, auth.OnFailure, &out)
	return out, err
}

func (c *Client) Receipts(ctx context.Context, auth Auth, q ReceiptQuery) (models.Page[models.GroupedReceipt], error) {
	var out models.Page[models.GroupedReceipt]
	err := c.gw.Private(ctx, Request{
		Method: http.MethodGet,
		URL:    "/receipt",
		Query: map[string]string{
			"start_date": q.Start.UTC().Format(time.RFC3339),
			"end_date":   q.End.UTC().Format(time.RFC3339),
			"search":     q.Search,
		},
	}, auth.Token, auth.OnFailure, &out)
	return out, err
}

func (c *Client) Stats(ctx context.Context, auth Auth) (models.Stats, error) {
	var out models.Stats
	err := c.gw.Private(ctx, Request{Method: http.MethodGet, URL: "/receipt/stats"}, auth.Token, auth.OnFailure, &out)
	return out, err
}

// ShareCode generates a fresh share code.
func (c *Client) ShareCode(ctx context.Context, auth Auth) (models.ShareCode, error) {
	var out models.ShareCode
	err := c.gw.Private(ctx, Request{Method: http.MethodPost, URL: "/receipt/share-code"}, auth.Token, auth.OnFailure, &out)
	return out, err
}
