package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dmitrijs2005/wekip/internal/logging"
)

// Request describes one API call. URL is relative to the gateway base URL.
type Request struct {
	Method string
	URL    string
	Body   any
	Query  map[string]string
}

var methods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPatch:  true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

type authFailureKey struct{}

type Gateway struct {
	http *resty.Client
	log  logging.Logger
}

func NewGateway(baseURL string, timeout time.Duration, log logging.Logger) *Gateway {
	g := &Gateway{log: log.With("component", "api")}

	g.http = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetDisableWarn(true).
		SetLogger(restyLogger{log: g.log}).
		SetHeader("Accept", "application/json").
		OnAfterResponse(g.afterResponse)

	return g
}

// afterResponse fires the auth failure callback carried by private requests.
func (g *Gateway) afterResponse(_ *resty.Client, resp *resty.Response) error {
	ctx := resp.Request.Context()

	g.log.Debug(ctx, "response",
		"method", resp.Request.Method,
		"url", resp.Request.URL,
		"status", resp.StatusCode(),
		"elapsed", resp.Time(),
	)

	if resp.StatusCode() != http.StatusUnauthorized {
		return nil
	}
	if onAuthFailure, ok := ctx.Value(authFailureKey{}).(func()); ok && onAuthFailure != nil {
		g.log.Warn(ctx, "request unauthorized, ending session", "url", resp.Request.URL)
		onAuthFailure()
	}
	return nil
}

// Public sends req without credentials and decodes a 2xx body into out,
// which may be nil.
func (g *Gateway) Public(ctx context.Context, req Request, out any) error {
	return g.do(ctx, g.http.R(), req, out)
}

// Private sends req with a bearer token. onAuthFailure runs once if the server
// rejects the token.
func (g *Gateway) Private(ctx context.Context, req Request, token string, onAuthFailure func(), out any) error {
	ctx = context.WithValue(ctx, authFailureKey{}, onAuthFailure)
	return g.do(ctx, g.http.R().SetAuthToken(token), req, out)
}

func (g *Gateway) do(ctx context.Context, r *resty.Request, req Request, out any) error {
	if !methods[req.Method] {
		return fmt.Errorf("api: unsupported method %q", req.Method)
	}

	var body struct {
		Message string `json:"message"`
	}

	r = r.SetContext(ctx).SetError(&body)
	if req.Body != nil {
		r = r.SetBody(req.Body)
	}
	if len(req.Query) > 0 {
		r = r.SetQueryParams(req.Query)
	}
	if out != nil {
		r = r.SetResult(out)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.IsError() {
		msg := body.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return &Error{Status: resp.StatusCode(), Message: msg}
	}
	return nil
}
