package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wekip/internal/client/api"
	"github.com/dmitrijs2005/wekip/internal/client/models"
	"github.com/dmitrijs2005/wekip/internal/logging"
)

// ReceiptAPI is the part of api.Client behind a session.
type ReceiptAPI interface {
	RecentReceipts(ctx context.Context, auth api.Auth, limit int) (models.Page[models.GroupedReceipt], error)
	Receipts(ctx context.Context, auth api.Auth, q api.ReceiptQuery) (models.Page[models.GroupedReceipt], error)
	Stats(ctx context.Context, auth api.Auth) (models.Stats, error)
	ShareCode(ctx context.Context, auth api.Auth) (models.ShareCode, error)
}

// ReceiptService reads the signed-in user's receipts.
type ReceiptService interface {
	Recent(ctx context.Context, limit int) ([]models.GroupedReceipt, error)
	List(ctx context.Context, q api.ReceiptQuery) ([]models.GroupedReceipt, error)
	Stats(ctx context.Context) (models.Stats, error)
}

// ShareCodeService issues share codes.
type ShareCodeService interface {
	Generate(ctx context.Context) (models.ShareCode, error)
}

type receiptService struct {
	api     ReceiptAPI
	session Session
	log     logging.Logger
}

func NewReceiptService(a ReceiptAPI, s Session, log logging.Logger) ReceiptService {
	return newReceiptService(a, s, log)
}

func NewShareCodeService(a ReceiptAPI, s Session, log logging.Logger) ShareCodeService {
	return newReceiptService(a, s, log)
}

func newReceiptService(a ReceiptAPI, s Session, log logging.Logger) *receiptService {
	if a == nil || s == nil {
		panic("services: receipt service needs an api and a session")
	}
	return &receiptService{api: a, session: s, log: log.With("service", "receipts")}
}

// auth builds the credentials of a private call. A rejected token signs the
// user out.
func (r *receiptService) auth(ctx context.Context) (api.Auth, error) {
	token := r.session.Token()
	if token == "" {
		return api.Auth{}, ErrSignedOut
	}
	return api.Auth{
		Token: token,
		OnFailure: func() {
			r.log.Warn(ctx, "session rejected by server")
			r.session.SignOut(context.WithoutCancel(ctx))
		},
	}, nil
}

func (r *receiptService) Recent(ctx context.Context, limit int) ([]models.GroupedReceipt, error) {
	auth, err := r.auth(ctx)
	if err != nil {
		return nil, err
	}
	page, err := r.api.RecentReceipts(ctx, auth, limit)
	if err != nil {
		return nil, fmt.Errorf("recent receipts: %w", err)
	}
	return page.Results, nil
}

func (r *receiptService) List(ctx context.Context, q api.ReceiptQuery) ([]models.GroupedReceipt, error) {
	auth, err := r.auth(ctx)
	if err != nil {
		return nil, err
	}
	page, err := r.api.Receipts(ctx, auth, q)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return page.Results, nil
}

func (r *receiptService) Stats(ctx context.Context) (models.Stats, error) {
	auth, err := r.auth(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	stats, err := r.api.Stats(ctx, auth)
	if err != nil {
		return models.Stats{}, fmt.Errorf("stats: %w", err)
	}
	return stats, nil
}

func (r *receiptService) Generate(ctx context.Context) (models.ShareCode, error) {
	auth, err := r.auth(ctx)
	if err != nil {
		return models.ShareCode{}, err
	}
	code, err := r.api.ShareCode(ctx, auth)
	if err != nil {
		return models.ShareCode{}, fmt.Errorf("share code: %w", err)
	}
	r.log.Debug(ctx, "share code issued", "expires_in", code.ExpiresIn)
	return code, nil
}
