package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/wekip/internal/client/api"
	"github.com/dmitrijs2005/wekip/internal/client/models"
	"github.com/dmitrijs2005/wekip/internal/logging"
)

func TestReceiptService_RequiresSession(t *testing.T) {
	a := &fakeReceiptAPI{}
	svc := NewReceiptService(a, &fakeSession{}, logging.Discard())

	_, err := svc.Recent(context.Background(), 6)
	assert.ErrorIs(t, err, ErrSignedOut)

	_, err = svc.Stats(context.Background())
	assert.ErrorIs(t, err, ErrSignedOut)

	assert.Zero(t, a.calls)
}

func TestReceiptService_Recent(t *testing.T) {
	groups := []models.GroupedReceipt{{Date: "2024-03-01"}}
	a := &fakeReceiptAPI{page: models.Page[models.GroupedReceipt]{Results: groups}}
	svc := NewReceiptService(a, &fakeSession{token: "tok"}, logging.Discard())

	got, err := svc.Recent(context.Background(), 6)

	require.NoError(t, err)
	assert.Equal(t, groups, got)
	assert.Equal(t, 6, a.lastLimit)
	assert.Equal(t, "tok", a.lastAuth.Token)
}

func TestReceiptService_List(t *testing.T) {
	a := &fakeReceiptAPI{}
	svc := NewReceiptService(a, &fakeSession{token: "tok"}, logging.Discard())

	q := api.ReceiptQuery{Start: time.Unix(0, 0), End: time.Unix(100, 0), Search: "cafe"}
	_, err := svc.List(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, q, a.lastQuery)
}

func TestReceiptService_UnauthorizedSignsOut(t *testing.T) {
	a := &fakeReceiptAPI{unauthorized: true}
	s := &fakeSession{token: "stale"}
	svc := NewReceiptService(a, s, logging.Discard())

	_, err := svc.Stats(context.Background())

	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, 1, s.signOuts)
}

func TestReceiptService_OtherErrorsKeepSession(t *testing.T) {
	boom := errors.New("boom")
	s := &fakeSession{token: "tok"}
	svc := NewReceiptService(&fakeReceiptAPI{err: boom}, s, logging.Discard())

	_, err := svc.List(context.Background(), api.ReceiptQuery{})

	assert.ErrorIs(t, err, boom)
	assert.Zero(t, s.signOuts)
}

func TestShareCodeService_Generate(t *testing.T) {
	a := &fakeReceiptAPI{code: models.ShareCode{Code: "482913", ExpiresIn: 15 * time.Minute}}
	svc := NewShareCodeService(a, &fakeSession{token: "tok"}, logging.Discard())

	code, err := svc.Generate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "482913", code.Code)
}
