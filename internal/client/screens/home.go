package screens

import (
	"context"

	"github.com/dmitrijs2005/wekip/internal/client/models"
	"github.com/dmitrijs2005/wekip/internal/client/services"
)

const MsgNoReceiptsPastYear = "No receipt records for the past year"

// Home is the dashboard: statistics and the most recent receipts.
type Home struct {
	receipts services.ReceiptService
	limit    int

	stats  models.Stats
	recent []models.GroupedReceipt
	loaded bool
}

func NewHome(receipts services.ReceiptService, limit int) *Home {
	return &Home{receipts: receipts, limit: limit}
}

// Load fetches the dashboard once. Use Refresh to fetch again.
func (h *Home) Load(ctx context.Context) error {
	if h.loaded {
		return nil
	}
	return h.Refresh(ctx)
}

// Refresh reloads the recent receipts, then the statistics, stopping at the
// first failure.
func (h *Home) Refresh(ctx context.Context) error {
	recent, err := h.receipts.Recent(ctx, h.limit)
	if err != nil {
		return err
	}
	h.recent = recent

	stats, err := h.receipts.Stats(ctx)
	if err != nil {
		return err
	}
	h.stats = stats
	h.loaded = true
	return nil
}

func (h *Home) Stats() models.Stats { return h.stats }

func (h *Home) Recent() []models.GroupedReceipt { return h.recent }

// EmptyMessage is shown instead of an empty recent list.
func (h *Home) EmptyMessage() string { return MsgNoReceiptsPastYear }
