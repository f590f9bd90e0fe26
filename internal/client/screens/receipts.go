package screens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/wekip/internal/client/api"
	"github.com/dmitrijs2005/wekip/internal/client/clock"
	"github.com/dmitrijs2005/wekip/internal/client/models"
	"github.com/dmitrijs2005/wekip/internal/client/services"
)

const MsgNoReceiptsInRange = "No receipt records for the selected date range"

// EarliestDate is the first day a receipt range may start on.
var EarliestDate = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)

// Range is an inclusive date range.
type Range struct {
	Start time.Time
	End   time.Time
}

type queryKey struct {
	start, end int64
	search     string
}

// Receipts is the searchable, date filtered receipt list.
type Receipts struct {
	svc   services.ReceiptService
	clock clock.Clock

	defaultRange Range
	rng          Range
	search       string

	fetched             *queryKey
	sections            []models.GroupedReceipt
	refreshingByControl bool
	onRefresh           func(refreshing bool)
}

// NewReceipts starts with the past year as the range.
func NewReceipts(svc services.ReceiptService, clk clock.Clock) *Receipts {
	now := clk.Now().UTC()
	def := Range{Start: now.AddDate(-1, 0, 0), End: now}
	return &Receipts{svc: svc, clock: clk, defaultRange: def, rng: def}
}

func (r *Receipts) Range() Range   { return r.rng }
func (r *Receipts) Search() string { return r.search }

func (r *Receipts) SetSearch(search string) { r.search = search }

// SetRange applies a picked range. Days are clamped first: the start day to
// EarliestDate..today, the end day to start..today. The start then becomes
// 00:00:00 UTC and the end 23:59:59 UTC of their days.
func (r *Receipts) SetRange(start, end time.Time) {
	today := day(r.clock.Now())

	startDay := clampDay(day(start), day(EarliestDate), today)
	endDay := clampDay(day(end), startDay, today)

	r.rng = Range{
		Start: startDay,
		End:   endDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second),
	}
}

// ResetRange goes back to the past year.
func (r *Receipts) ResetRange() { r.rng = r.defaultRange }

func (r *Receipts) key() queryKey {
	return queryKey{start: r.rng.Start.UnixNano(), end: r.rng.End.UnixNano(), search: r.search}
}

// Load fetches the list unless the current range and search were already
// fetched.
func (r *Receipts) Load(ctx context.Context) error {
	key := r.key()
	if r.fetched != nil && *r.fetched == key {
		return nil
	}
	return r.fetch(ctx, key)
}

// Refresh always fetches. byControl marks a user initiated refresh, the only
// kind that shows a refresh indicator.
func (r *Receipts) Refresh(ctx context.Context, byControl bool) error {
	r.setRefreshing(byControl)
	defer r.setRefreshing(false)
	return r.fetch(ctx, r.key())
}

func (r *Receipts) RefreshingByControl() bool { return r.refreshingByControl }

// OnRefresh registers fn to be told when the refresh indicator turns on and
// off.
func (r *Receipts) OnRefresh(fn func(refreshing bool)) { r.onRefresh = fn }

func (r *Receipts) setRefreshing(on bool) {
	if r.refreshingByControl == on {
		return
	}
	r.refreshingByControl = on
	if r.onRefresh != nil {
		r.onRefresh(on)
	}
}

func (r *Receipts) fetch(ctx context.Context, key queryKey) error {
	sections, err := r.svc.List(ctx, api.ReceiptQuery{
		Start:  r.rng.Start,
		End:    r.rng.End,
		Search: r.search,
	})
	if err != nil {
		return err
	}
	r.sections = sections
	r.fetched = &key
	return nil
}

// Sections are the fetched receipts grouped by day, in server order.
func (r *Receipts) Sections() []models.GroupedReceipt { return r.sections }

// EmptyMessage is shown instead of an empty list.
func (r *Receipts) EmptyMessage() string {
	if r.rng.Start.Equal(r.defaultRange.Start) && r.rng.End.Equal(r.defaultRange.End) {
		return MsgNoReceiptsPastYear
	}
	return MsgNoReceiptsInRange
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clampDay(t, lo, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}
