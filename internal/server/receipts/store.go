// Package receipts keeps per-user receipts and share codes of the development
// API server in memory.
package receipts

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/wekip/internal/common"
	"github.com/dmitrijs2005/wekip/internal/server/models"
)

// Query filters a receipt listing. Zero values disable a filter.
type Query struct {
	Limit  int
	Start  time.Time
	End    time.Time
	Search string
}

type shareCode struct {
	userID  string
	expires time.Time
}

var businesses = []models.Business{
	{ID: 1, Name: "Shoprite"},
	{ID: 2, Name: "Chicken Republic"},
	{ID: 3, Name: "Filmhouse Cinemas"},
	{ID: 4, Name: "TotalEnergies"},
	{ID: 5, Name: "Spar"},
}

// seedPlan places receipts at (days ago, business index, hour of day).
var seedPlan = []struct {
	daysAgo  int
	business int
	hour     int
}{
	{0, 0, 9}, {1, 1, 13}, {1, 4, 18}, {3, 2, 20}, {8, 3, 7}, {15, 0, 11},
	{30, 1, 12}, {45, 4, 16}, {60, 2, 21}, {90, 0, 10}, {150, 3, 8}, {280, 4, 15},
}

type Store struct {
	now func() time.Time
	ttl time.Duration

	mu       sync.Mutex
	nextID   int64
	receipts map[string][]models.Receipt
	codes    map[string]shareCode
}

// NewStore creates an empty store issuing share codes valid for ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		now:      time.Now,
		ttl:      ttl,
		receipts: make(map[string][]models.Receipt),
		codes:    make(map[string]shareCode),
	}
}

// seed gives a new user a year of sample receipts. Callers hold s.mu.
func (s *Store) seed(userID string, owner models.Owner) []models.Receipt {
	if rs, ok := s.receipts[userID]; ok {
		return rs
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	rs := make([]models.Receipt, 0, len(seedPlan))
	for _, p := range seedPlan {
		s.nextID++
		created := today.AddDate(0, 0, -p.daysAgo).Add(time.Duration(p.hour) * time.Hour)
		rs = append(rs, models.Receipt{
			ID:        s.nextID,
			FilePath:  fmt.Sprintf("receipts/%d.pdf", s.nextID),
			User:      owner,
			Business:  businesses[p.business],
			CreatedAt: created,
		})
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].CreatedAt.After(rs[j].CreatedAt) })
	s.receipts[userID] = rs
	return rs
}

// List returns the matching receipts of a user grouped by day, newest first.
func (s *Store) List(ctx context.Context, userID string, owner models.Owner, q Query) []models.GroupedReceipt {
	s.mu.Lock()
	all := s.seed(userID, owner)
	s.mu.Unlock()

	search := strings.ToLower(strings.TrimSpace(q.Search))

	var groups []models.GroupedReceipt
	count := 0
	for _, r := range all {
		if q.Limit > 0 && count == q.Limit {
			break
		}
		if !q.Start.IsZero() && r.CreatedAt.Before(q.Start) {
			continue
		}
		if !q.End.IsZero() && r.CreatedAt.After(q.End) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(r.Business.Name), search) {
			continue
		}

		date := r.CreatedAt.UTC().Format(time.DateOnly)
		if n := len(groups); n == 0 || groups[n-1].Date != date {
			groups = append(groups, models.GroupedReceipt{Date: date})
		}
		g := &groups[len(groups)-1]
		g.Receipts = append(g.Receipts, r)
		count++
	}

	if groups == nil {
		groups = []models.GroupedReceipt{}
	}
	return groups
}

// Stats counts all receipts of a user and the businesses they came from.
func (s *Store) Stats(ctx context.Context, userID string, owner models.Owner) models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.seed(userID, owner)
	seen := make(map[int64]struct{})
	for _, r := range all {
		seen[r.Business.ID] = struct{}{}
	}
	return models.Stats{Receipts: len(all), Businesses: len(seen)}
}

// NewShareCode issues a fresh code for userID. Expired codes are dropped.
func (s *Store) NewShareCode(ctx context.Context, userID string) (models.ShareCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for code, sc := range s.codes {
		if !now.Before(sc.expires) {
			delete(s.codes, code)
		}
	}

	for {
		code, err := common.RandomCode(6, common.Digits)
		if err != nil {
			return models.ShareCode{}, err
		}
		if _, taken := s.codes[code]; taken {
			continue
		}
		s.codes[code] = shareCode{userID: userID, expires: now.Add(s.ttl)}
		return models.ShareCode{Code: code, ExpiresIn: int64(s.ttl / time.Second)}, nil
	}
}

// Owner resolves a live share code to the user it was issued for.
func (s *Store) Owner(ctx context.Context, code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.codes[code]
	if !ok || !s.now().Before(sc.expires) {
		return "", common.ErrorNotFound
	}
	return sc.userID, nil
}
