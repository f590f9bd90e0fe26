package users

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/wekip/internal/common"
)

// InMemoryRepository keeps users in process memory. Returned users are copies.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create assigns an id and stores user. Email and username must both be unused.
func (r *InMemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[emailKey(user.Email)]; ok {
		return nil, common.ErrorAlreadyExists
	}
	for _, u := range r.byID {
		if strings.EqualFold(u.Username, user.Username) {
			return nil, common.ErrorAlreadyExists
		}
	}

	u := *user
	u.ID = uuid.NewString()
	r.byID[u.ID] = u
	r.byEmail[emailKey(u.Email)] = u.ID
	return &u, nil
}

func (r *InMemoryRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *InMemoryRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *InMemoryRepository) MarkVerified(ctx context.Context, id string) error {
	return r.modify(id, func(u *User) { u.Verified = true })
}

func (r *InMemoryRepository) SetPasswordHash(ctx context.Context, id string, hash []byte) error {
	return r.modify(id, func(u *User) { u.PasswordHash = hash })
}

func (r *InMemoryRepository) modify(id string, fn func(u *User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	fn(&u)
	r.byID[id] = u
	return nil
}
