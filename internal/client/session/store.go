package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/wekip/internal/client/models"
	"github.com/dmitrijs2005/wekip/internal/client/repositories/kv"
	"github.com/dmitrijs2005/wekip/internal/dbx"
)

// AuthDataKey is the key-value entry holding the credential blob.
const AuthDataKey = "@AuthData"

// Persister is what the session service needs from the device store.
type Persister interface {
	Save(ctx context.Context, c models.Credential) error
	Load(ctx context.Context) (*models.Credential, error)
	Clear(ctx context.Context) error
}

// Store keeps the credential blob as JSON under AuthDataKey.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ctx context.Context, c models.Credential) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return kv.NewSQLiteRepository(tx).Set(ctx, AuthDataKey, data)
	})
}

// Load returns (nil, nil) when nothing is stored.
func (s *Store) Load(ctx context.Context) (*models.Credential, error) {
	data, err := kv.NewSQLiteRepository(s.db).Get(ctx, AuthDataKey)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var c models.Credential
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", AuthDataKey, err)
	}
	return &c, nil
}

func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return kv.NewSQLiteRepository(tx).Delete(ctx, AuthDataKey)
	})
}
