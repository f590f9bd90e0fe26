// Package device registers this installation for push notifications.
//
// The token is collected and kept for the lifetime of the installation but
// nothing in the client consumes it yet.
package device

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/wekip/internal/client/repositories/kv"
	"github.com/dmitrijs2005/wekip/internal/dbx"
	"github.com/dmitrijs2005/wekip/internal/logging"
)

// PushTokenKey is the key-value entry holding the device token.
const PushTokenKey = "@PushToken"

type Registrar struct {
	db  *sql.DB
	log logging.Logger

	newID func() string
}

func NewRegistrar(db *sql.DB, log logging.Logger) *Registrar {
	return &Registrar{db: db, log: log.With("component", "device"), newID: uuid.NewString}
}

// Register returns the device push token, creating it on first use.
func (r *Registrar) Register(ctx context.Context) (string, error) {
	var token string

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)

		existing, err := repo.Get(ctx, PushTokenKey)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			token = string(existing)
			return nil
		}

		token = fmt.Sprintf("ExponentPushToken[%s]", r.newID())
		return repo.Set(ctx, PushTokenKey, []byte(token))
	})
	if err != nil {
		return "", fmt.Errorf("register device: %w", err)
	}

	r.log.Debug(ctx, "push token", "token", token)
	return token, nil
}
