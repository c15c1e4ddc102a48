package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tigawane/internal/ports"
)

// dbFromContext prefers the transaction handle placed in context by the
// unit of work; outside a transaction the repository's own handle is used.
func dbFromContext(ctx context.Context, base *gorm.DB) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return base.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}
