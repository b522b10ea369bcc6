package database

import (
	"context"

	"gorm.io/gorm"
)

// Context keys for carrying the active transaction handle down a call chain
type contextKey int

const (
	txKey contextKey = iota
)

// WithTx binds the active transaction handle to the context. Repositories
// resolve their data handle from here so every persistence call inside one
// call chain shares the same transaction.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// TxFromContext returns the transaction handle bound to the context, if any
func TxFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	return tx, ok
}

// Resolve returns the transaction handle from the context when a transaction
// is active, and the base connection otherwise. This is the single point
// where the transaction-vs-plain client selection happens.
func Resolve(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return base
}
