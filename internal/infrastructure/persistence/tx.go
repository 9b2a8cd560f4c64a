package persistence

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

// withTx stores the transaction handle in the context so every repository
// participating in the unit of work joins the same transaction.
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// dbFor resolves the database handle for the call: the ambient transaction
// if one is on the context, the repository's own connection otherwise.
func dbFor(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

// GormTransactionManager implements shared.TransactionManager by carrying a
// gorm transaction on the context.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a transaction manager over the connection
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// Do runs fn inside a database transaction. Repositories called with the
// derived context operate on that transaction; an error from fn rolls
// everything back.
func (m *GormTransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		// already inside a unit of work, join it
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
