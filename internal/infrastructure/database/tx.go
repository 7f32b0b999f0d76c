package database

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey string

const txKey txContextKey = "tx"

// DB wraps a gorm connection with transaction propagation through context.
// Repositories resolve their handle via Conn so that work enlisted inside
// WithinTransaction shares a single database transaction.
type DB struct {
	db *gorm.DB
}

// NewDB wraps an open gorm connection
func NewDB(db *gorm.DB) *DB {
	return &DB{db: db}
}

// WithinTransaction runs fn inside a database transaction. The transaction
// handle is carried in the context passed to fn; any error from fn rolls
// everything back.
func (d *DB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// Conn returns the transaction handle from the context if present, otherwise
// the base connection.
func (d *DB) Conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return d.db.WithContext(ctx)
}
