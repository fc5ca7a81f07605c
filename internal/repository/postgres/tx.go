package postgres

import (
	"context"

	"gorm.io/gorm"
)

// txKey is the context key under which an open transaction handle is
// carried to repositories participating in it.
type txKey struct{}

// WithTransaction runs fn inside a single database transaction. The
// transaction handle travels in the context: every repository call made
// with the derived context joins the same transaction. If fn returns an
// error (or panics) everything rolls back; otherwise it commits.
//
// Re-entrant calls detect the outer transaction and simply run fn in it.
// There are no nested transactions or savepoints: the outermost caller
// owns commit and rollback.
func (d *DB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return d.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func txFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txKey{}).(*gorm.DB)
	return tx
}

// handle returns the transaction bound to ctx when present, falling back
// to the root connection pool.
func (d *DB) handle(ctx context.Context) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return d.gorm.WithContext(ctx)
}
