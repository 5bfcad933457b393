package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx wraps fn in a database transaction. When db is nil (unit tests with
// in-memory repositories) fn runs directly against a nil tx; the fakes ignore
// the tx argument.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
