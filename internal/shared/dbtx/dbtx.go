// Package dbtx lets gorm repositories join a database/sql transaction that
// was opened by a service.
package dbtx

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Bind returns a gorm session whose statements run on tx. A nil tx returns db
// unchanged.
func Bind(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	session := db.Session(&gorm.Session{NewDB: true, SkipDefaultTransaction: true})
	session.Statement.ConnPool = tx
	return session
}

// Conn is the per-call entry point used by repositories.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	return Bind(db, tx).WithContext(ctx)
}
