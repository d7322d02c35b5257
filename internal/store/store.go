// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the PostgreSQL persistence layer for templates,
// brands and projects. Queries with a variable shape are built with squirrel;
// everything runs through database/sql so the stores work against pgx in
// production and sqlmock in tests.
package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// psql is the statement builder used by every store. PostgreSQL expects
// numbered placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Scope restricts store operations to the rows owned by one user. The zero
// Scope is anonymous: it sees only rows without an owner and creates rows
// without one.
type Scope struct {
	UserID string
}

// UserScope returns a Scope for the given user id.
func UserScope(userID string) Scope {
	return Scope{UserID: userID}
}

// Anonymous reports whether the scope belongs to no user.
func (s Scope) Anonymous() bool {
	return s.UserID == ""
}

// where merges the ownership condition into eq. Anonymous scopes match
// user_id IS NULL.
func (s Scope) where(eq sq.Eq) sq.Eq {
	out := sq.Eq{}
	for k, v := range eq {
		out[k] = v
	}
	if s.Anonymous() {
		out["user_id"] = nil
	} else {
		out["user_id"] = s.UserID
	}
	return out
}

// owner returns the value stored in user_id for rows created in this scope.
func (s Scope) owner() *string {
	if s.Anonymous() {
		return nil
	}
	id := s.UserID
	return &id
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on error.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
