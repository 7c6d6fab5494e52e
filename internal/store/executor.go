// Package store is the data-access layer. Every flow is written against the
// three primitives of Executor; the repositories in this package map raw rows
// onto typed models so that nothing above the store handles untyped results.
package store

import (
	"context"
	"regexp"
	"time"

	"gorm.io/gorm"
)

// Result reports the outcome of a mutating statement.
type Result struct {
	GeneratedID  int64
	RowsAffected int64
}

// Executor runs SQL against the store. Each call is one atomic unit; no
// transaction spans calls.
type Executor interface {
	// FetchOne scans the first row into dest and reports whether a row existed.
	FetchOne(ctx context.Context, dest any, query string, args ...any) (bool, error)
	// FetchMany scans all rows into dest, which must point to a slice.
	FetchMany(ctx context.Context, dest any, query string, args ...any) error
	// Execute runs a mutating statement. Statements ending in "RETURNING id"
	// report the generated id.
	Execute(ctx context.Context, query string, args ...any) (Result, error)
}

var returningID = regexp.MustCompile(`(?i)\bRETURNING\s+id\s*;?\s*$`)

type gormExecutor struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewExecutor returns an Executor over db. A positive timeout bounds every call.
func NewExecutor(db *gorm.DB, timeout time.Duration) Executor {
	return &gormExecutor{db: db, timeout: timeout}
}

func (e *gormExecutor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.timeout)
}

func (e *gormExecutor) FetchOne(ctx context.Context, dest any, query string, args ...any) (bool, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	tx := e.db.WithContext(ctx).Raw(query, args...).Scan(dest)
	if tx.Error != nil {
		return false, translateError(tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (e *gormExecutor) FetchMany(ctx context.Context, dest any, query string, args ...any) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	return translateError(e.db.WithContext(ctx).Raw(query, args...).Scan(dest).Error)
}

func (e *gormExecutor) Execute(ctx context.Context, query string, args ...any) (Result, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	if returningID.MatchString(query) {
		var id int64
		tx := e.db.WithContext(ctx).Raw(query, args...).Scan(&id)
		if tx.Error != nil {
			return Result{}, translateError(tx.Error)
		}
		return Result{GeneratedID: id, RowsAffected: tx.RowsAffected}, nil
	}

	tx := e.db.WithContext(ctx).Exec(query, args...)
	if tx.Error != nil {
		return Result{}, translateError(tx.Error)
	}
	return Result{RowsAffected: tx.RowsAffected}, nil
}
