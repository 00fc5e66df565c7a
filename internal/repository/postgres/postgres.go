// Package postgres implements the repository interfaces over PostgreSQL.
// It upholds the same invariants as the memory store: sequential IDs come
// from the id_sequences table, per-patient version assignment and the
// double-booking check run inside transactions holding an advisory lock on
// the owning entity, and the relationship lookups are plain foreign-key
// queries so they can never drift from the owning rows.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

type patientRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

type medicalRecordRepository struct {
	db *sqlx.DB
}

type prescriptionRepository struct {
	db *sqlx.DB
}

type staffRepository struct {
	db *sqlx.DB
}

type departmentRepository struct {
	db *sqlx.DB
}

type billRepository struct {
	db *sqlx.DB
}

type inventoryRepository struct {
	db *sqlx.DB
}

// withTx executes fn within a transaction.
func withTx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// nextID issues the next sequential ID for an entity type prefix.
func nextID(ctx context.Context, tx *sqlx.Tx, prefix string) (string, error) {
	var n uint64
	err := tx.GetContext(ctx, &n, `
		INSERT INTO id_sequences (prefix, value) VALUES ($1, 1)
		ON CONFLICT (prefix) DO UPDATE SET value = id_sequences.value + 1
		RETURNING value
	`, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to advance id sequence for %s: %w", prefix, err)
	}
	return fmt.Sprintf("%s%03d", prefix, n), nil
}

// advisoryLock serializes transactions keyed on an owner id.
func advisoryLock(ctx context.Context, tx *sqlx.Tx, key string) error {
	_, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key)
	return err
}

func notFoundOr(err error, resource, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(resource, id)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
