package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/idgen"
)

func NewBillRepository(db *sqlx.DB) repository.BillRepository {
	return &billRepository{db: db}
}

const billColumns = `id, patient_id, amount, description, status, created_at, updated_at`

func (r *billRepository) Create(ctx context.Context, bill *model.Bill) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		id, err := nextID(ctx, tx, idgen.PrefixBill)
		if err != nil {
			return err
		}
		bill.ID = id
		bill.CreatedAt = time.Now()
		bill.UpdatedAt = bill.CreatedAt

		_, err = tx.ExecContext(ctx, `
			INSERT INTO bills (`+billColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			bill.ID,
			bill.PatientID,
			bill.Amount,
			bill.Description,
			bill.Status,
			bill.CreatedAt,
			bill.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create bill: %w", err)
		}
		return nil
	})
}

func (r *billRepository) Get(ctx context.Context, id string) (*model.Bill, error) {
	var bill model.Bill
	err := r.db.GetContext(ctx, &bill,
		`SELECT `+billColumns+` FROM bills WHERE id = $1`, id)
	if err != nil {
		return nil, notFoundOr(err, "bill", id)
	}
	return &bill, nil
}

func (r *billRepository) List(ctx context.Context) ([]*model.Bill, error) {
	bills := make([]*model.Bill, 0)
	err := r.db.SelectContext(ctx, &bills,
		`SELECT `+billColumns+` FROM bills ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

func (r *billRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.Bill, error) {
	bills := make([]*model.Bill, 0)
	err := r.db.SelectContext(ctx, &bills,
		`SELECT `+billColumns+` FROM bills WHERE patient_id = $1 ORDER BY created_at ASC, id ASC`,
		patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills by patient: %w", err)
	}
	return bills, nil
}

func (r *billRepository) Mutate(ctx context.Context, id string, fn func(*model.Bill) error) (*model.Bill, error) {
	var bill model.Bill
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &bill,
			`SELECT `+billColumns+` FROM bills WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return notFoundOr(err, "bill", id)
		}

		if err := fn(&bill); err != nil {
			return err
		}
		bill.UpdatedAt = time.Now()

		_, err = tx.ExecContext(ctx, `
			UPDATE bills SET status = $1, updated_at = $2 WHERE id = $3
		`, bill.Status, bill.UpdatedAt, id)
		if err != nil {
			return fmt.Errorf("failed to update bill: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}
