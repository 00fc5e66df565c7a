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

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

const prescriptionColumns = `id, patient_id, doctor_id, medication, dosage, frequency, duration, status, created_at, updated_at`

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		id, err := nextID(ctx, tx, idgen.PrefixPrescription)
		if err != nil {
			return err
		}
		prescription.ID = id
		prescription.CreatedAt = time.Now()
		prescription.UpdatedAt = prescription.CreatedAt

		_, err = tx.ExecContext(ctx, `
			INSERT INTO prescriptions (`+prescriptionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			prescription.ID,
			prescription.PatientID,
			prescription.DoctorID,
			prescription.Medication,
			prescription.Dosage,
			prescription.Frequency,
			prescription.Duration,
			prescription.Status,
			prescription.CreatedAt,
			prescription.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create prescription: %w", err)
		}
		return nil
	})
}

func (r *prescriptionRepository) Get(ctx context.Context, id string) (*model.Prescription, error) {
	var prescription model.Prescription
	err := r.db.GetContext(ctx, &prescription,
		`SELECT `+prescriptionColumns+` FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return nil, notFoundOr(err, "prescription", id)
	}
	return &prescription, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.Prescription, error) {
	prescriptions := make([]*model.Prescription, 0)
	err := r.db.SelectContext(ctx, &prescriptions,
		`SELECT `+prescriptionColumns+` FROM prescriptions WHERE patient_id = $1 ORDER BY created_at ASC, id ASC`,
		patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListByStatus(ctx context.Context, status model.PrescriptionStatus) ([]*model.Prescription, error) {
	prescriptions := make([]*model.Prescription, 0)
	err := r.db.SelectContext(ctx, &prescriptions,
		`SELECT `+prescriptionColumns+` FROM prescriptions WHERE status = $1 ORDER BY created_at ASC, id ASC`,
		status)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions by status: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) Mutate(ctx context.Context, id string, fn func(*model.Prescription) error) (*model.Prescription, error) {
	var prescription model.Prescription
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &prescription,
			`SELECT `+prescriptionColumns+` FROM prescriptions WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return notFoundOr(err, "prescription", id)
		}

		if err := fn(&prescription); err != nil {
			return err
		}
		prescription.UpdatedAt = time.Now()

		_, err = tx.ExecContext(ctx, `
			UPDATE prescriptions SET status = $1, updated_at = $2 WHERE id = $3
		`, prescription.Status, prescription.UpdatedAt, id)
		if err != nil {
			return fmt.Errorf("failed to update prescription: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &prescription, nil
}
