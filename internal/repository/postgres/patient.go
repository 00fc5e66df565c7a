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

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		id, err := nextID(ctx, tx, idgen.PrefixPatient)
		if err != nil {
			return err
		}
		patient.ID = id
		patient.CreatedAt = time.Now()

		query := `
			INSERT INTO patients (id, name, dob, contact, insurance_id, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err = tx.ExecContext(ctx, query,
			patient.ID,
			patient.Name,
			patient.DOB,
			patient.Contact,
			patient.InsuranceID,
			patient.Status,
			patient.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create patient: %w", err)
		}
		return nil
	})
}

func (r *patientRepository) Get(ctx context.Context, id string) (*model.Patient, error) {
	query := `
		SELECT id, name, dob, contact, insurance_id, status, created_at
		FROM patients
		WHERE id = $1
	`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, notFoundOr(err, "patient", id)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `
		SELECT id, name, dob, contact, insurance_id, status, created_at
		FROM patients
		ORDER BY created_at ASC, id ASC
	`
	patients := make([]*model.Patient, 0)
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
