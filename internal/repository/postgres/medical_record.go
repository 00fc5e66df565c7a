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

func NewMedicalRecordRepository(db *sqlx.DB) repository.MedicalRecordRepository {
	return &medicalRecordRepository{db: db}
}

func (r *medicalRecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		// Serialize per patient so concurrent creates never assign the
		// same version; the UNIQUE (patient_id, version) constraint is the
		// backstop.
		if err := advisoryLock(ctx, tx, "medical_records:"+record.PatientID); err != nil {
			return err
		}

		id, err := nextID(ctx, tx, idgen.PrefixMedicalRecord)
		if err != nil {
			return err
		}
		record.ID = id
		record.CreatedAt = time.Now()

		err = tx.GetContext(ctx, &record.Version, `
			INSERT INTO medical_records (id, patient_id, diagnosis, treatment, notes, version, created_at)
			SELECT $1, $2, $3, $4, $5, COALESCE(MAX(version), 0) + 1, $6
			FROM medical_records WHERE patient_id = $2
			RETURNING version
		`,
			record.ID,
			record.PatientID,
			record.Diagnosis,
			record.Treatment,
			record.Notes,
			record.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create medical record: %w", err)
		}
		return nil
	})
}

func (r *medicalRecordRepository) Get(ctx context.Context, id string) (*model.MedicalRecord, error) {
	query := `
		SELECT id, patient_id, diagnosis, treatment, notes, version, created_at
		FROM medical_records
		WHERE id = $1
	`
	var record model.MedicalRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, notFoundOr(err, "medical record", id)
	}
	return &record, nil
}

func (r *medicalRecordRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.MedicalRecord, error) {
	query := `
		SELECT id, patient_id, diagnosis, treatment, notes, version, created_at
		FROM medical_records
		WHERE patient_id = $1
		ORDER BY version ASC
	`
	records := make([]*model.MedicalRecord, 0)
	if err := r.db.SelectContext(ctx, &records, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}
