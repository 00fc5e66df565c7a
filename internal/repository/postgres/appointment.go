package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/idgen"
)

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		// Serialize on the doctor so the conflict check and insert are atomic.
		if err := advisoryLock(ctx, tx, "appointments:"+appointment.DoctorID); err != nil {
			return err
		}

		var booked bool
		err := tx.GetContext(ctx, &booked, `
			SELECT EXISTS (
				SELECT 1 FROM appointments
				WHERE doctor_id = $1 AND scheduled_time = $2 AND status = $3
			)
		`, appointment.DoctorID, appointment.ScheduledTime, model.AppointmentStatusScheduled)
		if err != nil {
			return fmt.Errorf("failed to check conflicts: %w", err)
		}
		if booked {
			return apperrors.Conflict("doctor already has an appointment at this time")
		}

		id, err := nextID(ctx, tx, idgen.PrefixAppointment)
		if err != nil {
			return err
		}
		appointment.ID = id
		appointment.CreatedAt = time.Now()
		appointment.UpdatedAt = appointment.CreatedAt

		_, err = tx.ExecContext(ctx, `
			INSERT INTO appointments (id, patient_id, doctor_id, scheduled_time, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			appointment.ID,
			appointment.PatientID,
			appointment.DoctorID,
			appointment.ScheduledTime,
			appointment.Status,
			appointment.CreatedAt,
			appointment.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return nil
	})
}

func (r *appointmentRepository) Get(ctx context.Context, id string) (*model.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, scheduled_time, status, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, notFoundOr(err, "appointment", id)
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, scheduled_time, status, created_at, updated_at
		FROM appointments
		ORDER BY created_at ASC, id ASC
	`
	appointments := make([]*model.Appointment, 0)
	if err := r.db.SelectContext(ctx, &appointments, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListBookedSlots(ctx context.Context, doctorID string) ([]string, error) {
	query := `
		SELECT scheduled_time FROM appointments
		WHERE doctor_id = $1 AND status = $2
		ORDER BY created_at ASC, id ASC
	`
	slots := make([]string, 0)
	if err := r.db.SelectContext(ctx, &slots, query, doctorID, model.AppointmentStatusScheduled); err != nil {
		return nil, fmt.Errorf("failed to list booked slots: %w", err)
	}
	return slots, nil
}

func (r *appointmentRepository) Mutate(ctx context.Context, id string, fn func(*model.Appointment) error) (*model.Appointment, error) {
	var appointment model.Appointment
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			SELECT id, patient_id, doctor_id, scheduled_time, status, created_at, updated_at
			FROM appointments
			WHERE id = $1
			FOR UPDATE
		`
		if err := tx.GetContext(ctx, &appointment, query, id); err != nil {
			return notFoundOr(err, "appointment", id)
		}

		if err := fn(&appointment); err != nil {
			return err
		}
		appointment.UpdatedAt = time.Now()

		_, err := tx.ExecContext(ctx, `
			UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3
		`, appointment.Status, appointment.UpdatedAt, id)
		if err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}
