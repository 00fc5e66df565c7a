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

func NewStaffRepository(db *sqlx.DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, name, role, specialization, license_number, department, status, created_at, updated_at`

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		id, err := nextID(ctx, tx, idgen.PrefixStaff)
		if err != nil {
			return err
		}
		staff.ID = id
		staff.CreatedAt = time.Now()
		staff.UpdatedAt = staff.CreatedAt

		_, err = tx.ExecContext(ctx, `
			INSERT INTO staff (`+staffColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			staff.ID,
			staff.Name,
			staff.Role,
			staff.Specialization,
			staff.LicenseNumber,
			staff.Department,
			staff.Status,
			staff.CreatedAt,
			staff.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.Conflict("license number " + staff.LicenseNumber + " already registered")
			}
			return fmt.Errorf("failed to create staff: %w", err)
		}
		return nil
	})
}

func (r *staffRepository) Get(ctx context.Context, id string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.GetContext(ctx, &staff,
		`SELECT `+staffColumns+` FROM staff WHERE id = $1`, id)
	if err != nil {
		return nil, notFoundOr(err, "staff", id)
	}
	return &staff, nil
}

func (r *staffRepository) List(ctx context.Context) ([]*model.Staff, error) {
	staff := make([]*model.Staff, 0)
	err := r.db.SelectContext(ctx, &staff,
		`SELECT `+staffColumns+` FROM staff ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (r *staffRepository) ListByDepartment(ctx context.Context, departmentID string) ([]*model.Staff, error) {
	staff := make([]*model.Staff, 0)
	err := r.db.SelectContext(ctx, &staff,
		`SELECT `+staffColumns+` FROM staff WHERE department = $1 ORDER BY created_at ASC, id ASC`,
		departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff by department: %w", err)
	}
	return staff, nil
}

func (r *staffRepository) CountByDepartment(ctx context.Context, departmentID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM staff WHERE department = $1`, departmentID)
	if err != nil {
		return 0, fmt.Errorf("failed to count staff by department: %w", err)
	}
	return count, nil
}

func (r *staffRepository) Mutate(ctx context.Context, id string, fn func(*model.Staff) error) (*model.Staff, error) {
	var staff model.Staff
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &staff,
			`SELECT `+staffColumns+` FROM staff WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return notFoundOr(err, "staff", id)
		}

		if err := fn(&staff); err != nil {
			return err
		}
		staff.UpdatedAt = time.Now()

		_, err = tx.ExecContext(ctx, `
			UPDATE staff
			SET name = $1, role = $2, specialization = $3, department = $4, status = $5, updated_at = $6
			WHERE id = $7
		`,
			staff.Name,
			staff.Role,
			staff.Specialization,
			staff.Department,
			staff.Status,
			staff.UpdatedAt,
			id,
		)
		if err != nil {
			return fmt.Errorf("failed to update staff: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &staff, nil
}
