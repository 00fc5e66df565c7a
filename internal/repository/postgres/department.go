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

func NewDepartmentRepository(db *sqlx.DB) repository.DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, department *model.Department) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		id, err := nextID(ctx, tx, idgen.PrefixDepartment)
		if err != nil {
			return err
		}
		department.ID = id
		department.CreatedAt = time.Now()

		_, err = tx.ExecContext(ctx, `
			INSERT INTO departments (id, name, head_of_dept_id, budget_allocation, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`,
			department.ID,
			department.Name,
			department.HeadOfDeptID,
			department.BudgetAllocation,
			department.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create department: %w", err)
		}
		return nil
	})
}

func (r *departmentRepository) Get(ctx context.Context, id string) (*model.Department, error) {
	query := `
		SELECT id, name, head_of_dept_id, budget_allocation, created_at
		FROM departments
		WHERE id = $1
	`
	var department model.Department
	if err := r.db.GetContext(ctx, &department, query, id); err != nil {
		return nil, notFoundOr(err, "department", id)
	}
	return &department, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.Department, error) {
	query := `
		SELECT id, name, head_of_dept_id, budget_allocation, created_at
		FROM departments
		ORDER BY created_at ASC, id ASC
	`
	departments := make([]*model.Department, 0)
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}
