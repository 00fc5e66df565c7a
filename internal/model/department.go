package model

import "time"

type Department struct {
	ID               string    `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	HeadOfDeptID     string    `db:"head_of_dept_id" json:"head_of_dept_id"`
	BudgetAllocation float64   `db:"budget_allocation" json:"budget_allocation"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`

	// StaffCount is derived from the staff collection on read, never stored.
	StaffCount int `db:"-" json:"staff_count"`
}

type CreateDepartmentRequest struct {
	Name             string  `json:"name" binding:"required"`
	HeadOfDeptID     string  `json:"head_of_dept_id" binding:"required"`
	BudgetAllocation float64 `json:"budget_allocation" binding:"required,gt=0"`
}
