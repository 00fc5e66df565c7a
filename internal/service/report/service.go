// Package report computes aggregate figures over the record store.
// Every figure is recomputed from the underlying records on each call;
// nothing is cached or stored.
package report

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hospital-api/internal/repository"
)

type Service struct {
	bills       repository.BillRepository
	inventory   repository.InventoryRepository
	staff       repository.StaffRepository
	departments repository.DepartmentRepository
}

func NewService(
	bills repository.BillRepository,
	inventory repository.InventoryRepository,
	staff repository.StaffRepository,
	departments repository.DepartmentRepository,
) *Service {
	return &Service{bills: bills, inventory: inventory, staff: staff, departments: departments}
}

type BillingTotal struct {
	TotalBilled float64 `json:"total_billed"`
	BillCount   int     `json:"bill_count"`
}

// TotalBilled sums the amounts of all bills regardless of status.
func (s *Service) TotalBilled(ctx context.Context) (*BillingTotal, error) {
	bills, err := s.bills.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	total := 0.0
	for _, b := range bills {
		total += b.Amount
	}
	return &BillingTotal{TotalBilled: total, BillCount: len(bills)}, nil
}

type InventoryValue struct {
	TotalValue float64 `json:"total_value"`
	ItemCount  int     `json:"item_count"`
}

// TotalInventoryValue sums quantity times unit cost over all items.
func (s *Service) TotalInventoryValue(ctx context.Context) (*InventoryValue, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	total := 0.0
	for _, i := range items {
		total += i.Value()
	}
	return &InventoryValue{TotalValue: total, ItemCount: len(items)}, nil
}

type StaffCount struct {
	DepartmentID string `json:"department_id"`
	Department   string `json:"department"`
	StaffCount   int    `json:"staff_count"`
}

// DepartmentStaffCount counts the staff assigned to a department.
func (s *Service) DepartmentStaffCount(ctx context.Context, departmentID string) (*StaffCount, error) {
	department, err := s.departments.Get(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	count, err := s.staff.CountByDepartment(ctx, department.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count department staff: %w", err)
	}
	return &StaffCount{DepartmentID: department.ID, Department: department.Name, StaffCount: count}, nil
}
