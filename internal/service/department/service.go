package department

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/service/event"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
)

type Service struct {
	repo   repository.DepartmentRepository
	staff  repository.StaffRepository
	events *event.Service
}

func NewService(
	repo repository.DepartmentRepository,
	staff repository.StaffRepository,
	events *event.Service,
) *Service {
	return &Service{repo: repo, staff: staff, events: events}
}

func (s *Service) CreateDepartment(ctx context.Context, req *model.CreateDepartmentRequest) (*model.Department, error) {
	if _, err := s.staff.Get(ctx, req.HeadOfDeptID); err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.Validation("head_of_dept_id", "staff member does not exist")
		}
		return nil, err
	}

	department := &model.Department{
		Name:             req.Name,
		HeadOfDeptID:     req.HeadOfDeptID,
		BudgetAllocation: req.BudgetAllocation,
	}

	if err := s.repo.Create(ctx, department); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	s.events.Emit(ctx, messaging.EventCreated, "department", department.ID, department)
	return department, nil
}

// GetDepartment returns the department with its staff count computed from
// the staff collection at call time.
func (s *Service) GetDepartment(ctx context.Context, id string) (*model.Department, error) {
	department, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.staff.CountByDepartment(ctx, department.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count department staff: %w", err)
	}
	department.StaffCount = count
	return department, nil
}

func (s *Service) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	departments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, d := range departments {
		count, err := s.staff.CountByDepartment(ctx, d.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count department staff: %w", err)
		}
		d.StaffCount = count
	}
	return departments, nil
}

// DepartmentStaff lists the staff assigned to a department.
func (s *Service) DepartmentStaff(ctx context.Context, id string) ([]*model.Staff, error) {
	department, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.staff.ListByDepartment(ctx, department.ID)
}
