package staff

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
	repo        repository.StaffRepository
	departments repository.DepartmentRepository
	events      *event.Service
}

func NewService(repo repository.StaffRepository, departments repository.DepartmentRepository, events *event.Service) *Service {
	return &Service{repo: repo, departments: departments, events: events}
}

// CreateStaff registers a staff member. License numbers are unique across
// all staff; a duplicate is rejected with a conflict. Department may be
// empty (unassigned) but must otherwise reference an existing department.
func (s *Service) CreateStaff(ctx context.Context, req *model.CreateStaffRequest) (*model.Staff, error) {
	if err := s.validateDepartment(ctx, req.Department); err != nil {
		return nil, err
	}

	staff := &model.Staff{
		Name:           req.Name,
		Role:           model.StaffRole(req.Role),
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
		Department:     req.Department,
		Status:         model.StaffStatusActive,
	}

	if err := s.repo.Create(ctx, staff); err != nil {
		if apperrors.IsKind(err, apperrors.KindConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}

	s.events.Emit(ctx, messaging.EventCreated, "staff", staff.ID, staff)
	return staff, nil
}

func (s *Service) GetStaff(ctx context.Context, id string) (*model.Staff, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListStaff(ctx context.Context) ([]*model.Staff, error) {
	return s.repo.List(ctx)
}

// UpdateStaff applies the non-nil fields of req. The license number is
// immutable and not part of the update surface.
func (s *Service) UpdateStaff(ctx context.Context, id string, req *model.UpdateStaffRequest) (*model.Staff, error) {
	if req.Department != nil {
		if err := s.validateDepartment(ctx, *req.Department); err != nil {
			return nil, err
		}
	}

	staff, err := s.repo.Mutate(ctx, id, func(m *model.Staff) error {
		if req.Name != nil {
			m.Name = *req.Name
		}
		if req.Role != nil {
			m.Role = model.StaffRole(*req.Role)
		}
		if req.Specialization != nil {
			m.Specialization = *req.Specialization
		}
		if req.Department != nil {
			m.Department = *req.Department
		}
		if req.Status != nil {
			m.Status = model.StaffStatus(*req.Status)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Emit(ctx, messaging.EventUpdated, "staff", staff.ID, staff)
	return staff, nil
}

// validateDepartment accepts an empty id (unassigned) or the id of an
// existing department.
func (s *Service) validateDepartment(ctx context.Context, id string) error {
	if id == "" || s.departments == nil {
		return nil
	}

	if _, err := s.departments.Get(ctx, id); err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return apperrors.Validation("department", "department does not exist")
		}
		return fmt.Errorf("failed to look up department: %w", err)
	}
	return nil
}
