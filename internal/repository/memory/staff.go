package memory

import (
	"context"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/idgen"
)

type staffRepository struct {
	store *Store
}

func NewStaffRepository(store *Store) repository.StaffRepository {
	return &staffRepository{store: store}
}

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	s := r.store
	s.muStaff.Lock()
	defer s.muStaff.Unlock()

	if _, taken := s.licenses[staff.LicenseNumber]; taken {
		return errors.Conflict("license number " + staff.LicenseNumber + " already registered")
	}

	staff.ID = s.ids.Next(idgen.PrefixStaff)
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = staff.CreatedAt

	s.staff[staff.ID] = clone(staff)
	s.staffOrder = append(s.staffOrder, staff.ID)
	s.licenses[staff.LicenseNumber] = staff.ID
	if staff.Department != "" {
		s.staffByDepartment[staff.Department] = append(s.staffByDepartment[staff.Department], staff.ID)
	}
	return nil
}

func (r *staffRepository) Get(ctx context.Context, id string) (*model.Staff, error) {
	s := r.store
	s.muStaff.RLock()
	defer s.muStaff.RUnlock()

	staff, ok := s.staff[id]
	if !ok {
		return nil, errors.NotFound("staff", id)
	}
	return clone(staff), nil
}

func (r *staffRepository) List(ctx context.Context) ([]*model.Staff, error) {
	s := r.store
	s.muStaff.RLock()
	defer s.muStaff.RUnlock()

	staff := make([]*model.Staff, 0, len(s.staffOrder))
	for _, id := range s.staffOrder {
		staff = append(staff, clone(s.staff[id]))
	}
	return staff, nil
}

func (r *staffRepository) ListByDepartment(ctx context.Context, departmentID string) ([]*model.Staff, error) {
	s := r.store
	s.muStaff.RLock()
	defer s.muStaff.RUnlock()

	ids := s.staffByDepartment[departmentID]
	staff := make([]*model.Staff, 0, len(ids))
	for _, id := range ids {
		staff = append(staff, clone(s.staff[id]))
	}
	return staff, nil
}

func (r *staffRepository) CountByDepartment(ctx context.Context, departmentID string) (int, error) {
	s := r.store
	s.muStaff.RLock()
	defer s.muStaff.RUnlock()
	return len(s.staffByDepartment[departmentID]), nil
}

func (r *staffRepository) Mutate(ctx context.Context, id string, fn func(*model.Staff) error) (*model.Staff, error) {
	s := r.store
	s.muStaff.Lock()
	defer s.muStaff.Unlock()

	current, ok := s.staff[id]
	if !ok {
		return nil, errors.NotFound("staff", id)
	}

	next := clone(current)
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now()

	// Keep the department index in step with the foreign-key field.
	if next.Department != current.Department {
		if current.Department != "" {
			s.staffByDepartment[current.Department] = removeID(s.staffByDepartment[current.Department], id)
		}
		if next.Department != "" {
			s.staffByDepartment[next.Department] = append(s.staffByDepartment[next.Department], id)
		}
	}

	s.staff[id] = next
	return clone(next), nil
}
