package memory

import (
	"context"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/idgen"
)

type departmentRepository struct {
	store *Store
}

func NewDepartmentRepository(store *Store) repository.DepartmentRepository {
	return &departmentRepository{store: store}
}

func (r *departmentRepository) Create(ctx context.Context, department *model.Department) error {
	s := r.store
	s.muDepartments.Lock()
	defer s.muDepartments.Unlock()

	department.ID = s.ids.Next(idgen.PrefixDepartment)
	department.CreatedAt = time.Now()

	s.departments[department.ID] = clone(department)
	s.departmentOrder = append(s.departmentOrder, department.ID)
	return nil
}

func (r *departmentRepository) Get(ctx context.Context, id string) (*model.Department, error) {
	s := r.store
	s.muDepartments.RLock()
	defer s.muDepartments.RUnlock()

	department, ok := s.departments[id]
	if !ok {
		return nil, errors.NotFound("department", id)
	}
	return clone(department), nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.Department, error) {
	s := r.store
	s.muDepartments.RLock()
	defer s.muDepartments.RUnlock()

	departments := make([]*model.Department, 0, len(s.departmentOrder))
	for _, id := range s.departmentOrder {
		departments = append(departments, clone(s.departments[id]))
	}
	return departments, nil
}
