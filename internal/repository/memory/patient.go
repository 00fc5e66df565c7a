package memory

import (
	"context"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/idgen"
)

type patientRepository struct {
	store *Store
}

func NewPatientRepository(store *Store) repository.PatientRepository {
	return &patientRepository{store: store}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	s := r.store
	s.muPatients.Lock()
	defer s.muPatients.Unlock()

	patient.ID = s.ids.Next(idgen.PrefixPatient)
	patient.CreatedAt = time.Now()

	s.patients[patient.ID] = clone(patient)
	s.patientOrder = append(s.patientOrder, patient.ID)
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id string) (*model.Patient, error) {
	s := r.store
	s.muPatients.RLock()
	defer s.muPatients.RUnlock()

	patient, ok := s.patients[id]
	if !ok {
		return nil, errors.NotFound("patient", id)
	}
	return clone(patient), nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	s := r.store
	s.muPatients.RLock()
	defer s.muPatients.RUnlock()

	patients := make([]*model.Patient, 0, len(s.patientOrder))
	for _, id := range s.patientOrder {
		patients = append(patients, clone(s.patients[id]))
	}
	return patients, nil
}
