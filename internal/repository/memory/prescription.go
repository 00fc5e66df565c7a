package memory

import (
	"context"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/idgen"
)

type prescriptionRepository struct {
	store *Store
}

func NewPrescriptionRepository(store *Store) repository.PrescriptionRepository {
	return &prescriptionRepository{store: store}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	s := r.store
	s.muPrescriptions.Lock()
	defer s.muPrescriptions.Unlock()

	prescription.ID = s.ids.Next(idgen.PrefixPrescription)
	prescription.CreatedAt = time.Now()
	prescription.UpdatedAt = prescription.CreatedAt

	s.prescriptions[prescription.ID] = clone(prescription)
	s.prescriptionOrder = append(s.prescriptionOrder, prescription.ID)
	s.prescriptionsByPatient[prescription.PatientID] = append(s.prescriptionsByPatient[prescription.PatientID], prescription.ID)
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id string) (*model.Prescription, error) {
	s := r.store
	s.muPrescriptions.RLock()
	defer s.muPrescriptions.RUnlock()

	prescription, ok := s.prescriptions[id]
	if !ok {
		return nil, errors.NotFound("prescription", id)
	}
	return clone(prescription), nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.Prescription, error) {
	s := r.store
	s.muPrescriptions.RLock()
	defer s.muPrescriptions.RUnlock()

	ids := s.prescriptionsByPatient[patientID]
	prescriptions := make([]*model.Prescription, 0, len(ids))
	for _, id := range ids {
		prescriptions = append(prescriptions, clone(s.prescriptions[id]))
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListByStatus(ctx context.Context, status model.PrescriptionStatus) ([]*model.Prescription, error) {
	s := r.store
	s.muPrescriptions.RLock()
	defer s.muPrescriptions.RUnlock()

	prescriptions := make([]*model.Prescription, 0)
	for _, id := range s.prescriptionOrder {
		if s.prescriptions[id].Status == status {
			prescriptions = append(prescriptions, clone(s.prescriptions[id]))
		}
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) Mutate(ctx context.Context, id string, fn func(*model.Prescription) error) (*model.Prescription, error) {
	s := r.store
	s.muPrescriptions.Lock()
	defer s.muPrescriptions.Unlock()

	current, ok := s.prescriptions[id]
	if !ok {
		return nil, errors.NotFound("prescription", id)
	}

	next := clone(current)
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now()

	s.prescriptions[id] = next
	return clone(next), nil
}
