package patient

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/service/event"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
)

type Service struct {
	repo   repository.PatientRepository
	events *event.Service
}

func NewService(repo repository.PatientRepository, events *event.Service) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		Name:        req.Name,
		DOB:         req.DOB,
		Contact:     req.Contact,
		InsuranceID: req.InsuranceID,
		Status:      model.PatientStatusActive,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.events.Emit(ctx, messaging.EventCreated, "patient", patient.ID, patient)
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	return s.repo.List(ctx)
}
