package medicalrecord

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
	repo     repository.MedicalRecordRepository
	patients repository.PatientRepository
	events   *event.Service
}

func NewService(
	repo repository.MedicalRecordRepository,
	patients repository.PatientRepository,
	events *event.Service,
) *Service {
	return &Service{repo: repo, patients: patients, events: events}
}

// CreateRecord appends a new record to the patient's history. The store
// assigns the next version in the patient's sequence.
func (s *Service) CreateRecord(ctx context.Context, req *model.CreateMedicalRecordRequest) (*model.MedicalRecord, error) {
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.Validation("patient_id", "patient does not exist")
		}
		return nil, err
	}

	record := &model.MedicalRecord{
		PatientID: req.PatientID,
		Diagnosis: req.Diagnosis,
		Treatment: req.Treatment,
		Notes:     req.Notes,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create medical record: %w", err)
	}

	s.events.Emit(ctx, messaging.EventCreated, "medical_record", record.ID, record)
	return record, nil
}

func (s *Service) GetRecord(ctx context.Context, id string) (*model.MedicalRecord, error) {
	return s.repo.Get(ctx, id)
}

// PatientHistory returns a patient's records ordered by version.
func (s *Service) PatientHistory(ctx context.Context, patientID string) ([]*model.MedicalRecord, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID)
}
