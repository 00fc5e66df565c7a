package prescription

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/service/event"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
)

type Service struct {
	repo     repository.PrescriptionRepository
	patients repository.PatientRepository
	staff    repository.StaffRepository
	events   *event.Service
}

func NewService(
	repo repository.PrescriptionRepository,
	patients repository.PatientRepository,
	staff repository.StaffRepository,
	events *event.Service,
) *Service {
	return &Service{repo: repo, patients: patients, staff: staff, events: events}
}

func (s *Service) CreatePrescription(ctx context.Context, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.Validation("patient_id", "patient does not exist")
		}
		return nil, err
	}
	if _, err := s.staff.Get(ctx, req.DoctorID); err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.Validation("doctor_id", "doctor does not exist")
		}
		return nil, err
	}

	prescription := &model.Prescription{
		PatientID:  req.PatientID,
		DoctorID:   req.DoctorID,
		Medication: req.Medication,
		Dosage:     req.Dosage,
		Frequency:  req.Frequency,
		Duration:   req.Duration,
		Status:     model.PrescriptionStatusActive,
	}

	if err := s.repo.Create(ctx, prescription); err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}

	s.events.Emit(ctx, messaging.EventCreated, "prescription", prescription.ID, prescription)
	return prescription, nil
}

func (s *Service) GetPrescription(ctx context.Context, id string) (*model.Prescription, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]*model.Prescription, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID)
}

// UpdateStatus applies a caller-requested status transition. The only
// reachable targets are filled and cancelled, and only from active;
// expired is reachable solely through the expiry sweep. Any other target
// is rejected as an invalid transition from the current status.
func (s *Service) UpdateStatus(ctx context.Context, id string, status model.PrescriptionStatus) (*model.Prescription, error) {
	prescription, err := s.repo.Mutate(ctx, id, func(p *model.Prescription) error {
		if p.Status != model.PrescriptionStatusActive ||
			(status != model.PrescriptionStatusFilled && status != model.PrescriptionStatusCancelled) {
			return apperrors.InvalidTransition("prescription", string(p.Status), string(status))
		}
		p.Status = status
		return nil
	})
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindInvalidTransition) {
			s.events.TransitionRejected("prescription")
		}
		return nil, err
	}

	s.events.TransitionApplied("prescription", string(model.PrescriptionStatusActive), string(status))
	s.events.Emit(ctx, messaging.EventStatusTransition, "prescription", prescription.ID, prescription)
	return prescription, nil
}

// ExpireDue transitions every active prescription whose duration has
// elapsed since creation to expired. Prescriptions whose duration cannot
// be parsed never expire. Returns the number of prescriptions expired.
func (s *Service) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	active, err := s.repo.ListByStatus(ctx, model.PrescriptionStatusActive)
	if err != nil {
		return 0, fmt.Errorf("failed to list active prescriptions: %w", err)
	}

	expired := 0
	for _, p := range active {
		d, ok := ParseDuration(p.Duration)
		if !ok {
			log.Debug().
				Str("prescription_id", p.ID).
				Str("duration", p.Duration).
				Msg("unparseable prescription duration, skipping expiry")
			continue
		}
		if now.Before(p.CreatedAt.Add(d)) {
			continue
		}

		updated, err := s.repo.Mutate(ctx, p.ID, func(cur *model.Prescription) error {
			if cur.Status != model.PrescriptionStatusActive {
				return apperrors.InvalidTransition("prescription", string(cur.Status), string(model.PrescriptionStatusExpired))
			}
			cur.Status = model.PrescriptionStatusExpired
			return nil
		})
		if err != nil {
			// Someone filled or cancelled it between the list and the
			// mutation; nothing to do.
			if apperrors.IsKind(err, apperrors.KindInvalidTransition) || apperrors.IsKind(err, apperrors.KindNotFound) {
				continue
			}
			return expired, err
		}

		expired++
		s.events.TransitionApplied("prescription", string(model.PrescriptionStatusActive), string(model.PrescriptionStatusExpired))
		s.events.Emit(ctx, messaging.EventStatusTransition, "prescription", updated.ID, updated)
	}
	return expired, nil
}
