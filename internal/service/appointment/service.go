package appointment

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
	repo     repository.AppointmentRepository
	patients repository.PatientRepository
	staff    repository.StaffRepository
	events   *event.Service
}

func NewService(
	repo repository.AppointmentRepository,
	patients repository.PatientRepository,
	staff repository.StaffRepository,
	events *event.Service,
) *Service {
	return &Service{repo: repo, patients: patients, staff: staff, events: events}
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.Validation("patient_id", "patient does not exist")
		}
		return nil, err
	}

	doctor, err := s.staff.Get(ctx, req.DoctorID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.Validation("doctor_id", "doctor does not exist")
		}
		return nil, err
	}
	if doctor.Role != model.StaffRoleDoctor {
		return nil, apperrors.Validation("doctor_id", "staff member is not a doctor")
	}

	appointment := &model.Appointment{
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		ScheduledTime: req.ScheduledTime,
		Status:        model.AppointmentStatusScheduled,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		if apperrors.IsKind(err, apperrors.KindConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.events.Emit(ctx, messaging.EventCreated, "appointment", appointment.ID, appointment)
	return appointment, nil
}

func (s *Service) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	return s.repo.List(ctx)
}

// CancelAppointment transitions a scheduled appointment to cancelled.
// Cancelling an already-cancelled appointment is rejected.
func (s *Service) CancelAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	appointment, err := s.repo.Mutate(ctx, id, func(a *model.Appointment) error {
		if a.Status != model.AppointmentStatusScheduled {
			return apperrors.InvalidTransition("appointment", string(a.Status), string(model.AppointmentStatusCancelled))
		}
		a.Status = model.AppointmentStatusCancelled
		return nil
	})
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindInvalidTransition) {
			s.events.TransitionRejected("appointment")
		}
		return nil, err
	}

	s.events.TransitionApplied("appointment", string(model.AppointmentStatusScheduled), string(model.AppointmentStatusCancelled))
	s.events.Emit(ctx, messaging.EventStatusTransition, "appointment", appointment.ID, appointment)
	return appointment, nil
}

// BookedSlots returns the times a doctor already has scheduled
// appointments at. Cancelled appointments free their slot.
func (s *Service) BookedSlots(ctx context.Context, doctorID string) (*model.BookedSlots, error) {
	if _, err := s.staff.Get(ctx, doctorID); err != nil {
		return nil, err
	}

	times, err := s.repo.ListBookedSlots(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked slots: %w", err)
	}
	return &model.BookedSlots{DoctorID: doctorID, BookedTimes: times}, nil
}
