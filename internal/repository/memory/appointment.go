package memory

import (
	"context"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/idgen"
)

type appointmentRepository struct {
	store *Store
}

func NewAppointmentRepository(store *Store) repository.AppointmentRepository {
	return &appointmentRepository{store: store}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	s := r.store
	s.muAppointments.Lock()
	defer s.muAppointments.Unlock()

	// The double-booking check and the insert share the write lock, so two
	// concurrent creates for the same doctor/time cannot both pass.
	for _, existing := range s.appointments {
		if existing.DoctorID == appointment.DoctorID &&
			existing.ScheduledTime == appointment.ScheduledTime &&
			existing.Status == model.AppointmentStatusScheduled {
			return errors.Conflict("doctor already has an appointment at this time")
		}
	}

	appointment.ID = s.ids.Next(idgen.PrefixAppointment)
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt

	s.appointments[appointment.ID] = clone(appointment)
	s.appointmentOrder = append(s.appointmentOrder, appointment.ID)
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id string) (*model.Appointment, error) {
	s := r.store
	s.muAppointments.RLock()
	defer s.muAppointments.RUnlock()

	appointment, ok := s.appointments[id]
	if !ok {
		return nil, errors.NotFound("appointment", id)
	}
	return clone(appointment), nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	s := r.store
	s.muAppointments.RLock()
	defer s.muAppointments.RUnlock()

	appointments := make([]*model.Appointment, 0, len(s.appointmentOrder))
	for _, id := range s.appointmentOrder {
		appointments = append(appointments, clone(s.appointments[id]))
	}
	return appointments, nil
}

func (r *appointmentRepository) ListBookedSlots(ctx context.Context, doctorID string) ([]string, error) {
	s := r.store
	s.muAppointments.RLock()
	defer s.muAppointments.RUnlock()

	slots := make([]string, 0)
	for _, id := range s.appointmentOrder {
		appointment := s.appointments[id]
		if appointment.DoctorID == doctorID && appointment.Status == model.AppointmentStatusScheduled {
			slots = append(slots, appointment.ScheduledTime)
		}
	}
	return slots, nil
}

func (r *appointmentRepository) Mutate(ctx context.Context, id string, fn func(*model.Appointment) error) (*model.Appointment, error) {
	s := r.store
	s.muAppointments.Lock()
	defer s.muAppointments.Unlock()

	current, ok := s.appointments[id]
	if !ok {
		return nil, errors.NotFound("appointment", id)
	}

	next := clone(current)
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now()

	s.appointments[id] = next
	return clone(next), nil
}
