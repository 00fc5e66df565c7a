package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository/memory"
	"github.com/jwalitptl/hospital-api/internal/service/event"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

type fixture struct {
	svc     *Service
	patient *model.Patient
	doctor  *model.Staff
	nurse   *model.Staff
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	patients := memory.NewPatientRepository(store)
	staff := memory.NewStaffRepository(store)
	appointments := memory.NewAppointmentRepository(store)
	events := event.NewService(nil, nil)

	ctx := context.Background()
	patient := &model.Patient{Name: "Jordan Reyes", DOB: "1990-01-01", Contact: "555-0100", InsuranceID: "INS-1", Status: model.PatientStatusActive}
	require.NoError(t, patients.Create(ctx, patient))

	doctor := &model.Staff{Name: "Dr. Adams", Role: model.StaffRoleDoctor, Specialization: "cardiology", LicenseNumber: "LIC-1", Status: model.StaffStatusActive}
	require.NoError(t, staff.Create(ctx, doctor))

	nurse := &model.Staff{Name: "Nurse Chen", Role: model.StaffRoleNurse, Specialization: "icu", LicenseNumber: "LIC-2", Status: model.StaffStatusActive}
	require.NoError(t, staff.Create(ctx, nurse))

	return &fixture{
		svc:     NewService(appointments, patients, staff, events),
		patient: patient,
		doctor:  doctor,
		nurse:   nurse,
	}
}

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.CreateAppointment(context.Background(), &model.CreateAppointmentRequest{
		PatientID:     f.patient.ID,
		DoctorID:      f.doctor.ID,
		ScheduledTime: "2026-09-01 10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "A001", created.ID)
	assert.Equal(t, model.AppointmentStatusScheduled, created.Status)
}

func TestCreateAppointmentUnknownPatient(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateAppointment(context.Background(), &model.CreateAppointmentRequest{
		PatientID:     "P999",
		DoctorID:      f.doctor.ID,
		ScheduledTime: "2026-09-01 10:00",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCreateAppointmentUnknownDoctor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateAppointment(context.Background(), &model.CreateAppointmentRequest{
		PatientID:     f.patient.ID,
		DoctorID:      "S999",
		ScheduledTime: "2026-09-01 10:00",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCreateAppointmentNonDoctorStaff(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateAppointment(context.Background(), &model.CreateAppointmentRequest{
		PatientID:     f.patient.ID,
		DoctorID:      f.nurse.ID,
		ScheduledTime: "2026-09-01 10:00",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestDoubleBookingRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := &model.CreateAppointmentRequest{
		PatientID:     f.patient.ID,
		DoctorID:      f.doctor.ID,
		ScheduledTime: "2026-09-01 10:00",
	}
	_, err := f.svc.CreateAppointment(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.CreateAppointment(ctx, req)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	// A different time for the same doctor is fine.
	req.ScheduledTime = "2026-09-01 11:00"
	_, err = f.svc.CreateAppointment(ctx, req)
	assert.NoError(t, err)
}

func TestCancelAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateAppointment(ctx, &model.CreateAppointmentRequest{
		PatientID:     f.patient.ID,
		DoctorID:      f.doctor.ID,
		ScheduledTime: "2026-09-01 10:00",
	})
	require.NoError(t, err)

	cancelled, err := f.svc.CancelAppointment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)

	// The record survives cancellation.
	got, err := f.svc.GetAppointment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, got.Status)

	_, err = f.svc.CancelAppointment(ctx, created.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))
}

func TestCancelUnknownAppointment(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CancelAppointment(context.Background(), "A999")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestBookedSlotsExcludeCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateAppointment(ctx, &model.CreateAppointmentRequest{
		PatientID: f.patient.ID, DoctorID: f.doctor.ID, ScheduledTime: "2026-09-01 10:00",
	})
	require.NoError(t, err)
	_, err = f.svc.CreateAppointment(ctx, &model.CreateAppointmentRequest{
		PatientID: f.patient.ID, DoctorID: f.doctor.ID, ScheduledTime: "2026-09-01 11:00",
	})
	require.NoError(t, err)

	_, err = f.svc.CancelAppointment(ctx, first.ID)
	require.NoError(t, err)

	slots, err := f.svc.BookedSlots(ctx, f.doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-09-01 11:00"}, slots.BookedTimes)
}
