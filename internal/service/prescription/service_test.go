package prescription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository/memory"
	"github.com/jwalitptl/hospital-api/internal/service/event"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

func newService(t *testing.T) (*Service, *model.Patient, *model.Staff) {
	t.Helper()
	store := memory.NewStore()
	patients := memory.NewPatientRepository(store)
	staff := memory.NewStaffRepository(store)
	prescriptions := memory.NewPrescriptionRepository(store)

	ctx := context.Background()
	patient := &model.Patient{Name: "Jordan Reyes", DOB: "1990-01-01", Contact: "555-0100", InsuranceID: "INS-1", Status: model.PatientStatusActive}
	require.NoError(t, patients.Create(ctx, patient))

	doctor := &model.Staff{Name: "Dr. Adams", Role: model.StaffRoleDoctor, Specialization: "gp", LicenseNumber: "LIC-1", Status: model.StaffStatusActive}
	require.NoError(t, staff.Create(ctx, doctor))

	return NewService(prescriptions, patients, staff, event.NewService(nil, nil)), patient, doctor
}

func createPrescription(t *testing.T, svc *Service, patientID, doctorID, duration string) *model.Prescription {
	t.Helper()
	created, err := svc.CreatePrescription(context.Background(), &model.CreatePrescriptionRequest{
		PatientID:  patientID,
		DoctorID:   doctorID,
		Medication: "amoxicillin",
		Dosage:     "500mg",
		Frequency:  "3x daily",
		Duration:   duration,
	})
	require.NoError(t, err)
	return created
}

func TestCreatePrescription(t *testing.T) {
	svc, patient, doctor := newService(t)

	created := createPrescription(t, svc, patient.ID, doctor.ID, "7 days")
	assert.Equal(t, "RX001", created.ID)
	assert.Equal(t, model.PrescriptionStatusActive, created.Status)
}

func TestCreatePrescriptionUnknownReferences(t *testing.T) {
	svc, patient, doctor := newService(t)
	ctx := context.Background()

	_, err := svc.CreatePrescription(ctx, &model.CreatePrescriptionRequest{
		PatientID: "P999", DoctorID: doctor.ID, Medication: "m", Dosage: "d", Frequency: "f", Duration: "7 days",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.CreatePrescription(ctx, &model.CreatePrescriptionRequest{
		PatientID: patient.ID, DoctorID: "S999", Medication: "m", Dosage: "d", Frequency: "f", Duration: "7 days",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc, patient, doctor := newService(t)
	ctx := context.Background()

	rx := createPrescription(t, svc, patient.ID, doctor.ID, "7 days")

	filled, err := svc.UpdateStatus(ctx, rx.ID, model.PrescriptionStatusFilled)
	require.NoError(t, err)
	assert.Equal(t, model.PrescriptionStatusFilled, filled.Status)

	// Filled is terminal.
	_, err = svc.UpdateStatus(ctx, rx.ID, model.PrescriptionStatusCancelled)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))
}

func TestUpdateStatusRejectsUnreachableTargets(t *testing.T) {
	svc, patient, doctor := newService(t)
	ctx := context.Background()
	rx := createPrescription(t, svc, patient.ID, doctor.ID, "7 days")

	// Expired is reachable only through the expiry sweep.
	_, err := svc.UpdateStatus(ctx, rx.ID, model.PrescriptionStatusExpired)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))

	_, err = svc.UpdateStatus(ctx, rx.ID, model.PrescriptionStatusActive)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))

	filled, err := svc.UpdateStatus(ctx, rx.ID, model.PrescriptionStatusFilled)
	require.NoError(t, err)
	require.Equal(t, model.PrescriptionStatusFilled, filled.Status)

	// A filled prescription cannot be reactivated.
	_, err = svc.UpdateStatus(ctx, rx.ID, model.PrescriptionStatusActive)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))
}

func TestExpireDue(t *testing.T) {
	svc, patient, doctor := newService(t)
	ctx := context.Background()

	short := createPrescription(t, svc, patient.ID, doctor.ID, "1 hour")
	long := createPrescription(t, svc, patient.ID, doctor.ID, "2 weeks")
	unparseable := createPrescription(t, svc, patient.ID, doctor.ID, "as needed")
	filled := createPrescription(t, svc, patient.ID, doctor.ID, "1 hour")
	_, err := svc.UpdateStatus(ctx, filled.ID, model.PrescriptionStatusFilled)
	require.NoError(t, err)

	expired, err := svc.ExpireDue(ctx, time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	got, err := svc.GetPrescription(ctx, short.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PrescriptionStatusExpired, got.Status)

	got, err = svc.GetPrescription(ctx, long.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PrescriptionStatusActive, got.Status)

	// Unparseable durations never expire.
	got, err = svc.GetPrescription(ctx, unparseable.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PrescriptionStatusActive, got.Status)

	got, err = svc.GetPrescription(ctx, filled.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PrescriptionStatusFilled, got.Status)

	// Expired is terminal.
	_, err = svc.UpdateStatus(ctx, short.ID, model.PrescriptionStatusFilled)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))
}

func TestListByPatient(t *testing.T) {
	svc, patient, doctor := newService(t)

	createPrescription(t, svc, patient.ID, doctor.ID, "7 days")
	createPrescription(t, svc, patient.ID, doctor.ID, "2 weeks")

	prescriptions, err := svc.ListByPatient(context.Background(), patient.ID)
	require.NoError(t, err)
	assert.Len(t, prescriptions, 2)

	_, err = svc.ListByPatient(context.Background(), "P999")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
