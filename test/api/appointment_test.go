package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentLifecycle(t *testing.T) {
	s := newTestServer(t)
	patientID := s.createPatient(t, "Jordan Reyes")
	doctorID := s.createDoctor(t, "Dr. Adams", "LIC-1")

	create := map[string]interface{}{
		"patient_id":     patientID,
		"doctor_id":      doctorID,
		"scheduled_time": "2026-09-01 10:00",
	}

	var appointment struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	rec := s.do(t, http.MethodPost, "/api/v1/appointments", create)
	decodeSuccess(t, rec, http.StatusCreated, &appointment)
	assert.Equal(t, "scheduled", appointment.Status)

	// Same doctor, same slot: rejected.
	rec = s.do(t, http.MethodPost, "/api/v1/appointments", create)
	decodeError(t, rec, http.StatusConflict, "conflict")

	rec = s.do(t, http.MethodPost, "/api/v1/appointments/"+appointment.ID+"/cancel", nil)
	var cancelled struct {
		Status string `json:"status"`
	}
	decodeSuccess(t, rec, http.StatusOK, &cancelled)
	assert.Equal(t, "cancelled", cancelled.Status)

	// Cancelling twice is an invalid transition.
	rec = s.do(t, http.MethodPost, "/api/v1/appointments/"+appointment.ID+"/cancel", nil)
	decodeError(t, rec, http.StatusConflict, "invalid_transition")

	// The slot is free again after cancellation.
	rec = s.do(t, http.MethodPost, "/api/v1/appointments", create)
	decodeSuccess(t, rec, http.StatusCreated, nil)
}

func TestAppointmentValidation(t *testing.T) {
	s := newTestServer(t)
	doctorID := s.createDoctor(t, "Dr. Adams", "LIC-1")

	rec := s.do(t, http.MethodPost, "/api/v1/appointments", map[string]interface{}{
		"patient_id":     "P999",
		"doctor_id":      doctorID,
		"scheduled_time": "2026-09-01 10:00",
	})
	body := decodeError(t, rec, http.StatusBadRequest, "validation_error")
	assert.Equal(t, "patient_id", body.Field)

	patientID := s.createPatient(t, "Jordan Reyes")
	rec = s.do(t, http.MethodPost, "/api/v1/appointments", map[string]interface{}{
		"patient_id":     patientID,
		"doctor_id":      doctorID,
		"scheduled_time": "tomorrow at noon",
	})
	body = decodeError(t, rec, http.StatusBadRequest, "validation_error")
	assert.Equal(t, "scheduledtime", body.Field)
}

func TestDoctorBookedSlots(t *testing.T) {
	s := newTestServer(t)
	patientID := s.createPatient(t, "Jordan Reyes")
	doctorID := s.createDoctor(t, "Dr. Adams", "LIC-1")

	for _, slot := range []string{"2026-09-01 10:00", "2026-09-01 11:00"} {
		rec := s.do(t, http.MethodPost, "/api/v1/appointments", map[string]interface{}{
			"patient_id":     patientID,
			"doctor_id":      doctorID,
			"scheduled_time": slot,
		})
		decodeSuccess(t, rec, http.StatusCreated, nil)
	}

	var slots struct {
		DoctorID    string   `json:"doctor_id"`
		BookedTimes []string `json:"booked_times"`
	}
	rec := s.do(t, http.MethodGet, "/api/v1/doctors/"+doctorID+"/slots", nil)
	decodeSuccess(t, rec, http.StatusOK, &slots)

	require.Equal(t, doctorID, slots.DoctorID)
	assert.Equal(t, []string{"2026-09-01 10:00", "2026-09-01 11:00"}, slots.BookedTimes)
}
