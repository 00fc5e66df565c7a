package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetPatient(t *testing.T) {
	s := newTestServer(t)

	id := s.createPatient(t, "Jordan Reyes")
	assert.Equal(t, "P001", id)

	var patient struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	rec := s.do(t, http.MethodGet, "/api/v1/patients/"+id, nil)
	decodeSuccess(t, rec, http.StatusOK, &patient)

	assert.Equal(t, id, patient.ID)
	assert.Equal(t, "Jordan Reyes", patient.Name)
	assert.Equal(t, "active", patient.Status)
}

func TestCreatePatientValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/patients", map[string]interface{}{
		"name":         "Jordan Reyes",
		"dob":          "01/01/1990",
		"contact":      "555-0100",
		"insurance_id": "INS-1",
	})
	body := decodeError(t, rec, http.StatusBadRequest, "validation_error")
	assert.Equal(t, "dob", body.Field)

	rec = s.do(t, http.MethodPost, "/api/v1/patients", map[string]interface{}{
		"dob":          "1990-01-01",
		"contact":      "555-0100",
		"insurance_id": "INS-1",
	})
	body = decodeError(t, rec, http.StatusBadRequest, "validation_error")
	assert.Equal(t, "name", body.Field)
}

func TestGetPatientNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/patients/P999", nil)
	decodeError(t, rec, http.StatusNotFound, "not_found")
}

func TestListPatients(t *testing.T) {
	s := newTestServer(t)

	s.createPatient(t, "Jordan Reyes")
	s.createPatient(t, "Morgan Lee")

	var data struct {
		Patients []struct {
			ID string `json:"id"`
		} `json:"patients"`
	}
	rec := s.do(t, http.MethodGet, "/api/v1/patients", nil)
	decodeSuccess(t, rec, http.StatusOK, &data)

	require.Len(t, data.Patients, 2)
	assert.Equal(t, "P001", data.Patients[0].ID)
	assert.Equal(t, "P002", data.Patients[1].ID)
}
