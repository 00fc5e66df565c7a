package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingTotalReport(t *testing.T) {
	s := newTestServer(t)
	patientID := s.createPatient(t, "Jordan Reyes")
	s.createBill(t, patientID, 100.00, "consultation")
	s.createBill(t, patientID, 250.50, "x-ray")

	var total struct {
		TotalBilled float64 `json:"total_billed"`
		BillCount   int     `json:"bill_count"`
	}
	rec := s.do(t, http.MethodGet, "/api/v1/reports/billing/total", nil)
	decodeSuccess(t, rec, http.StatusOK, &total)
	assert.Equal(t, 350.50, total.TotalBilled)
	assert.Equal(t, 2, total.BillCount)
}

func TestInventoryValueReport(t *testing.T) {
	s := newTestServer(t)
	itemID := s.createItem(t, "Bandages", 10, 2.50, "2027-01-01")
	s.createItem(t, "Gauze", 4, 1.25, "2027-01-01")

	var value struct {
		TotalValue float64 `json:"total_value"`
		ItemCount  int     `json:"item_count"`
	}
	rec := s.do(t, http.MethodGet, "/api/v1/reports/inventory/value", nil)
	decodeSuccess(t, rec, http.StatusOK, &value)
	assert.Equal(t, 30.00, value.TotalValue)
	assert.Equal(t, 2, value.ItemCount)

	// Consuming stock is reflected in the next report.
	rec = s.do(t, http.MethodPost, "/api/v1/inventory/"+itemID+"/consume", map[string]interface{}{
		"quantity": 2,
	})
	decodeSuccess(t, rec, http.StatusOK, nil)

	rec = s.do(t, http.MethodGet, "/api/v1/reports/inventory/value", nil)
	decodeSuccess(t, rec, http.StatusOK, &value)
	assert.Equal(t, 25.00, value.TotalValue)
}

func TestDepartmentStaffCountReport(t *testing.T) {
	s := newTestServer(t)
	headID := s.createDoctor(t, "Dr. Adams", "LIC-1")

	var department struct {
		ID string `json:"id"`
	}
	rec := s.do(t, http.MethodPost, "/api/v1/departments", map[string]interface{}{
		"name":              "Cardiology",
		"head_of_dept_id":   headID,
		"budget_allocation": 500000,
	})
	decodeSuccess(t, rec, http.StatusCreated, &department)

	rec = s.do(t, http.MethodPost, "/api/v1/staff", map[string]interface{}{
		"name":           "Nurse Chen",
		"role":           "nurse",
		"specialization": "icu",
		"license_number": "LIC-2",
		"department":     department.ID,
	})
	decodeSuccess(t, rec, http.StatusCreated, nil)

	var count struct {
		DepartmentID string `json:"department_id"`
		StaffCount   int    `json:"staff_count"`
	}
	rec = s.do(t, http.MethodGet, "/api/v1/reports/departments/"+department.ID+"/staff-count", nil)
	decodeSuccess(t, rec, http.StatusOK, &count)
	require.Equal(t, department.ID, count.DepartmentID)
	assert.Equal(t, 1, count.StaffCount)

	rec = s.do(t, http.MethodGet, "/api/v1/reports/departments/D999/staff-count", nil)
	decodeError(t, rec, http.StatusNotFound, "not_found")
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/health/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
