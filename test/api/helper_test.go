package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appointmentHandler "github.com/jwalitptl/hospital-api/internal/handler/appointment"
	billingHandler "github.com/jwalitptl/hospital-api/internal/handler/billing"
	departmentHandler "github.com/jwalitptl/hospital-api/internal/handler/department"
	healthHandler "github.com/jwalitptl/hospital-api/internal/handler/health"
	inventoryHandler "github.com/jwalitptl/hospital-api/internal/handler/inventory"
	medicalrecordHandler "github.com/jwalitptl/hospital-api/internal/handler/medicalrecord"
	patientHandler "github.com/jwalitptl/hospital-api/internal/handler/patient"
	prescriptionHandler "github.com/jwalitptl/hospital-api/internal/handler/prescription"
	reportHandler "github.com/jwalitptl/hospital-api/internal/handler/report"
	staffHandler "github.com/jwalitptl/hospital-api/internal/handler/staff"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/repository/memory"
	"github.com/jwalitptl/hospital-api/internal/router"
	appointmentService "github.com/jwalitptl/hospital-api/internal/service/appointment"
	billingService "github.com/jwalitptl/hospital-api/internal/service/billing"
	departmentService "github.com/jwalitptl/hospital-api/internal/service/department"
	eventService "github.com/jwalitptl/hospital-api/internal/service/event"
	inventoryService "github.com/jwalitptl/hospital-api/internal/service/inventory"
	medicalrecordService "github.com/jwalitptl/hospital-api/internal/service/medicalrecord"
	patientService "github.com/jwalitptl/hospital-api/internal/service/patient"
	prescriptionService "github.com/jwalitptl/hospital-api/internal/service/prescription"
	reportService "github.com/jwalitptl/hospital-api/internal/service/report"
	staffService "github.com/jwalitptl/hospital-api/internal/service/staff"
)

// Each test server gets a unique metrics prefix so repeated router
// construction does not collide in the global prometheus registry.
var serverSeq atomic.Int64

type testServer struct {
	engine        *gin.Engine
	prescriptions *prescriptionService.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	patients := memory.NewPatientRepository(store)
	appointments := memory.NewAppointmentRepository(store)
	records := memory.NewMedicalRecordRepository(store)
	prescriptions := memory.NewPrescriptionRepository(store)
	staff := memory.NewStaffRepository(store)
	departments := memory.NewDepartmentRepository(store)
	bills := memory.NewBillRepository(store)
	inventory := memory.NewInventoryRepository(store)

	events := eventService.NewService(nil, nil)

	patientSvc := patientService.NewService(patients, events)
	appointmentSvc := appointmentService.NewService(appointments, patients, staff, events)
	recordSvc := medicalrecordService.NewService(records, patients, events)
	prescriptionSvc := prescriptionService.NewService(prescriptions, patients, staff, events)
	staffSvc := staffService.NewService(staff, departments, events)
	departmentSvc := departmentService.NewService(departments, staff, events)
	billingSvc := billingService.NewService(bills, patients, events)
	inventorySvc := inventoryService.NewService(inventory, events)
	reportSvc := reportService.NewService(bills, inventory, staff, departments)

	r := router.NewRouter(router.Config{
		CORSConfig:    middleware.DefaultCORSConfig(),
		MetricsPrefix: fmt.Sprintf("hospital_test_%d", serverSeq.Add(1)),
	},
		patientHandler.NewHandler(patientSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		medicalrecordHandler.NewHandler(recordSvc),
		prescriptionHandler.NewHandler(prescriptionSvc),
		staffHandler.NewHandler(staffSvc),
		departmentHandler.NewHandler(departmentSvc),
		billingHandler.NewHandler(billingSvc),
		inventoryHandler.NewHandler(inventorySvc),
		reportHandler.NewHandler(reportSvc),
		healthHandler.NewHandler(nil),
	)
	r.Setup()

	return &testServer{engine: r.Engine(), prescriptions: prescriptionSvc}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *errorBody      `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func decodeSuccess(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, out interface{}) {
	t.Helper()
	require.Equal(t, wantStatus, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, "success", env.Status)
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantCode string) *errorBody {
	t.Helper()
	require.Equal(t, wantStatus, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, "error", env.Status)
	require.NotNil(t, env.Error)
	require.Equal(t, wantCode, env.Error.Code)
	return env.Error
}

func (s *testServer) createPatient(t *testing.T, name string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/patients", map[string]interface{}{
		"name":         name,
		"dob":          "1990-01-01",
		"contact":      "555-0100",
		"insurance_id": "INS-1",
	})

	var patient struct {
		ID string `json:"id"`
	}
	decodeSuccess(t, rec, http.StatusCreated, &patient)
	return patient.ID
}

func (s *testServer) createDoctor(t *testing.T, name, license string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/staff", map[string]interface{}{
		"name":           name,
		"role":           "doctor",
		"specialization": "general",
		"license_number": license,
	})

	var staff struct {
		ID string `json:"id"`
	}
	decodeSuccess(t, rec, http.StatusCreated, &staff)
	return staff.ID
}
