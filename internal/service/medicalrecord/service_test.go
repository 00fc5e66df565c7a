package medicalrecord

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository/memory"
	"github.com/jwalitptl/hospital-api/internal/service/event"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

func newService(t *testing.T) (*Service, *model.Patient) {
	t.Helper()
	store := memory.NewStore()
	patients := memory.NewPatientRepository(store)
	records := memory.NewMedicalRecordRepository(store)

	patient := &model.Patient{Name: "Jordan Reyes", DOB: "1990-01-01", Contact: "555-0100", InsuranceID: "INS-1", Status: model.PatientStatusActive}
	require.NoError(t, patients.Create(context.Background(), patient))

	return NewService(records, patients, event.NewService(nil, nil)), patient
}

func TestCreateRecordAssignsVersions(t *testing.T) {
	svc, patient := newService(t)
	ctx := context.Background()

	first, err := svc.CreateRecord(ctx, &model.CreateMedicalRecordRequest{
		PatientID: patient.ID, Diagnosis: "flu", Treatment: "rest",
	})
	require.NoError(t, err)
	assert.Equal(t, "MR001", first.ID)
	assert.Equal(t, 1, first.Version)

	second, err := svc.CreateRecord(ctx, &model.CreateMedicalRecordRequest{
		PatientID: patient.ID, Diagnosis: "follow-up", Treatment: "none",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)
}

func TestCreateRecordUnknownPatient(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateRecord(context.Background(), &model.CreateMedicalRecordRequest{
		PatientID: "P999", Diagnosis: "flu", Treatment: "rest",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestConcurrentCreatesKeepHistoryGapless(t *testing.T) {
	svc, patient := newService(t)
	ctx := context.Background()

	const n = 30
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateRecord(ctx, &model.CreateMedicalRecordRequest{
				PatientID: patient.ID, Diagnosis: "checkup", Treatment: "none",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	history, err := svc.PatientHistory(ctx, patient.ID)
	require.NoError(t, err)
	require.Len(t, history, n)

	seen := make(map[int]bool, n)
	for _, r := range history {
		seen[r.Version] = true
	}
	for v := 1; v <= n; v++ {
		assert.True(t, seen[v], "missing version %d", v)
	}
}

func TestPatientHistoryUnknownPatient(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.PatientHistory(context.Background(), "P999")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
