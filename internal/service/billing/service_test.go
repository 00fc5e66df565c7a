package billing

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

func newService(t *testing.T) (*Service, *model.Patient) {
	t.Helper()
	store := memory.NewStore()
	patients := memory.NewPatientRepository(store)
	bills := memory.NewBillRepository(store)

	patient := &model.Patient{Name: "Jordan Reyes", DOB: "1990-01-01", Contact: "555-0100", InsuranceID: "INS-1", Status: model.PatientStatusActive}
	require.NoError(t, patients.Create(context.Background(), patient))

	return NewService(bills, patients, event.NewService(nil, nil)), patient
}

func TestCreateBill(t *testing.T) {
	svc, patient := newService(t)

	created, err := svc.CreateBill(context.Background(), &model.CreateBillRequest{
		PatientID: patient.ID, Amount: 100.00, Description: "consultation",
	})
	require.NoError(t, err)

	assert.Equal(t, "B001", created.ID)
	assert.Equal(t, model.BillStatusPending, created.Status)
}

func TestCreateBillUnknownPatient(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateBill(context.Background(), &model.CreateBillRequest{
		PatientID: "P999", Amount: 100.00, Description: "consultation",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestPayBill(t *testing.T) {
	svc, patient := newService(t)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, &model.CreateBillRequest{
		PatientID: patient.ID, Amount: 100.00, Description: "consultation",
	})
	require.NoError(t, err)

	paid, err := svc.PayBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BillStatusPaid, paid.Status)

	_, err = svc.PayBill(ctx, bill.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))
}

func TestPatientBillingTotal(t *testing.T) {
	svc, patient := newService(t)
	ctx := context.Background()

	_, err := svc.CreateBill(ctx, &model.CreateBillRequest{PatientID: patient.ID, Amount: 100.00, Description: "consultation"})
	require.NoError(t, err)
	_, err = svc.CreateBill(ctx, &model.CreateBillRequest{PatientID: patient.ID, Amount: 250.50, Description: "x-ray"})
	require.NoError(t, err)

	summary, err := svc.PatientBilling(ctx, patient.ID)
	require.NoError(t, err)
	assert.Len(t, summary.Bills, 2)
	assert.Equal(t, 350.50, summary.Total)
}

func TestPatientBalanceCountsOnlyPending(t *testing.T) {
	svc, patient := newService(t)
	ctx := context.Background()

	first, err := svc.CreateBill(ctx, &model.CreateBillRequest{PatientID: patient.ID, Amount: 100.00, Description: "consultation"})
	require.NoError(t, err)
	_, err = svc.CreateBill(ctx, &model.CreateBillRequest{PatientID: patient.ID, Amount: 250.50, Description: "x-ray"})
	require.NoError(t, err)

	_, err = svc.PayBill(ctx, first.ID)
	require.NoError(t, err)

	balance, err := svc.PatientBalance(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.50, balance.Balance)

	// Paid bills still count toward the billing summary total.
	summary, err := svc.PatientBilling(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 350.50, summary.Total)
}

func TestPatientBillingUnknownPatient(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.PatientBilling(context.Background(), "P999")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = svc.PatientBalance(context.Background(), "P999")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
