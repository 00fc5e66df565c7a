package billing

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
	repo     repository.BillRepository
	patients repository.PatientRepository
	events   *event.Service
}

func NewService(
	repo repository.BillRepository,
	patients repository.PatientRepository,
	events *event.Service,
) *Service {
	return &Service{repo: repo, patients: patients, events: events}
}

func (s *Service) CreateBill(ctx context.Context, req *model.CreateBillRequest) (*model.Bill, error) {
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.Validation("patient_id", "patient does not exist")
		}
		return nil, err
	}

	bill := &model.Bill{
		PatientID:   req.PatientID,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      model.BillStatusPending,
	}

	if err := s.repo.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	s.events.Emit(ctx, messaging.EventCreated, "bill", bill.ID, bill)
	return bill, nil
}

func (s *Service) GetBill(ctx context.Context, id string) (*model.Bill, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListBills(ctx context.Context) ([]*model.Bill, error) {
	return s.repo.List(ctx)
}

// PayBill transitions a pending bill to paid. Paying an already-paid
// bill is rejected.
func (s *Service) PayBill(ctx context.Context, id string) (*model.Bill, error) {
	bill, err := s.repo.Mutate(ctx, id, func(b *model.Bill) error {
		if b.Status != model.BillStatusPending {
			return apperrors.InvalidTransition("bill", string(b.Status), string(model.BillStatusPaid))
		}
		b.Status = model.BillStatusPaid
		return nil
	})
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindInvalidTransition) {
			s.events.TransitionRejected("bill")
		}
		return nil, err
	}

	s.events.TransitionApplied("bill", string(model.BillStatusPending), string(model.BillStatusPaid))
	s.events.Emit(ctx, messaging.EventStatusTransition, "bill", bill.ID, bill)
	return bill, nil
}

// PatientBilling returns a patient's bills with their total, computed
// from the bills at call time.
func (s *Service) PatientBilling(ctx context.Context, patientID string) (*model.PatientBilling, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}

	bills, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient bills: %w", err)
	}

	total := 0.0
	for _, b := range bills {
		total += b.Amount
	}
	return &model.PatientBilling{Bills: bills, Total: total}, nil
}

// PatientBalance returns the sum of a patient's pending bills.
func (s *Service) PatientBalance(ctx context.Context, patientID string) (*model.PatientBalance, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}

	bills, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient bills: %w", err)
	}

	balance := 0.0
	for _, b := range bills {
		if b.Status == model.BillStatusPending {
			balance += b.Amount
		}
	}
	return &model.PatientBalance{PatientID: patientID, Balance: balance}, nil
}
