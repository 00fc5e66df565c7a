package memory

import (
	"context"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/idgen"
)

type billRepository struct {
	store *Store
}

func NewBillRepository(store *Store) repository.BillRepository {
	return &billRepository{store: store}
}

func (r *billRepository) Create(ctx context.Context, bill *model.Bill) error {
	s := r.store
	s.muBills.Lock()
	defer s.muBills.Unlock()

	bill.ID = s.ids.Next(idgen.PrefixBill)
	bill.CreatedAt = time.Now()
	bill.UpdatedAt = bill.CreatedAt

	s.bills[bill.ID] = clone(bill)
	s.billOrder = append(s.billOrder, bill.ID)
	s.billsByPatient[bill.PatientID] = append(s.billsByPatient[bill.PatientID], bill.ID)
	return nil
}

func (r *billRepository) Get(ctx context.Context, id string) (*model.Bill, error) {
	s := r.store
	s.muBills.RLock()
	defer s.muBills.RUnlock()

	bill, ok := s.bills[id]
	if !ok {
		return nil, errors.NotFound("bill", id)
	}
	return clone(bill), nil
}

func (r *billRepository) List(ctx context.Context) ([]*model.Bill, error) {
	s := r.store
	s.muBills.RLock()
	defer s.muBills.RUnlock()

	bills := make([]*model.Bill, 0, len(s.billOrder))
	for _, id := range s.billOrder {
		bills = append(bills, clone(s.bills[id]))
	}
	return bills, nil
}

func (r *billRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.Bill, error) {
	s := r.store
	s.muBills.RLock()
	defer s.muBills.RUnlock()

	ids := s.billsByPatient[patientID]
	bills := make([]*model.Bill, 0, len(ids))
	for _, id := range ids {
		bills = append(bills, clone(s.bills[id]))
	}
	return bills, nil
}

func (r *billRepository) Mutate(ctx context.Context, id string, fn func(*model.Bill) error) (*model.Bill, error) {
	s := r.store
	s.muBills.Lock()
	defer s.muBills.Unlock()

	current, ok := s.bills[id]
	if !ok {
		return nil, errors.NotFound("bill", id)
	}

	next := clone(current)
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now()

	s.bills[id] = next
	return clone(next), nil
}
