package memory

import (
	"context"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/idgen"
)

type medicalRecordRepository struct {
	store *Store
}

func NewMedicalRecordRepository(store *Store) repository.MedicalRecordRepository {
	return &medicalRecordRepository{store: store}
}

func (r *medicalRecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	s := r.store
	s.muRecords.Lock()
	defer s.muRecords.Unlock()

	// Version assignment happens under the collection write lock: concurrent
	// creates for the same patient are serialized, so the per-patient
	// sequence is strictly increasing with no gaps or duplicates.
	maxVersion := 0
	for _, recordID := range s.recordsByPatient[record.PatientID] {
		if v := s.records[recordID].Version; v > maxVersion {
			maxVersion = v
		}
	}

	record.ID = s.ids.Next(idgen.PrefixMedicalRecord)
	record.Version = maxVersion + 1
	record.CreatedAt = time.Now()

	s.records[record.ID] = clone(record)
	s.recordsByPatient[record.PatientID] = append(s.recordsByPatient[record.PatientID], record.ID)
	return nil
}

func (r *medicalRecordRepository) Get(ctx context.Context, id string) (*model.MedicalRecord, error) {
	s := r.store
	s.muRecords.RLock()
	defer s.muRecords.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, errors.NotFound("medical record", id)
	}
	return clone(record), nil
}

func (r *medicalRecordRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.MedicalRecord, error) {
	s := r.store
	s.muRecords.RLock()
	defer s.muRecords.RUnlock()

	ids := s.recordsByPatient[patientID]
	records := make([]*model.MedicalRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, clone(s.records[id]))
	}
	// Index order is creation order, which for append-only records is also
	// version-ascending order.
	return records, nil
}
