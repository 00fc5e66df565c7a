package repository

import (
	"context"

	"github.com/jwalitptl/hospital-api/internal/model"
)

// Repositories own all entity records. Create assigns the ID and the
// creation timestamp; IDs are immutable and never reused. Mutate runs fn
// against the current record under the store's write discipline, so
// concurrent mutations of the same record are serialized; fn returning an
// error aborts the mutation.

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id string) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
}

type AppointmentRepository interface {
	// Create rejects a double-booking: another scheduled appointment for
	// the same doctor at the same time.
	Create(ctx context.Context, appointment *model.Appointment) error
	Get(ctx context.Context, id string) (*model.Appointment, error)
	List(ctx context.Context) ([]*model.Appointment, error)
	ListBookedSlots(ctx context.Context, doctorID string) ([]string, error)
	Mutate(ctx context.Context, id string, fn func(*model.Appointment) error) (*model.Appointment, error)
}

type MedicalRecordRepository interface {
	// Create assigns the next version for the record's patient; concurrent
	// creates for the same patient observe a strictly increasing sequence.
	Create(ctx context.Context, record *model.MedicalRecord) error
	Get(ctx context.Context, id string) (*model.MedicalRecord, error)
	ListByPatient(ctx context.Context, patientID string) ([]*model.MedicalRecord, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *model.Prescription) error
	Get(ctx context.Context, id string) (*model.Prescription, error)
	ListByPatient(ctx context.Context, patientID string) ([]*model.Prescription, error)
	ListByStatus(ctx context.Context, status model.PrescriptionStatus) ([]*model.Prescription, error)
	Mutate(ctx context.Context, id string, fn func(*model.Prescription) error) (*model.Prescription, error)
}

type StaffRepository interface {
	// Create rejects a duplicate license number.
	Create(ctx context.Context, staff *model.Staff) error
	Get(ctx context.Context, id string) (*model.Staff, error)
	List(ctx context.Context) ([]*model.Staff, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]*model.Staff, error)
	CountByDepartment(ctx context.Context, departmentID string) (int, error)
	Mutate(ctx context.Context, id string, fn func(*model.Staff) error) (*model.Staff, error)
}

type DepartmentRepository interface {
	Create(ctx context.Context, department *model.Department) error
	Get(ctx context.Context, id string) (*model.Department, error)
	List(ctx context.Context) ([]*model.Department, error)
}

type BillRepository interface {
	Create(ctx context.Context, bill *model.Bill) error
	Get(ctx context.Context, id string) (*model.Bill, error)
	List(ctx context.Context) ([]*model.Bill, error)
	ListByPatient(ctx context.Context, patientID string) ([]*model.Bill, error)
	Mutate(ctx context.Context, id string, fn func(*model.Bill) error) (*model.Bill, error)
}

type InventoryRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	Get(ctx context.Context, id string) (*model.InventoryItem, error)
	List(ctx context.Context) ([]*model.InventoryItem, error)
	Mutate(ctx context.Context, id string, fn func(*model.InventoryItem) error) (*model.InventoryItem, error)
}
