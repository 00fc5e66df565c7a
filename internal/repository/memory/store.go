// Package memory implements the repository interfaces over in-process
// keyed collections. It is the single source of truth for entity records:
// every collection is guarded by its own RWMutex (writes to one record type
// are serialized, reads run concurrently), and the relationship indexes
// (patient->records, patient->prescriptions, department->staff) are
// maintained inside the same critical sections that mutate the owning
// collection, so they can never diverge from the foreign-key fields.
package memory

import (
	"sync"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/pkg/idgen"
)

type Store struct {
	ids *idgen.Generator

	muPatients   sync.RWMutex
	patients     map[string]*model.Patient
	patientOrder []string

	muAppointments   sync.RWMutex
	appointments     map[string]*model.Appointment
	appointmentOrder []string

	muRecords        sync.RWMutex
	records          map[string]*model.MedicalRecord
	recordsByPatient map[string][]string

	muPrescriptions        sync.RWMutex
	prescriptions          map[string]*model.Prescription
	prescriptionOrder      []string
	prescriptionsByPatient map[string][]string

	muStaff           sync.RWMutex
	staff             map[string]*model.Staff
	staffOrder        []string
	staffByDepartment map[string][]string
	licenses          map[string]string

	muDepartments   sync.RWMutex
	departments     map[string]*model.Department
	departmentOrder []string

	muBills        sync.RWMutex
	bills          map[string]*model.Bill
	billOrder      []string
	billsByPatient map[string][]string

	muInventory    sync.RWMutex
	inventory      map[string]*model.InventoryItem
	inventoryOrder []string
}

func NewStore() *Store {
	return &Store{
		ids:                    idgen.New(),
		patients:               make(map[string]*model.Patient),
		appointments:           make(map[string]*model.Appointment),
		records:                make(map[string]*model.MedicalRecord),
		recordsByPatient:       make(map[string][]string),
		prescriptions:          make(map[string]*model.Prescription),
		prescriptionsByPatient: make(map[string][]string),
		staff:                  make(map[string]*model.Staff),
		staffByDepartment:      make(map[string][]string),
		licenses:               make(map[string]string),
		departments:            make(map[string]*model.Department),
		bills:                  make(map[string]*model.Bill),
		billsByPatient:         make(map[string][]string),
		inventory:              make(map[string]*model.InventoryItem),
	}
}

// clone returns a copy so callers never hold a pointer into the store.
func clone[T any](v *T) *T {
	c := *v
	return &c
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
