package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS id_sequences (
		prefix TEXT PRIMARY KEY,
		value BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS patients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		dob TEXT NOT NULL,
		contact TEXT NOT NULL,
		insurance_id TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id TEXT PRIMARY KEY,
		patient_id TEXT NOT NULL REFERENCES patients(id),
		doctor_id TEXT NOT NULL,
		scheduled_time TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_doctor ON appointments(doctor_id, scheduled_time)`,
	`CREATE TABLE IF NOT EXISTS medical_records (
		id TEXT PRIMARY KEY,
		patient_id TEXT NOT NULL REFERENCES patients(id),
		diagnosis TEXT NOT NULL,
		treatment TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (patient_id, version)
	)`,
	`CREATE TABLE IF NOT EXISTS prescriptions (
		id TEXT PRIMARY KEY,
		patient_id TEXT NOT NULL REFERENCES patients(id),
		doctor_id TEXT NOT NULL,
		medication TEXT NOT NULL,
		dosage TEXT NOT NULL,
		frequency TEXT NOT NULL,
		duration TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_prescriptions_patient ON prescriptions(patient_id)`,
	`CREATE TABLE IF NOT EXISTS staff (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		specialization TEXT NOT NULL,
		license_number TEXT NOT NULL UNIQUE,
		department TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_staff_department ON staff(department)`,
	`CREATE TABLE IF NOT EXISTS departments (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		head_of_dept_id TEXT NOT NULL,
		budget_allocation NUMERIC(12,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bills (
		id TEXT PRIMARY KEY,
		patient_id TEXT NOT NULL REFERENCES patients(id),
		amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
		description TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bills_patient ON bills(patient_id)`,
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity >= 0),
		unit_cost NUMERIC(12,2) NOT NULL CHECK (unit_cost >= 0),
		expiration_date TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
