package model

import "time"

// MedicalRecord entries are append-only: no in-place edits, no deletions.
// Version is a per-patient monotonic counter starting at 1.
type MedicalRecord struct {
	ID        string    `db:"id" json:"id"`
	PatientID string    `db:"patient_id" json:"patient_id"`
	Diagnosis string    `db:"diagnosis" json:"diagnosis"`
	Treatment string    `db:"treatment" json:"treatment"`
	Notes     string    `db:"notes" json:"notes"`
	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateMedicalRecordRequest struct {
	PatientID string `json:"patient_id" binding:"required"`
	Diagnosis string `json:"diagnosis" binding:"required"`
	Treatment string `json:"treatment" binding:"required"`
	Notes     string `json:"notes"`
}
