package model

import "time"

type PrescriptionStatus string

const (
	PrescriptionStatusActive    PrescriptionStatus = "active"
	PrescriptionStatusFilled    PrescriptionStatus = "filled"
	PrescriptionStatusExpired   PrescriptionStatus = "expired"
	PrescriptionStatusCancelled PrescriptionStatus = "cancelled"
)

type Prescription struct {
	ID         string             `db:"id" json:"id"`
	PatientID  string             `db:"patient_id" json:"patient_id"`
	DoctorID   string             `db:"doctor_id" json:"doctor_id"`
	Medication string             `db:"medication" json:"medication"`
	Dosage     string             `db:"dosage" json:"dosage"`
	Frequency  string             `db:"frequency" json:"frequency"`
	Duration   string             `db:"duration" json:"duration"`
	Status     PrescriptionStatus `db:"status" json:"status"`
	CreatedAt  time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `db:"updated_at" json:"updated_at"`
}

type CreatePrescriptionRequest struct {
	PatientID  string `json:"patient_id" binding:"required"`
	DoctorID   string `json:"doctor_id" binding:"required"`
	Medication string `json:"medication" binding:"required"`
	Dosage     string `json:"dosage" binding:"required"`
	Frequency  string `json:"frequency" binding:"required"`
	Duration   string `json:"duration" binding:"required"`
}

type UpdatePrescriptionStatusRequest struct {
	Status PrescriptionStatus `json:"status" binding:"required,oneof=active filled cancelled expired"`
}
