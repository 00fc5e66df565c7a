package model

import "time"

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

type Patient struct {
	ID          string        `db:"id" json:"id"`
	Name        string        `db:"name" json:"name"`
	DOB         string        `db:"dob" json:"dob"`
	Contact     string        `db:"contact" json:"contact"`
	InsuranceID string        `db:"insurance_id" json:"insurance_id"`
	Status      PatientStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

type CreatePatientRequest struct {
	Name        string `json:"name" binding:"required"`
	DOB         string `json:"dob" binding:"required,datetime=2006-01-02"`
	Contact     string `json:"contact" binding:"required"`
	InsuranceID string `json:"insurance_id" binding:"required"`
}
