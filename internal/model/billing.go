package model

import "time"

type BillStatus string

const (
	BillStatusPending BillStatus = "pending"
	BillStatusPaid    BillStatus = "paid"
)

type Bill struct {
	ID          string     `db:"id" json:"id"`
	PatientID   string     `db:"patient_id" json:"patient_id"`
	Amount      float64    `db:"amount" json:"amount"`
	Description string     `db:"description" json:"description"`
	Status      BillStatus `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

type CreateBillRequest struct {
	PatientID   string  `json:"patient_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required"`
}

// PatientBilling is the billing summary for one patient. Total is derived
// from the listed bills at query time.
type PatientBilling struct {
	Bills []*Bill `json:"bills"`
	Total float64 `json:"total"`
}

type PatientBalance struct {
	PatientID string  `json:"patient_id"`
	Balance   float64 `json:"balance"`
}
