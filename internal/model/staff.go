package model

import "time"

type StaffRole string

const (
	StaffRoleDoctor     StaffRole = "doctor"
	StaffRoleNurse      StaffRole = "nurse"
	StaffRoleTechnician StaffRole = "technician"
	StaffRoleAdmin      StaffRole = "admin"
)

type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "active"
	StaffStatusInactive StaffStatus = "inactive"
)

type Staff struct {
	ID             string      `db:"id" json:"id"`
	Name           string      `db:"name" json:"name"`
	Role           StaffRole   `db:"role" json:"role"`
	Specialization string      `db:"specialization" json:"specialization"`
	LicenseNumber  string      `db:"license_number" json:"license_number"`
	Department     string      `db:"department" json:"department"`
	Status         StaffStatus `db:"status" json:"status"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
}

type CreateStaffRequest struct {
	Name           string `json:"name" binding:"required"`
	Role           string `json:"role" binding:"required,oneof=doctor nurse technician admin"`
	Specialization string `json:"specialization" binding:"required"`
	LicenseNumber  string `json:"license_number" binding:"required"`
	Department     string `json:"department"`
}

type UpdateStaffRequest struct {
	Name           *string `json:"name"`
	Role           *string `json:"role" binding:"omitempty,oneof=doctor nurse technician admin"`
	Specialization *string `json:"specialization"`
	Department     *string `json:"department"`
	Status         *string `json:"status" binding:"omitempty,oneof=active inactive"`
}
