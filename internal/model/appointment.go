package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID            string            `db:"id" json:"id"`
	PatientID     string            `db:"patient_id" json:"patient_id"`
	DoctorID      string            `db:"doctor_id" json:"doctor_id"`
	ScheduledTime string            `db:"scheduled_time" json:"scheduled_time"`
	Status        AppointmentStatus `db:"status" json:"status"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}

type CreateAppointmentRequest struct {
	PatientID     string `json:"patient_id" binding:"required"`
	DoctorID      string `json:"doctor_id" binding:"required"`
	ScheduledTime string `json:"scheduled_time" binding:"required,datetime=2006-01-02 15:04"`
}

// BookedSlots lists the times a doctor already has scheduled appointments at.
type BookedSlots struct {
	DoctorID    string   `json:"doctor_id"`
	BookedTimes []string `json:"booked_times"`
}
