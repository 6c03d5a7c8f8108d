package models

import (
	"time"

	"gorm.io/gorm"
)

// MedicalReport is a doctor-authored note tied to a worker's health ID.
// Reports are insert-only: never edited or deleted in-app.
type MedicalReport struct {
	gorm.Model
	ReportID       string `json:"report_id" gorm:"uniqueIndex"` // uuid
	WorkerHealthID string `json:"worker_health_id" gorm:"index"`
	DoctorID       uint   `json:"doctor_id" gorm:"index"`
	Doctor         User   `gorm:"foreignKey:DoctorID" json:"-"`
	DoctorName     string `json:"doctor_name"`

	Diagnosis    string     `json:"diagnosis" binding:"required"`
	Treatment    string     `json:"treatment"`
	Notes        string     `json:"notes"`
	FollowUpDate *time.Time `json:"follow_up_date"`
}

func (MedicalReport) TableName() string {
	return "medical_reports"
}
