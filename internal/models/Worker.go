package models

import (
	"time"

	"gorm.io/gorm"
)

// Worker is one migrant worker's digital health record. Created on first
// profile submission, updated in place, never deleted in-app.
type Worker struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	// HealthID is the human-presentable identifier printed on the worker's
	// card and encoded into the QR code. Shape WH-XXXX-00000000.
	HealthID  string `json:"health_id" gorm:"uniqueIndex"`
	QRPayload string `json:"qr_payload"`

	// Identity
	FullName    string     `json:"full_name" binding:"required"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      string     `json:"gender"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	District    string     `json:"district"`     // current district in Kerala
	OriginState string     `json:"origin_state"` // home state

	// Occupation
	Occupation      string `json:"occupation"`
	EmployerName    string `json:"employer_name"`
	WorkSiteAddress string `json:"work_site_address"`

	// Health. ChronicDiseases keeps the original comma-joined encoding.
	BloodGroup        string `json:"blood_group"`
	Allergies         string `json:"allergies"`
	ChronicDiseases   string `json:"chronic_diseases"`
	VaccinationStatus string `json:"vaccination_status"` // "none", "partial", "full"

	Reports []MedicalReport `gorm:"foreignKey:WorkerHealthID;references:HealthID" json:"reports,omitempty"`
}

// TableName keeps the table the frontend has always queried.
func (Worker) TableName() string {
	return "workers_data"
}
