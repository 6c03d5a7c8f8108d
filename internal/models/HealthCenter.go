package models

import (
	"gorm.io/gorm"
)

// HealthCenter is a government health facility a worker can be directed to.
// The locator sorts these by distance from the caller's position.
type HealthCenter struct {
	gorm.Model
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category"` // "PHC", "CHC", "Taluk Hospital", "District Hospital", "Medical College"
	Address   string `json:"address"`
	District  string `json:"district"`
	Phone     string `json:"phone"`
	OpenHours string `json:"open_hours"`
	Services  string `json:"services"` // comma-joined service list

	// Location stored as a WKB-encoded point (SRID 4326 semantics).
	// API input/output uses GeoJSON; conversion lives in the controller.
	Geometry []byte `gorm:"type:bytea" json:"-"`
}
