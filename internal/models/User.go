package models

import "gorm.io/gorm"

// Role values stored on User. Anything unrecognized is treated as
// RoleWorker, the least-privileged role.
const (
	RoleWorker = "worker"
	RoleDoctor = "doctor"
	RoleAdmin  = "admin"
)

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Role     string `json:"role"` // "worker", "doctor", "admin"

	// A worker user owns at most one health record.
	Worker *Worker `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"worker,omitempty"`
}
