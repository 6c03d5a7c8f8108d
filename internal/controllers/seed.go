package controllers

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"jeevanid/internal/models"
)

type seedCenter struct {
	name, category, address, district, phone, hours, services string
	lat, lng                                                  float64
}

// A starter facility directory so the locator works out of the box.
// Admins extend it through POST /admin/health-centers.
var seedCenters = []seedCenter{
	{"General Hospital Ernakulam", "District Hospital", "Hospital Road, Ernakulam", "Ernakulam", "0484-2361251", "24x7", "emergency,opd,pharmacy,lab", 9.9816, 76.2822},
	{"PHC Kakkanad", "PHC", "Civic Center Road, Kakkanad", "Ernakulam", "0484-2422365", "9am-5pm", "opd,immunization", 10.0159, 76.3419},
	{"CHC Perumbavoor", "CHC", "Main Road, Perumbavoor", "Ernakulam", "0484-2522530", "8am-8pm", "opd,maternity,lab", 10.1077, 76.4740},
	{"Government Medical College Kozhikode", "Medical College", "Medical College PO, Kozhikode", "Kozhikode", "0495-2350216", "24x7", "emergency,opd,surgery,lab,pharmacy", 11.2723, 75.8342},
	{"Taluk Hospital Aluva", "Taluk Hospital", "Railway Station Road, Aluva", "Ernakulam", "0484-2624372", "24x7", "emergency,opd,maternity", 10.1081, 76.3522},
	{"General Hospital Thiruvananthapuram", "District Hospital", "Vanchiyoor, Thiruvananthapuram", "Thiruvananthapuram", "0471-2307874", "24x7", "emergency,opd,lab,pharmacy", 8.4943, 76.9404},
	{"PHC Kalamassery", "PHC", "HMT Road, Kalamassery", "Ernakulam", "0484-2532281", "9am-5pm", "opd,immunization", 10.0548, 76.3222},
	{"District Hospital Palakkad", "District Hospital", "Court Road, Palakkad", "Palakkad", "0491-2505566", "24x7", "emergency,opd,maternity,lab", 10.7752, 76.6537},
}

// SeedHealthCenters populates the facility table on first boot. Existing
// rows are left alone.
func SeedHealthCenters(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.HealthCenter{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, s := range seedCenters {
		wkbGeom, err := pointToWKB(s.lng, s.lat)
		if err != nil {
			return err
		}
		center := models.HealthCenter{
			Name:      s.name,
			Category:  s.category,
			Address:   s.address,
			District:  s.district,
			Phone:     s.phone,
			OpenHours: s.hours,
			Services:  s.services,
			Geometry:  wkbGeom,
		}
		if err := db.Create(&center).Error; err != nil {
			return err
		}
	}
	logrus.WithField("count", len(seedCenters)).Info("Seeded health center directory")
	return nil
}
