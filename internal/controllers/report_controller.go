package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"jeevanid/internal/config"
	"jeevanid/internal/healthid"
	"jeevanid/internal/middleware"
	"jeevanid/internal/models"
)

// SearchWorkers lets a doctor find workers by health ID, name or phone.
func SearchWorkers(c *gin.Context) {
	keyword := c.Query("keyword")
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := config.DB.Model(&models.Worker{}).Order("created_at DESC").Limit(limit)
	if offset > 0 {
		query = query.Offset(offset)
	}
	if keyword != "" {
		kw := "%" + keyword + "%"
		query = query.Where("health_id ILIKE ? OR full_name ILIKE ? OR phone LIKE ?", kw, kw, kw)
	}

	var workers []models.Worker
	if err := query.Find(&workers).Error; err != nil {
		respondDBError(c, err, "no workers found", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(workers),
		"data": lo.Map(workers, func(w models.Worker, _ int) gin.H {
			return gin.H{
				"health_id":   w.HealthID,
				"full_name":   w.FullName,
				"gender":      w.Gender,
				"district":    w.District,
				"phone":       w.Phone,
				"blood_group": w.BloodGroup,
			}
		}),
	})
}

// GetWorkerByHealthID returns a worker's full record plus report history.
func GetWorkerByHealthID(c *gin.Context) {
	hid := healthid.Normalize(c.Param("healthID"))
	if !healthid.Valid(hid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid health ID format"})
		return
	}

	var worker models.Worker
	if err := config.DB.Preload("Reports", func(db *gorm.DB) *gorm.DB {
		return db.Order("medical_reports.created_at DESC")
	}).Where("health_id = ?", hid).First(&worker).Error; err != nil {
		respondDBError(c, err, "no worker record found for this health ID", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"worker": worker})
}

type createReportInput struct {
	WorkerHealthID string `json:"worker_health_id" binding:"required"`
	Diagnosis      string `json:"diagnosis" binding:"required"`
	Treatment      string `json:"treatment"`
	Notes          string `json:"notes"`
	FollowUpDate   string `json:"follow_up_date"` // 2006-01-02
}

// CreateMedicalReport records a doctor's note against a worker's health ID.
func CreateMedicalReport(c *gin.Context) {
	doctorID := middleware.UserID(c)

	var input createReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hid := healthid.Normalize(input.WorkerHealthID)
	if !healthid.Valid(hid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid health ID format"})
		return
	}

	var worker models.Worker
	if err := config.DB.Where("health_id = ?", hid).First(&worker).Error; err != nil {
		respondDBError(c, err, "no worker record found for this health ID", "")
		return
	}

	var doctor models.User
	if err := config.DB.First(&doctor, doctorID).Error; err != nil {
		respondDBError(c, err, "doctor account not found", "")
		return
	}

	var followUp *time.Time
	if input.FollowUpDate != "" {
		t, err := time.Parse("2006-01-02", input.FollowUpDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid follow_up_date, expected YYYY-MM-DD"})
			return
		}
		followUp = &t
	}

	report := models.MedicalReport{
		ReportID:       uuid.NewString(),
		WorkerHealthID: hid,
		DoctorID:       doctorID,
		DoctorName:     doctor.Name,
		Diagnosis:      input.Diagnosis,
		Treatment:      input.Treatment,
		Notes:          input.Notes,
		FollowUpDate:   followUp,
	}
	if err := config.DB.Create(&report).Error; err != nil {
		respondDBError(c, err, "worker not found", "duplicate report")
		return
	}

	logrus.WithFields(logrus.Fields{
		"report_id": report.ReportID,
		"health_id": hid,
		"doctor_id": doctorID,
	}).Info("Medical report submitted")

	c.JSON(http.StatusCreated, gin.H{"report": report})
}

// ListWorkers is an admin endpoint returning every health record.
func ListWorkers(c *gin.Context) {
	var workers []models.Worker
	if err := config.DB.Find(&workers).Error; err != nil {
		respondDBError(c, err, "no workers found", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": workers})
}

// ListReports is an admin endpoint returning every medical report.
func ListReports(c *gin.Context) {
	var reports []models.MedicalReport
	if err := config.DB.Order("created_at DESC").Find(&reports).Error; err != nil {
		respondDBError(c, err, "no reports found", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reports})
}
