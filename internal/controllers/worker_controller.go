package controllers

import (
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/sirupsen/logrus"

	"jeevanid/internal/config"
	"jeevanid/internal/healthid"
	"jeevanid/internal/lang"
	"jeevanid/internal/middleware"
	"jeevanid/internal/models"
)

// phonePattern accepts Indian mobile numbers with an optional +91 prefix.
var phonePattern = regexp.MustCompile(`^(\+91[\-\s]?)?[6-9]\d{9}$`)

func validPhone(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}

// cardBaseURL is where a scanned QR code lands. Overridable so staging
// cards do not point at production.
func cardBaseURL() string {
	if v := os.Getenv("CARD_BASE_URL"); v != "" {
		return v
	}
	return "https://jeevanid.kerala.gov.in/worker"
}

type createWorkerInput struct {
	HealthID          string `json:"health_id"` // optional, derived when absent
	FullName          string `json:"full_name" binding:"required"`
	DateOfBirth       string `json:"date_of_birth"` // 2006-01-02
	Gender            string `json:"gender"`
	Phone             string `json:"phone" binding:"required"`
	Address           string `json:"address"`
	District          string `json:"district"`
	OriginState       string `json:"origin_state"`
	Occupation        string `json:"occupation"`
	EmployerName      string `json:"employer_name"`
	WorkSiteAddress   string `json:"work_site_address"`
	BloodGroup        string `json:"blood_group"`
	Allergies         string `json:"allergies"`
	ChronicDiseases   string `json:"chronic_diseases"`
	VaccinationStatus string `json:"vaccination_status"`
}

// CreateWorkerProfile registers the authenticated user's health record.
// The health ID is derived locally from the user reference, so the ID a
// worker saw on their card before first submission matches what is stored.
func CreateWorkerProfile(c *gin.Context) {
	userID := middleware.UserID(c)

	var input createWorkerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validPhone(input.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone number"})
		return
	}

	var dob *time.Time
	if input.DateOfBirth != "" {
		t, err := time.Parse("2006-01-02", input.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_of_birth, expected YYYY-MM-DD"})
			return
		}
		dob = &t
	}

	// Workers migrating a pre-issued card keep their printed ID; otherwise
	// the ID is derived from the user reference only, so the ID shown on
	// the card before the first write matches what gets stored.
	hid := healthid.Normalize(input.HealthID)
	if hid != "" && !healthid.Valid(hid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid health ID format"})
		return
	}
	if hid == "" {
		hid = healthid.Generate(fmt.Sprintf("user_%d", userID))
	}
	worker := models.Worker{
		UserID:            userID,
		HealthID:          hid,
		QRPayload:         fmt.Sprintf("%s/%s", cardBaseURL(), hid),
		FullName:          input.FullName,
		DateOfBirth:       dob,
		Gender:            input.Gender,
		Phone:             input.Phone,
		Address:           input.Address,
		District:          input.District,
		OriginState:       input.OriginState,
		Occupation:        input.Occupation,
		EmployerName:      input.EmployerName,
		WorkSiteAddress:   input.WorkSiteAddress,
		BloodGroup:        input.BloodGroup,
		Allergies:         input.Allergies,
		ChronicDiseases:   input.ChronicDiseases,
		VaccinationStatus: input.VaccinationStatus,
	}

	if err := config.DB.Create(&worker).Error; err != nil {
		respondDBError(c, err, "worker not found", "a health record already exists for this account")
		return
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"health_id": worker.HealthID,
	}).Info("Worker health record created")

	c.JSON(http.StatusCreated, gin.H{"worker": worker})
}

// GetMyProfile returns the caller's health record.
func GetMyProfile(c *gin.Context) {
	userID := middleware.UserID(c)

	var worker models.Worker
	if err := config.DB.Where("user_id = ?", userID).First(&worker).Error; err != nil {
		respondDBError(c, err, "no health record yet, please register first", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"worker": worker})
}

// updateWorkerInput uses pointer fields so callers can send only what
// changed.
type updateWorkerInput struct {
	FullName          *string `json:"full_name"`
	Gender            *string `json:"gender"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	District          *string `json:"district"`
	OriginState       *string `json:"origin_state"`
	Occupation        *string `json:"occupation"`
	EmployerName      *string `json:"employer_name"`
	WorkSiteAddress   *string `json:"work_site_address"`
	BloodGroup        *string `json:"blood_group"`
	Allergies         *string `json:"allergies"`
	ChronicDiseases   *string `json:"chronic_diseases"`
	VaccinationStatus *string `json:"vaccination_status"`
}

// UpdateMyProfile applies a partial update to the caller's health record.
// HealthID and QRPayload are never client-writable.
func UpdateMyProfile(c *gin.Context) {
	userID := middleware.UserID(c)

	var worker models.Worker
	if err := config.DB.Where("user_id = ?", userID).First(&worker).Error; err != nil {
		respondDBError(c, err, "no health record yet, please register first", "")
		return
	}

	var input updateWorkerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Phone != nil && !validPhone(*input.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone number"})
		return
	}

	if input.FullName != nil {
		worker.FullName = *input.FullName
	}
	if input.Gender != nil {
		worker.Gender = *input.Gender
	}
	if input.Phone != nil {
		worker.Phone = *input.Phone
	}
	if input.Address != nil {
		worker.Address = *input.Address
	}
	if input.District != nil {
		worker.District = *input.District
	}
	if input.OriginState != nil {
		worker.OriginState = *input.OriginState
	}
	if input.Occupation != nil {
		worker.Occupation = *input.Occupation
	}
	if input.EmployerName != nil {
		worker.EmployerName = *input.EmployerName
	}
	if input.WorkSiteAddress != nil {
		worker.WorkSiteAddress = *input.WorkSiteAddress
	}
	if input.BloodGroup != nil {
		worker.BloodGroup = *input.BloodGroup
	}
	if input.Allergies != nil {
		worker.Allergies = *input.Allergies
	}
	if input.ChronicDiseases != nil {
		worker.ChronicDiseases = *input.ChronicDiseases
	}
	if input.VaccinationStatus != nil {
		worker.VaccinationStatus = *input.VaccinationStatus
	}

	if err := config.DB.Save(&worker).Error; err != nil {
		respondDBError(c, err, "worker not found", "duplicate health record")
		return
	}
	c.JSON(http.StatusOK, gin.H{"worker": worker})
}

// GetMyReports lists the caller's medical reports, newest first.
func GetMyReports(c *gin.Context) {
	userID := middleware.UserID(c)

	var worker models.Worker
	if err := config.DB.Where("user_id = ?", userID).First(&worker).Error; err != nil {
		respondDBError(c, err, "no health record yet, please register first", "")
		return
	}

	var reports []models.MedicalReport
	if err := config.DB.Where("worker_health_id = ?", worker.HealthID).
		Order("created_at DESC").Find(&reports).Error; err != nil {
		respondDBError(c, err, "no reports found", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reports})
}

// GetMyQRCode renders the caller's health ID card URL as a QR PNG.
func GetMyQRCode(c *gin.Context) {
	userID := middleware.UserID(c)

	var worker models.Worker
	if err := config.DB.Where("user_id = ?", userID).First(&worker).Error; err != nil {
		respondDBError(c, err, "no health record yet, please register first", "")
		return
	}

	png, err := qrcode.Encode(worker.QRPayload, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

type riskInput struct {
	Age      int      `json:"age"`
	Symptoms []string `json:"symptoms"`
	Language string   `json:"language"`
}

var highRiskSymptoms = map[string]bool{
	"persistent_cough": true,
	"blood_in_sputum":  true,
	"chest_pain":       true,
	"breathlessness":   true,
	"high_fever":       true,
}

// RiskAssessment scores the caller's health risk from their stored record
// plus reported symptoms and returns a localized recommendation.
func RiskAssessment(c *gin.Context) {
	userID := middleware.UserID(c)

	var input riskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var worker models.Worker
	if err := config.DB.Where("user_id = ?", userID).First(&worker).Error; err != nil {
		respondDBError(c, err, "no health record yet, please register first", "")
		return
	}

	score, level := computeRiskScore(input.Age, worker.ChronicDiseases, worker.VaccinationStatus, input.Symptoms)

	c.JSON(http.StatusOK, gin.H{
		"level":  level,
		"score":  score,
		"advice": lang.T(input.Language, "risk_"+level),
	})
}

// computeRiskScore turns age, stored health attributes and reported
// symptoms into a score and a band of "low", "moderate" or "high".
func computeRiskScore(age int, chronicDiseases, vaccinationStatus string, symptoms []string) (int, string) {
	score := 0
	if age >= 60 {
		score += 2
	} else if age >= 45 {
		score++
	}
	if chronicDiseases != "" {
		score += len(strings.Split(chronicDiseases, ","))
	}
	switch vaccinationStatus {
	case "none":
		score += 2
	case "partial":
		score++
	}
	for _, s := range symptoms {
		if highRiskSymptoms[strings.ToLower(strings.TrimSpace(s))] {
			score += 2
		} else if strings.TrimSpace(s) != "" {
			score++
		}
	}

	switch {
	case score >= 6:
		return score, "high"
	case score >= 3:
		return score, "moderate"
	default:
		return score, "low"
	}
}
