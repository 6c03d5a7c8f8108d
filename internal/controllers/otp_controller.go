package controllers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"jeevanid/internal/config"
	"jeevanid/internal/healthid"
	"jeevanid/internal/middleware"
	"jeevanid/internal/models"
)

// Legacy email+OTP sign-in for workers who registered before account-based
// auth existed. Codes live in Redis with a short TTL; verification issues a
// short-lived token that only allows linking the record to a full account.
const (
	otpTTL         = 5 * time.Minute
	otpMaxAttempts = 5
	otpLinkTTL     = 15 * time.Minute
)

func otpKey(email string) string {
	return "otp:" + strings.ToLower(strings.TrimSpace(email))
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

type otpRequestInput struct {
	Email    string `json:"email" binding:"required,email"`
	HealthID string `json:"health_id" binding:"required"`
}

// RequestOTP issues a sign-in code for a worker identified by email plus
// health ID. The response is the same whether or not the worker exists, so
// the endpoint cannot be used to probe for records.
func RequestOTP(c *gin.Context) {
	var input otpRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rdb := config.GetRedisClient()
	if rdb == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "OTP sign-in is temporarily unavailable"})
		return
	}

	hid := healthid.Normalize(input.HealthID)
	genericOK := gin.H{"message": "If the details match a record, a sign-in code has been sent"}

	if !healthid.Valid(hid) {
		c.JSON(http.StatusOK, genericOK)
		return
	}

	var worker models.Worker
	if err := config.DB.Where("health_id = ?", hid).First(&worker).Error; err != nil {
		c.JSON(http.StatusOK, genericOK)
		return
	}

	code, err := generateOTPCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue code"})
		return
	}

	ctx := c.Request.Context()
	key := otpKey(input.Email)
	if err := rdb.HSet(ctx, key, "code", code, "health_id", hid, "attempts", 0).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue code"})
		return
	}
	rdb.Expire(ctx, key, otpTTL)

	// Mail delivery is handled by an external relay; the code is logged for
	// the operator until that integration lands.
	logrus.WithFields(logrus.Fields{
		"email":     input.Email,
		"health_id": hid,
	}).Info("OTP issued for worker sign-in")

	c.JSON(http.StatusOK, genericOK)
}

type otpVerifyInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// VerifyOTP validates a code and returns a short-lived link token.
func VerifyOTP(c *gin.Context) {
	var input otpVerifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rdb := config.GetRedisClient()
	if rdb == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "OTP sign-in is temporarily unavailable"})
		return
	}

	ctx := c.Request.Context()
	key := otpKey(input.Email)

	stored, err := rdb.HGetAll(ctx, key).Result()
	if err != nil && err != redis.Nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not verify code"})
		return
	}
	if len(stored) == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "code expired or never issued"})
		return
	}

	attempts, _ := rdb.HIncrBy(ctx, key, "attempts", 1).Result()
	if attempts > otpMaxAttempts {
		rdb.Del(ctx, key)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, request a new code"})
		return
	}

	if stored["code"] != input.Code {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect code"})
		return
	}

	hid := stored["health_id"]
	rdb.Del(ctx, key)

	var worker models.Worker
	if err := config.DB.Where("health_id = ?", hid).First(&worker).Error; err != nil {
		respondDBError(c, err, "no worker record found for this health ID", "")
		return
	}

	// The link token carries the verified health ID; LinkWorker will only
	// attach the record this code was actually checked against.
	token, err := middleware.GenerateLinkToken(worker.UserID, hid, otpLinkTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"health_id": hid,
	})
}

type linkWorkerInput struct {
	HealthID string `json:"health_id" binding:"required"`
}

// LinkWorker attaches an unowned worker record to the authenticated user.
// Used once per worker when migrating off the OTP-only flow. The caller's
// token must come from VerifyOTP and name the same health ID as the body;
// a plain session token cannot claim arbitrary records.
func LinkWorker(c *gin.Context) {
	userID := middleware.UserID(c)

	verifiedHID := middleware.VerifiedHealthID(c)
	if verifiedHID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "OTP verification is required before linking a record"})
		return
	}

	var input linkWorkerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hid := healthid.Normalize(input.HealthID)
	if hid != verifiedHID {
		c.JSON(http.StatusForbidden, gin.H{"error": "health ID does not match the verified code"})
		return
	}

	var worker models.Worker
	if err := config.DB.Where("health_id = ?", hid).First(&worker).Error; err != nil {
		respondDBError(c, err, "no worker record found for this health ID", "")
		return
	}

	if worker.UserID != 0 && worker.UserID != userID {
		c.JSON(http.StatusConflict, gin.H{"error": "this health record is already linked to another account"})
		return
	}

	worker.UserID = userID
	if err := config.DB.Save(&worker).Error; err != nil {
		respondDBError(c, err, "worker not found", "this health record is already linked to another account")
		return
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"health_id": hid,
	}).Info("Worker record linked to account")

	c.JSON(http.StatusOK, gin.H{"worker": worker})
}
