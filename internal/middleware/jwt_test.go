package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "doctor")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "doctor" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestExpiredShortToken(t *testing.T) {
	token, err := GenerateShortToken(7, "worker", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateShortToken: %v", err)
	}
	if _, err := ValidateToken(token); err == nil {
		t.Fatalf("expected expired token to fail validation")
	}
}

func TestValidateGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestRequireAuthWithRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlerRan := false
	r.GET("/doctor-only", RequireAuthWithRole("doctor"), func(c *gin.Context) {
		handlerRan = true
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})

	// No header
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/doctor-only", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: status %d, want 401", w.Code)
	}

	// Wrong role: the handler must not execute at all
	workerToken, _ := GenerateToken(1, "worker")
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/doctor-only", nil)
	req.Header.Set("Authorization", "Bearer "+workerToken)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("wrong role: status %d, want 403", w.Code)
	}
	if handlerRan {
		t.Fatalf("handler ran despite insufficient role")
	}

	// Right role
	doctorToken, _ := GenerateToken(9, "doctor")
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/doctor-only", nil)
	req.Header.Set("Authorization", "Bearer "+doctorToken)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("doctor token: status %d, want 200", w.Code)
	}
	if !handlerRan {
		t.Fatalf("handler did not run for the correct role")
	}
}

func TestLinkTokenCarriesHealthID(t *testing.T) {
	token, err := GenerateLinkToken(7, "WH-USER-00000042", time.Minute)
	if err != nil {
		t.Fatalf("GenerateLinkToken: %v", err)
	}
	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 || claims.Role != "worker" || claims.HealthID != "WH-USER-00000042" {
		t.Fatalf("claims = %+v", claims)
	}

	// Session tokens carry no health ID
	session, _ := GenerateToken(7, "worker")
	claims, err = ValidateToken(session)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.HealthID != "" {
		t.Fatalf("session token should not carry a health ID, got %q", claims.HealthID)
	}
}
