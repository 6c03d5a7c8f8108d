package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte(getJWTSecret())

func getJWTSecret() string {
	if val := os.Getenv("JWT_SECRET"); val != "" {
		return val
	}
	return "supersecret" // fallback
}

// Claims are the decoded token claims downstream handlers rely on.
// HealthID is only present on link tokens issued by the OTP flow.
type Claims struct {
	UserID   uint
	Role     string
	HealthID string
}

func GenerateToken(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// GenerateShortToken issues a token with a short lifetime, used by the OTP
// flow before the worker record is linked to a full account.
func GenerateShortToken(userID uint, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// GenerateLinkToken issues a short-lived token that carries the health ID
// the OTP flow verified. Linking a worker record requires this claim, so a
// plain session token can never attach someone else's record.
func GenerateLinkToken(userID uint, healthID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   userID,
		"role":      "worker",
		"health_id": healthID,
		"exp":       time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates a token string, returning the typed
// claims. The role claim defaults to the least-privileged role when absent
// or malformed.
func ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	out := &Claims{Role: "worker"}
	if id, ok := mapClaims["user_id"].(float64); ok {
		out.UserID = uint(id)
	} else {
		return nil, errors.New("missing user_id claim")
	}
	if role, ok := mapClaims["role"].(string); ok && role != "" {
		out.Role = role
	}
	if hid, ok := mapClaims["health_id"].(string); ok {
		out.HealthID = hid
	}
	return out, nil
}

// RequireAuth ensures a valid JWT is present
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// Store claims in context for downstream handlers. No c.Next()
		// here: gin continues the chain on return, and an explicit Next
		// would run the protected handler before a wrapping role check
		// gets a chance to abort.
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		if claims.HealthID != "" {
			c.Set("health_id", claims.HealthID)
		}
	}
}

// RequireAuthWithRole ensures the JWT is valid and the user has a specific role
func RequireAuthWithRole(requiredRole string) gin.HandlerFunc {
	authenticate := RequireAuth()
	return func(c *gin.Context) {
		// First ensure basic auth
		authenticate(c)
		if c.IsAborted() {
			return
		}

		// Check role before the rest of the chain runs
		roleIfc, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role not found in token"})
			return
		}
		if role, ok := roleIfc.(string); !ok || role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
	}
}

// UserID extracts the authenticated user's ID from the gin context.
func UserID(c *gin.Context) uint {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// VerifiedHealthID returns the health ID the caller's token was issued
// for, or "" when the token did not come from the OTP verify step.
func VerifiedHealthID(c *gin.Context) string {
	if v, ok := c.Get("health_id"); ok {
		if hid, ok := v.(string); ok {
			return hid
		}
	}
	return ""
}
