package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Postgres error codes the handlers recognize. Everything else falls
// through to a generic message.
const (
	pgDuplicateKey     = "23505"
	pgPermissionDenied = "42501"
	pgUndefinedTable   = "42P01"
)

// pgErrorCode extracts the SQLSTATE from a Postgres driver error. The gorm
// postgres driver is pgx-based and surfaces *pgconn.PgError; lib/pq errors
// are matched too for connections made through that driver.
func pgErrorCode(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// respondDBError maps a database error to a specific status and message.
// notFoundMsg is used when the record does not exist; duplicateMsg when a
// uniqueness constraint fires.
func respondDBError(c *gin.Context, err error, notFoundMsg, duplicateMsg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		c.JSON(http.StatusConflict, gin.H{"error": duplicateMsg})
		return
	}

	switch pgErrorCode(err) {
	case pgDuplicateKey:
		c.JSON(http.StatusConflict, gin.H{"error": duplicateMsg})
	case pgPermissionDenied:
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied by the database"})
	case pgUndefinedTable:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database schema is not migrated"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
	}
}
