package middlewares

import (
	"ClinicFlow/apperrors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// RespondError maps a domain error to its HTTP status. Domain error messages
// pass through unchanged; anything else is logged and masked as a generic
// internal error.
func RespondError(c *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation, apperrors.KindPreconditionFailed, apperrors.KindConflict:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("HTTP 500 - internal error: %+v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// HttpError logs an error and writes an HTTP error response to the client.
func HttpError(c *gin.Context, message string, status int, err error) {
	log.Printf("HTTP %d - %s: %v", status, message, err)
	c.JSON(status, gin.H{"error": message})
}
