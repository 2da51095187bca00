package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"salescrm/internal/authz"
	"salescrm/internal/services"
)

// tolerant of value types (int / int64 / float64 / string)
func getIntFromCtx(c *gin.Context, key string) (int, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n, true
		}
	}
	return 0, false
}

func getUserAndRole(c *gin.Context) (userID int, role authz.Role) {
	if id, ok := getIntFromCtx(c, "user_id"); ok {
		userID = id
	}
	if v, ok := c.Get("role"); ok {
		if s, ok := v.(string); ok {
			role, _ = authz.ParseRole(s)
		}
	}
	return
}

// wantsJSON decides the error response shape from the request, not from the
// error: XHR and JSON clients get a structured payload, plain browser
// navigation gets text.
func wantsJSON(c *gin.Context) bool {
	if strings.EqualFold(c.GetHeader("X-Requested-With"), "XMLHttpRequest") {
		return true
	}
	accept := c.GetHeader("Accept")
	if strings.Contains(accept, "application/json") {
		return true
	}
	if strings.Contains(accept, "text/html") {
		return false
	}
	return true
}

func respondError(c *gin.Context, status int, message string) {
	if wantsJSON(c) {
		c.JSON(status, gin.H{"error": message})
		return
	}
	c.String(status, message)
}

func respondFieldError(c *gin.Context, status int, field, message string) {
	if wantsJSON(c) {
		c.JSON(status, gin.H{"error": "validation failed", "fields": gin.H{field: message}})
		return
	}
	c.String(status, field+": "+message)
}

// respondServiceError translates the domain error taxonomy into HTTP codes.
// Unexpected errors are logged server-side and surface as a generic 500.
func respondServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		respondFieldError(c, http.StatusUnprocessableEntity, ve.Field, ve.Message)
	case errors.Is(err, services.ErrForbidden):
		// opaque: no detail on why the actor was rejected
		respondError(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrConflict):
		respondError(c, http.StatusConflict, "conflict")
	case errors.Is(err, services.ErrInvalidState):
		respondError(c, http.StatusConflict, "invalid state")
	default:
		log.Printf("[http] internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}
