package api

import (
	"errors"   // Sentinel error matching
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"burn_tracker/internal/ai"    // Audit collaborator errors
	"burn_tracker/internal/chain" // Chain collaborator errors
	"burn_tracker/internal/store" // Ledger store errors

	"github.com/gin-gonic/gin" // Gin web framework
)

// parsePage reads limit/offset query parameters with the 10/0 defaults.
// Negative or non-integer values are rejected with a 400 response; the
// caller must return immediately when ok is false.
func parsePage(c *gin.Context) (limit, offset int, ok bool) {
	limit, offset = store.DefaultLimit, 0
	if l := c.Query("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "limit must be a non-negative integer"})
			return 0, 0, false
		}
		limit = v
	}
	if o := c.Query("offset"); o != "" {
		v, err := strconv.Atoi(o)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "offset must be a non-negative integer"})
			return 0, 0, false
		}
		offset = v
	}
	return limit, offset, true
}

// writeError maps the error taxonomy to its fixed status code and a
// JSON {message} body.
func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, store.ErrDuplicateKey):
		c.JSON(http.StatusConflict, gin.H{"message": fallback})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": fallback})
	case errors.Is(err, store.ErrIntegrity):
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Data integrity failure"})
	case errors.Is(err, chain.ErrUpstream), errors.Is(err, ai.ErrUpstream):
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
	}
}
