package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Cache TTLs

	"burn_tracker/internal/domain" // Domain models
	"burn_tracker/internal/store"  // Ledger store interface
	"burn_tracker/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// AdminListTransactionsHandler returns the full transaction ledger with
// pagination metadata, cached briefly for repeated dashboard polls
func AdminListTransactionsHandler(s store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset, ok := parsePage(c) // Parse pagination parameters
		if !ok {
			return
		}
		ctx := c.Request.Context()
		// Cache key based on pagination parameters
		cacheKey := "admin:transactions:limit:" + strconv.Itoa(limit) + ":offset:" + strconv.Itoa(offset)
		var cached struct {
			Data       []domain.Transaction `json:"data"`       // Transaction page
			Pagination Pagination           `json:"pagination"` // Envelope metadata
		}
		// Try to get cached response
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"data":       cached.Data,       // Cached transaction page
				"pagination": cached.Pagination, // Cached metadata
				"cached":     true,              // Indicate response is from cache
			})
			return
		}
		txs, err := s.Transactions(ctx, limit, offset) // Fetch the page
		if err != nil {
			writeError(c, err, "Failed to fetch transactions")
			return
		}
		total, err := s.TransactionsCount(ctx) // Total for pagination metadata
		if err != nil {
			writeError(c, err, "Failed to count transactions")
			return
		}
		remaining := total - int64(offset+limit)
		if remaining < 0 {
			remaining = 0
		}
		resp := struct {
			Data       []domain.Transaction `json:"data"`
			Pagination Pagination           `json:"pagination"`
		}{Data: txs, Pagination: Pagination{Total: total, Limit: limit, Offset: offset, Remaining: remaining}}
		// Cache the result for 30 seconds
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 30*time.Second)
		c.JSON(http.StatusOK, gin.H{
			"data":       resp.Data,       // Transaction page
			"pagination": resp.Pagination, // Envelope metadata
			"cached":     false,           // Not from cache
		})
	}
}
