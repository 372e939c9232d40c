package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache TTLs

	"burn_tracker/internal/chain"  // Chain reader collaborator
	"burn_tracker/internal/domain" // Domain validation helpers
	"burn_tracker/internal/ledger" // Stats refresh policy
	"burn_tracker/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// TokenInfoHandler returns name, symbol, decimals and supply of the token
func TokenInfoHandler(reader chain.Reader, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var info chain.TokenInfo // Token info struct to hold data
		// Try to get from cache first; contract metadata changes rarely
		found, err := utils.GetCache(ctx, rdb, "token:info", &info)
		if err == nil && found {
			c.JSON(http.StatusOK, info) // Return cached info
			return
		}
		fresh, err := reader.TokenInfo(ctx) // Read from the contract
		if err != nil {
			writeError(c, err, "Error fetching token information")
			return
		}
		_ = utils.SetCache(ctx, rdb, "token:info", fresh, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, fresh)                                     // Return token info
	}
}

// TokenStatsHandler returns the current statistics snapshot
func TokenStatsHandler(stats *ledger.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := stats.CurrentStats(c.Request.Context()) // Refresh-or-serve
		if err != nil {
			writeError(c, err, "Error fetching token statistics")
			return
		}
		c.JSON(http.StatusOK, st) // Return the snapshot
	}
}

// WalletBalanceHandler returns the token balance of an address
func WalletBalanceHandler(reader chain.Reader, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.Param("address") // Address path parameter
		// Reject malformed addresses before hitting the chain
		if !domain.ValidAddress(address) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "address must be a 42-character hex address"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := "balance:" + domain.NormalizeAddress(address) // Cache key for this address
		var balance string
		// Try to get from cache first
		found, err := utils.GetCache(ctx, rdb, cacheKey, &balance)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"address": address, "balance": balance})
			return
		}
		balance, err = reader.BalanceOf(ctx, address) // Read from the chain
		if err != nil {
			writeError(c, err, "Error fetching wallet balance")
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, balance, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, gin.H{"address": address, "balance": balance})
	}
}
