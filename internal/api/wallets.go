package api

import (
	"errors"   // Sentinel error matching
	"net/http" // HTTP status codes

	"burn_tracker/internal/domain" // Domain validation helpers
	"burn_tracker/internal/store"  // Ledger store interface

	"github.com/gin-gonic/gin" // Gin web framework
)

// ClaimWalletRequest links a wallet address to the authenticated user
type ClaimWalletRequest struct {
	Address string `json:"address" binding:"required"` // Wallet address to claim
}

// ClaimWalletHandler registers a wallet address owned by the caller.
// Address records are immutable once created, so an already-registered
// address cannot be re-claimed.
func ClaimWalletHandler(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		var req ClaimWalletRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Reject malformed addresses
		if !domain.ValidAddress(req.Address) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "address must be a 42-character hex address"})
			return
		}
		owner := userID.(uint) // Owner from the JWT claims
		wallet, err := s.CreateWalletAddress(c.Request.Context(), req.Address, &owner)
		if err != nil {
			// An existing record cannot change owners
			if errors.Is(err, store.ErrDuplicateKey) {
				c.JSON(http.StatusConflict, gin.H{"message": "Wallet address already registered"})
				return
			}
			writeError(c, err, "Failed to register wallet address")
			return
		}
		c.JSON(http.StatusCreated, wallet) // Return the created record
	}
}
