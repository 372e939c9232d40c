package api

import (
	"errors"   // Sentinel error matching
	"net/http" // HTTP status codes

	"burn_tracker/internal/domain" // Domain validation helpers
	"burn_tracker/internal/ledger" // Burn-recording pipeline
	"burn_tracker/internal/store"  // Ledger store interface

	"github.com/gin-gonic/gin" // Gin web framework
)

// BurnRequest represents a reported burn transaction
type BurnRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"` // Burning wallet
	Amount        string `json:"amount" binding:"required"`        // Burned amount, positive integer string
	TxHash        string `json:"txHash" binding:"required"`        // On-chain transaction hash
}

// GetBurnsHandler returns recent burns, optionally filtered to one wallet
func GetBurnsHandler(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset, ok := parsePage(c) // Parse pagination parameters
		if !ok {
			return
		}
		wallet := c.Query("wallet") // Optional wallet filter
		var (
			burns []domain.Burn
			err   error
		)
		if wallet != "" {
			// Reject malformed filter addresses
			if !domain.ValidAddress(wallet) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "wallet must be a 42-character hex address"})
				return
			}
			burns, err = s.BurnsByWallet(c.Request.Context(), wallet, limit, offset)
		} else {
			burns, err = s.Burns(c.Request.Context(), limit, offset)
		}
		if err != nil {
			writeError(c, err, "Error fetching burn history")
			return
		}
		c.JSON(http.StatusOK, burns) // Return the burn list
	}
}

// RecordBurnHandler records a client-reported burn through the pipeline
func RecordBurnHandler(rec *ledger.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BurnRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid burn data"})
			return
		}
		burn, err := rec.RecordBurn(c.Request.Context(), req.WalletAddress, req.Amount, req.TxHash)
		if err != nil {
			// A replayed tx hash is a conflict, not a retryable failure
			if errors.Is(err, store.ErrDuplicateKey) {
				c.JSON(http.StatusConflict, gin.H{"message": "Burn transaction already recorded"})
				return
			}
			writeError(c, err, "Error recording burn transaction")
			return
		}
		c.JSON(http.StatusCreated, burn) // Return the created burn
	}
}
