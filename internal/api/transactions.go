package api

import (
	"errors"   // Sentinel error matching
	"net/http" // HTTP status codes

	"burn_tracker/internal/domain" // Domain validation helpers
	"burn_tracker/internal/store"  // Ledger store interface

	"github.com/gin-gonic/gin" // Gin web framework
)

// TransactionRequest represents a reported token movement
type TransactionRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"` // Wallet the movement is attributed to
	Amount        string `json:"amount" binding:"required"`        // Token amount, integer string
	Type          string `json:"type" binding:"required"`          // burn, transfer or receive
	TxHash        string `json:"txHash" binding:"required"`        // On-chain transaction hash
	Status        string `json:"status"`                           // confirmed, pending or failed; defaults to confirmed
}

// Pagination is the envelope metadata for list responses
type Pagination struct {
	Total     int64 `json:"total"`     // Total matching records
	Limit     int   `json:"limit"`     // Requested page size
	Offset    int   `json:"offset"`    // Requested page start
	Remaining int64 `json:"remaining"` // Records beyond this page
}

// GetTransactionsHandler returns paginated transactions in an envelope
func GetTransactionsHandler(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset, ok := parsePage(c) // Parse pagination parameters
		if !ok {
			return
		}
		wallet := c.Query("wallet") // Optional wallet filter
		var (
			txs []domain.Transaction
			err error
		)
		if wallet != "" {
			// Reject malformed filter addresses
			if !domain.ValidAddress(wallet) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "wallet must be a 42-character hex address"})
				return
			}
			txs, err = s.TransactionsByWallet(c.Request.Context(), wallet, limit, offset)
		} else {
			txs, err = s.Transactions(c.Request.Context(), limit, offset)
		}
		if err != nil {
			writeError(c, err, "Error fetching transaction history")
			return
		}
		total, err := s.TransactionsCount(c.Request.Context()) // Total for pagination metadata
		if err != nil {
			writeError(c, err, "Error fetching transaction history")
			return
		}
		remaining := total - int64(offset+limit)
		if remaining < 0 {
			remaining = 0
		}
		c.JSON(http.StatusOK, gin.H{
			"data":       txs,
			"pagination": Pagination{Total: total, Limit: limit, Offset: offset, Remaining: remaining},
		})
	}
}

// CreateTransactionHandler records a new transaction
func CreateTransactionHandler(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid transaction data"})
			return
		}
		if req.Status == "" {
			req.Status = domain.TxStatusConfirmed // Default status
		}
		tx, err := s.CreateTransaction(c.Request.Context(), req.WalletAddress, req.Amount, req.Type, req.TxHash, req.Status)
		if err != nil {
			// A replayed tx hash is a conflict, not a retryable failure
			if errors.Is(err, store.ErrDuplicateKey) {
				c.JSON(http.StatusConflict, gin.H{"message": "Transaction already recorded"})
				return
			}
			writeError(c, err, "Error recording transaction")
			return
		}
		c.JSON(http.StatusCreated, tx) // Return the created transaction
	}
}
