package domain

import "time"

// Transaction type values
const (
	TxTypeBurn     = "burn"
	TxTypeTransfer = "transfer"
	TxTypeReceive  = "receive"
)

// Transaction status values
const (
	TxStatusConfirmed = "confirmed"
	TxStatusPending   = "pending"
	TxStatusFailed    = "failed"
)

// Transaction Model
type Transaction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`                        // Primary key
	WalletAddress string    `gorm:"type:varchar(42);index" json:"walletAddress"` // Wallet the movement is attributed to, stored lowercase
	Amount        string    `gorm:"type:decimal(65,0);not null" json:"amount"`   // Token amount as an arbitrary-precision integer string
	Type          string    `gorm:"not null" json:"type"`                        // Transaction type: burn, transfer or receive
	TxHash        string    `gorm:"type:varchar(66);unique" json:"txHash"`       // On-chain transaction hash, natural key
	Timestamp     time.Time `gorm:"index" json:"timestamp"`                      // Time the transaction was recorded
	Status        string    `gorm:"not null;default:confirmed" json:"status"`    // Status: confirmed, pending or failed
}

// ValidTxType reports whether t is a known transaction type.
func ValidTxType(t string) bool {
	return t == TxTypeBurn || t == TxTypeTransfer || t == TxTypeReceive
}

// ValidTxStatus reports whether s is a known transaction status.
func ValidTxStatus(s string) bool {
	return s == TxStatusConfirmed || s == TxStatusPending || s == TxStatusFailed
}
