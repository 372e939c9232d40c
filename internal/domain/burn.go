package domain

import "time"

// Burn Model
//
// A burn is append-only: one row per distinct tx hash, never mutated
// or deleted after creation.
type Burn struct {
	ID            uint      `gorm:"primaryKey" json:"id"`                          // Primary key
	WalletAddress string    `gorm:"type:varchar(42);index" json:"walletAddress"`   // Burning wallet, stored lowercase
	Amount        string    `gorm:"type:decimal(65,0);not null" json:"amount"`     // Burned amount as an arbitrary-precision integer string
	TxHash        string    `gorm:"type:varchar(66);unique" json:"txHash"`         // On-chain transaction hash, natural key
	Timestamp     time.Time `gorm:"index" json:"timestamp"`                        // Time the burn was recorded
}
