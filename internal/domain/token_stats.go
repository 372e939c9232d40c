package domain

import "time"

// TokenStats Model
//
// A point-in-time aggregate of token supply statistics. The store keeps
// the full history as an append-only sequence; the most recently
// appended row is the current snapshot. Prior rows are never mutated.
type TokenStats struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                            // Primary key
	TotalSupply  string    `gorm:"type:decimal(65,0);not null" json:"totalSupply"`  // Circulating supply as an arbitrary-precision integer string
	BurnedTokens string    `gorm:"type:decimal(65,0);not null" json:"burnedTokens"` // Cumulative burned amount as an arbitrary-precision integer string
	Price        string    `gorm:"not null" json:"price"`                           // Token price as a decimal string, e.g. "$0.0032"
	Holders      int       `gorm:"not null" json:"holders"`                         // Holder count
	LastUpdated  time.Time `gorm:"index" json:"lastUpdated"`                        // Time the snapshot was appended
}
