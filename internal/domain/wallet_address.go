package domain

// WalletAddress Model
type WalletAddress struct {
	ID          uint   `gorm:"primaryKey" json:"id"`                       // Primary key
	Address     string `gorm:"type:varchar(42);unique" json:"address"`     // Checksummed-insensitive address, stored lowercase
	OwnerUserID *uint  `gorm:"index" json:"ownerUserId,omitempty"`         // Optional foreign key to User
}
