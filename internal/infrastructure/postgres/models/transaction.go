package models

import "time"

type TransactionModel struct {
	ID 		   string  `gorm:"primaryKey;type:uuid"`
	ExternalID string  `gorm:"uniqueIndex;not null"`
	AccountID  string  `gorm:"type:uuid;index;not null"`
	Value 	   float64 `gorm:"not null"`
	ItemID 	   string  `gorm:"not null"`
	CreatedAt  time.Time `gorm:"index:idx_transactions_created_at"`
}
