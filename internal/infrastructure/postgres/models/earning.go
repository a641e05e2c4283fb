package models

import "time"

type EarningRecordModel struct {
	ID 						string 	`gorm:"primaryKey;type:uuid"`
	TransactionID 			string 	`gorm:"type:uuid;index;not null"`
	AccountID 				string 	`gorm:"type:uuid;index;not null"`
	TransactionValue 		float64
	DirectReferrerID 		*string `gorm:"type:uuid"`
	DirectReferralEarning 	float64
	IndirectReferrerID 		*string `gorm:"type:uuid"`
	IndirectReferralEarning float64
	CreatedAt 				time.Time
}
