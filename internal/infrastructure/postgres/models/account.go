package models

import "time"

type AccountModel struct {
	ID 			  string 	`gorm:"primaryKey;type:uuid"`
	Email 		  string 	`gorm:"uniqueIndex;not null"`
	Name 		  string 	`gorm:"not null"`
	Password 	  string
	ReferralCode  string 	`gorm:"uniqueIndex;not null"`
	ReferredBy 	  string 	`gorm:"index"`
	TotalEarnings float64
	CreatedAt 	  time.Time
	UpdatedAt 	  time.Time
}

type DirectLinkModel struct {
	ID 				uint 	`gorm:"primaryKey"`
	ReferrerID 		string 	`gorm:"type:uuid;uniqueIndex:idx_direct_referrer_account;not null"`
	AccountID 		string 	`gorm:"type:uuid;uniqueIndex:idx_direct_referrer_account;not null"`
	DirectEarning 	float64
	IndirectEarning float64
	CreatedAt 		time.Time
	UpdatedAt 		time.Time
}

type IndirectLinkModel struct {
	ID 			 uint 	`gorm:"primaryKey"`
	ReferrerID 	 string `gorm:"type:uuid;uniqueIndex:idx_indirect_referrer_account;not null"`
	AccountID 	 string `gorm:"type:uuid;uniqueIndex:idx_indirect_referrer_account;not null"`
	ViaAccountID string `gorm:"type:uuid;not null"`
	Earning 	 float64
	CreatedAt 	 time.Time
	UpdatedAt 	 time.Time
}
