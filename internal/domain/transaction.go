package domain

import "time"

// Transaction is immutable once created. ExternalID is the
// caller-supplied transaction identifier and is unique.
type Transaction struct {
	ID 		   string
	ExternalID string
	AccountID  string
	Value 	   Money
	ItemID 	   string
	CreatedAt  time.Time
}
