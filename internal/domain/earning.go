package domain

import "time"

// EarningRecord is an append-only audit entry: exactly one per
// qualifying transaction, regardless of how many referrers were paid.
// Absent referrers are encoded as empty ids and zero amounts.
type EarningRecord struct {
	ID 						string
	TransactionID 			string
	AccountID 				string
	TransactionValue 		Money
	DirectReferrerID 		string
	DirectReferralEarning 	Money
	IndirectReferrerID 		string
	IndirectReferralEarning Money
	CreatedAt 				time.Time
}
