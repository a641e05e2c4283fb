package domain

import "time"

type Account struct {
	ID 			   string
	Email 		   string
	Name 		   string
	Password 	   string
	ReferralCode   string
	ReferredBy 	   string
	TotalEarnings  Money
	DirectLinks    []DirectLink
	IndirectLinks  []IndirectLink
	CreatedAt 	   time.Time
}

// DirectLink is one first-level referral held by the referrer:
// accumulated earnings from the child's own transactions and from
// the child's sub-referral activity.
type DirectLink struct {
	AccountID 		string
	DirectEarning 	Money
	IndirectEarning Money
}

// IndirectLink is one second-level referral held by the grandparent.
// ViaAccountID is the intermediate referrer.
type IndirectLink struct {
	AccountID 	 string
	ViaAccountID string
	Earning 	 Money
}
