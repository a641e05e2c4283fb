package domain

import "errors"

var (
	ErrDuplicateEmail = errors.New("email already exists")
	ErrInvalidReferralCode = errors.New("invalid referral code")
	ErrReferralLimitExceeded = errors.New("referrer has reached max direct referrals")
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateTransactionID = errors.New("transaction id already exists")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
