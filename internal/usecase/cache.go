package usecase

import "context"

// ReferralCodeCache shortcuts referral-code resolution. Implementations
// may be absent (nil) — callers fall back to the account repository.
type ReferralCodeCache interface {
	GetAccountID(ctx context.Context, code string) (string, bool)
	SetAccountID(ctx context.Context, code, accountID string) error
	Invalidate(ctx context.Context, code string) error
}
