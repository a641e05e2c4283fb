package domain

import "context"

type AccountRepository interface {
	CreateAccount(ctx context.Context, account *Account) error
	GetAccountByID(ctx context.Context, accountID string) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	GetAccountByReferralCode(ctx context.Context, code string) (*Account, error)

	GetDirectLinks(ctx context.Context, accountID string) ([]DirectLink, error)
	GetIndirectLinks(ctx context.Context, accountID string) ([]IndirectLink, error)
	CountDirectLinks(ctx context.Context, accountID string) (int64, error)
	AddDirectLink(ctx context.Context, referrerID string, link DirectLink) error
	AddIndirectLink(ctx context.Context, referrerID string, link IndirectLink) error

	// ApplyDirectPayout increments the referrer's DirectLink for childID
	// and the referrer's total earnings in one storage transaction. Both
	// increments are issued as delta updates so concurrent payouts to the
	// same referrer cannot lose updates. Returns false when the link row
	// was not found (the total is still incremented).
	ApplyDirectPayout(ctx context.Context, referrerID, childID string, amount Money) (bool, error)

	// ApplyIndirectPayout increments the grandparent's IndirectLink for
	// childID, the DirectLink keyed by viaID and the grandparent's total
	// earnings in one storage transaction.
	ApplyIndirectPayout(ctx context.Context, referrerID, childID, viaID string, amount Money) (bool, error)
}
