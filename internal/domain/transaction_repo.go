package domain

import "context"

type TransactionRepository interface {
	// CreateTransaction persists a new transaction. Returns
	// ErrDuplicateTransactionID when the external id is already taken.
	CreateTransaction(ctx context.Context, transaction *Transaction) error
	GetTransactionByExternalID(ctx context.Context, externalID string) (*Transaction, error)
	GetTransactionsByAccountID(ctx context.Context, accountID string) ([]*Transaction, error)
}
