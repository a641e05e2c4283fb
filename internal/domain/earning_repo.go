package domain

import "context"

type EarningRepository interface {
	AppendEarningRecord(ctx context.Context, record *EarningRecord) error
	GetEarningsByAccountID(ctx context.Context, accountID string) ([]*EarningRecord, error)
	GetEarningByTransactionID(ctx context.Context, transactionID string) (*EarningRecord, error)
}
