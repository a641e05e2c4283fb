package domain

type PayoutKind string

const (
	PayoutDirect   PayoutKind = "direct"
	PayoutIndirect PayoutKind = "indirect"
)

// PayoutEvent is one computed earnings increment destined for a single
// ancestor account. It drives the notification fan-out.
type PayoutEvent struct {
	RecipientID 	  string
	Kind 			  PayoutKind
	Amount 			  Money
	SourceAccountName string
	TransactionValue  Money
}

// DistributionResult is what the earnings engine hands back to its
// callers. BelowThreshold means the transaction was acknowledged but
// nothing was written.
type DistributionResult struct {
	Transaction 	*Transaction
	BelowThreshold 	bool
	Payouts 		[]PayoutEvent
}
