package kafka

type TransactionEvent struct {
	TransactionID string 	`json:"transaction_id"`
	AccountID 	  string	`json:"account_id"`
	Value 		  float64	`json:"value"`
	ItemID 		  string	`json:"item_id"`
	Distributed   bool 		`json:"distributed"`
}

type EarningEvent struct {
	TransactionID string 	`json:"transaction_id"`
	RecipientID   string	`json:"recipient_id"`
	Kind 		  string	`json:"kind"`
	Amount 		  float64	`json:"amount"`
	FromAccount   string	`json:"from_account"`
}

// TransactionIntakeEvent is the payload consumed from the intake topic;
// an alternative entry point to the HTTP transaction endpoint.
type TransactionIntakeEvent struct {
	TransactionID string 	`json:"transaction_id"`
	AccountID 	  string	`json:"account_id"`
	Value 		  float64	`json:"value"`
	ItemID 		  string	`json:"item_id"`
}
