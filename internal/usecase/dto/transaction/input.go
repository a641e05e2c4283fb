package transactiondto

type SubmitTransactionInput struct {
	AccountID 	  string
	TransactionID string
	Value 		  float64
	ItemID 		  string
}
