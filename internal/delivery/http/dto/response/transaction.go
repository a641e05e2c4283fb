package response

import "time"

type TransactionResponse struct {
	ID 			  string 	`json:"id"`
	TransactionID string 	`json:"transactionId"`
	UserID 		  string 	`json:"userId"`
	Value 		  float64 	`json:"transactionValue"`
	ItemID 		  string 	`json:"itemId"`
	CreatedAt 	  time.Time `json:"createdAt"`
}

type SubmitTransactionResponse struct {
	Message 			string 				 `json:"message"`
	Transaction 		*TransactionResponse `json:"transaction,omitempty"`
	EarningsDistributed bool 				 `json:"earningsDistributed"`
}
