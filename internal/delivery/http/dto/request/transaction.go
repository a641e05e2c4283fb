package request

type SubmitTransactionRequest struct {
	UserID 			 string  `json:"userId"`
	TransactionID 	 string  `json:"transactionId"`
	TransactionValue float64 `json:"transactionValue"`
	ItemID 			 string  `json:"itemId"`
}
