package notifier

import "time"

type TransactionCallbackPayload struct {
	TransactionID 	string 		`json:"transaction_id"`
	AccountID 		string 		`json:"account_id"`
	Value 			float64		`json:"value"`
	ItemID 			string 		`json:"item_id"`
	Distributed 	bool 		`json:"distributed"`
	CreatedAt 		time.Time	`json:"created_at"`
}
