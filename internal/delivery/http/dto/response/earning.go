package response

import "time"

type EarningRecordResponse struct {
	ID 						string 	  `json:"id"`
	TransactionID 			string 	  `json:"transactionId"`
	UserID 					string 	  `json:"userId"`
	TransactionValue 		float64   `json:"transactionValue"`
	DirectReferrerID 		string 	  `json:"directReferrerId,omitempty"`
	DirectReferralEarning 	float64   `json:"directReferralEarning"`
	IndirectReferrerID 		string 	  `json:"indirectReferrerId,omitempty"`
	IndirectReferralEarning float64   `json:"indirectReferralEarning"`
	CreatedAt 				time.Time `json:"createdAt"`
}
