package reportdto

type ReferralReportOutput struct {
	AccountID 		  string 				  `json:"accountId"`
	Name 			  string 				  `json:"name"`
	ReferralCode 	  string 				  `json:"referralCode"`
	TotalEarnings 	  float64 				  `json:"totalEarnings"`
	DirectReferrals   []DirectReferralEntry   `json:"directReferrals"`
	IndirectReferrals []IndirectReferralEntry `json:"indirectReferrals"`
}

type DirectReferralEntry struct {
	AccountID 		string 	`json:"accountId"`
	Name 			string 	`json:"name"`
	DirectEarning 	float64 `json:"directEarning"`
	IndirectEarning float64 `json:"indirectEarning"`
}

type IndirectReferralEntry struct {
	AccountID 	 string `json:"accountId"`
	Name 		 string `json:"name"`
	ViaAccountID string `json:"viaAccountId"`
	Earning 	 float64 `json:"earning"`
}
