package response

import "time"

type AccountResponse struct {
	ID 			  string 	`json:"id"`
	Email 		  string 	`json:"email"`
	Name 		  string 	`json:"name"`
	ReferralCode  string 	`json:"referralCode"`
	ReferredBy 	  string 	`json:"referredBy,omitempty"`
	TotalEarnings float64 	`json:"totalEarnings"`
	CreatedAt 	  time.Time `json:"createdAt"`
}

type RegisterResponse struct {
	Message string 			`json:"message"`
	User 	AccountResponse `json:"user"`
}

type LoginResponse struct {
	Message string 			`json:"message"`
	User 	AccountResponse `json:"user"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
