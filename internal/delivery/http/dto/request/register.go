package request

type RegisterRequest struct {
	Email 	   string `json:"email"`
	Name 	   string `json:"name"`
	Password   string `json:"password"`
	ReferredBy string `json:"referredBy,omitempty"`
}

type LoginRequest struct {
	Email 	 string `json:"email"`
	Password string `json:"password"`
}
