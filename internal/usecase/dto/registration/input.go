package registrationdto

type RegisterInput struct {
	Email 	   string
	Name 	   string
	Password   string
	ReferredBy string
}
