package entities

// RegisterRequest carries the registration form. PhotoURL and IDURL point at
// already-saved KYC uploads.
type RegisterRequest struct {
	FirstName        string
	Username         string
	Password         string
	Role             string
	RegistrationType string
	FullName         string
	ContactAddress   string
	PhoneNumber      string
	Email            string
	IDType           string
	IDNumber         string
	PhotoURL         string
	IDURL            string
}
