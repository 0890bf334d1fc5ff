package domain

// InterestedUser is one entry of the interest registry's answer for a
// category. Field names follow the registry's wire format.
type InterestedUser struct {
	ID       string `json:"Id"`
	Username string `json:"Username"`
	Email    string `json:"Email"`
}
