package models

// User is the identity-provider view of the authenticated user. Field
// names follow the OIDC claim set the backend relays.
type User struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	GivenName     string `json:"given_name,omitempty"`
	FamilyName    string `json:"family_name,omitempty"`
	Nickname      string `json:"nickname,omitempty"`
	UpdatedAt     string `json:"updated_at"`
}
