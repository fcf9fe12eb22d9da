package model

// User is the authenticated identity as reported by the identity provider.
// ID is the provider's stable user identifier (localId for email accounts,
// the Google subject for OAuth sign-ins).
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
