package models

// User is a user node in the graph. Accounts and credentials are managed by
// an external identity service; this service only matches existing nodes and
// mirrors their id/email/username properties.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}
