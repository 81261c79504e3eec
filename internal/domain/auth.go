package domain

// Credentials are submitted by a player on login or registration.
type Credentials struct {
	Username string
	Password string
}
