package models

// User represents a registered account. The password hash is never
// serialized into responses.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
