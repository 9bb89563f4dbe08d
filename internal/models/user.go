package models

// User is an operator account for the /api/v1 endpoints.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
