package models

// User is an admin dashboard account.
type User struct {
	ID           int64
	Name         string
	Username     string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	Status       string
}
