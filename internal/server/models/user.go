package models

// User is an account row. PasswordHash is the bcrypt hash; the struct is
// never serialized to clients directly so the hash cannot leak by accident.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
}
