package models

// Session binds an issued token to the user it authenticates. One row is
// created per sign-in; rows are never expired or revoked in this design.
type Session struct {
	ID     int64
	Token  string
	UserID int64
}
