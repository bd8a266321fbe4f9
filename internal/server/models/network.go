package models

// Network is a stored wifi secret. Same ciphertext discipline as Credential.
type Network struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Network  string `json:"network"`
	Password string `json:"password"`
	UserID   int64  `json:"userId"`
}
