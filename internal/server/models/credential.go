package models

// Credential is a stored login secret. Password holds ciphertext in the
// store; the service layer decrypts it in place before returning the record,
// so handlers only ever see plaintext on reads.
type Credential struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Username string `json:"username"`
	Password string `json:"password"`
	UserID   int64  `json:"userId"`
}
