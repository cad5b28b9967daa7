package models

// User is the account behind the active session, as returned by the backend.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
