package models

// User is a member of the user directory.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
