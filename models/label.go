package models

// Label represents a user-owned label/tag
type Label struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Color  string `json:"color"` // Hex code, e.g. "#FF0000"
}
