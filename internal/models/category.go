package models

// Category is a user-owned label. Names are unique per user.
type Category struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	UserID int64  `json:"-" db:"user_id"`
}
