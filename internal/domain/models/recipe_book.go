package models

import (
	"time"
)

// RecipeBook is a user-owned collection of recipes.
// UserID is stamped from the creating caller and immutable afterwards.
type RecipeBook struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Owner returns the owning user's ID.
func (b *RecipeBook) Owner() string {
	return b.UserID
}
