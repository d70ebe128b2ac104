package models

import (
	"time"
)

// Recipe is a single recipe inside a recipe book.
//
// UserID is denormalized onto the recipe so ownership checks never need a
// join through the book. RecipeBookID references the containing book but
// carries no referential constraint: deleting a book leaves its recipes in
// place (see DESIGN.md).
type Recipe struct {
	ID           string     `json:"id" db:"id"`
	UserID       string     `json:"user_id" db:"user_id"`
	RecipeBookID string     `json:"recipe_book_id" db:"recipe_book_id"`
	Name         string     `json:"name" db:"name"`
	Ingredients  *string    `json:"ingredients,omitempty" db:"ingredients"`
	Directions   *string    `json:"directions,omitempty" db:"directions"`
	Rating       *float64   `json:"rating,omitempty" db:"rating"`
	ActiveTime   *float64   `json:"active_time,omitempty" db:"active_time"`
	TotalTime    *float64   `json:"total_time,omitempty" db:"total_time"`
	Servings     *float64   `json:"servings,omitempty" db:"servings"`
	Calories     *float64   `json:"calories,omitempty" db:"calories"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Owner returns the owning user's ID.
func (r *Recipe) Owner() string {
	return r.UserID
}
