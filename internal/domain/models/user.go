package models

import (
	"time"
)

// User is the internal identity record for an authenticated caller.
// ExternalID holds the identity provider's immutable subject claim; it is
// unique and never changes after the row is created. The identity resolver
// is the only writer of this table.
type User struct {
	ID          string    `json:"id" db:"id"`
	ExternalID  string    `json:"external_id" db:"external_id"`
	DisplayName string    `json:"display_name" db:"display_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
