package entity

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors an identity from the token issuer. Rows are upserted on
// every authenticated request.
type User struct {
	ID        uuid.UUID `db:"id"`
	Username  string    `db:"username"`
	Email     *string   `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
