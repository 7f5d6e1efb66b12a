package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a recruiter or admin account. Candidates do not log in; they are
// identified by their candidate record.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
