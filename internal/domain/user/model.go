package user

import (
	"fmt"
	"strings"
	"time"
)

// User is a registered account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("user email is invalid")
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("user password hash is required")
	}

	return nil
}

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID string
	Email  string
}
