package domain

import "strings"

// User represents a managed user account.
type User struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   string     `json:"role"`
	Status UserStatus `json:"status"`
	Campus string     `json:"campus,omitempty"`
	Avatar string     `json:"avatar,omitempty"`
}

type UserStatus string

const (
	StatusActive   UserStatus = "Active"
	StatusInactive UserStatus = "Inactive"
)

// Valid reports whether s is one of the two recognized statuses.
func (s UserStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Initials derives the display avatar from a name: the first letter of
// each of the first two space-separated tokens, uppercased.
// "Abebe Kebede" -> "AK", "Madonna" -> "M".
func Initials(name string) string {
	var b strings.Builder
	for i, tok := range strings.Fields(name) {
		if i == 2 {
			break
		}
		r := []rune(tok)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

// CreateUserInput carries the fields accepted when creating a user.
type CreateUserInput struct {
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   string     `json:"role"`
	Status UserStatus `json:"status"`
}

// UpdateUserInput carries the fields accepted when replacing a user's
// editable attributes. ID and email are immutable through this path.
type UpdateUserInput struct {
	Name   string     `json:"name"`
	Role   string     `json:"role"`
	Campus string     `json:"campus"`
	Status UserStatus `json:"status"`
}
