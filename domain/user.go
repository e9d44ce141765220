package domain

import "strings"

type User struct {
	Username     string `db:"username"`
	PasswordHash string `db:"password"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Name is the username as stored: surrounding whitespace removed.
func (c Credentials) Name() string {
	return strings.TrimSpace(c.Username)
}
