package domain

import "time"

// Identity is what an access token asserts about its bearer.
type Identity struct {
	UserID   string
	Role     string
	IssuedAt time.Time
}

// RevokedBy reports whether a token issued at issuedAt falls on or before a
// revocation mark.
func RevokedBy(issuedAt, mark time.Time) bool {
	return !issuedAt.After(mark)
}
