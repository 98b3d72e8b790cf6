package domain

import "time"

// TokenMetadata describes an issued session token.
type TokenMetadata struct {
	SubjectID string
	Role      Role
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
