package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the JWT payload. ElderProfileID is present only when the
// token belongs to an elder-linked login; it is what lets an IDOSO session
// trigger emergencies for its own profile.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID         uint   `json:"user_id"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	ElderProfileID *uint  `json:"elder_profile_id,omitempty"`
}
