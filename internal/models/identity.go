package models

import "github.com/golang-jwt/jwt/v4"

// Identity is the viewer identity threaded explicitly through every feed
// call: either an authenticated user id or an anonymous session id, never
// read from ambient state inside the ranking core.
type Identity struct {
	UserID        string `json:"user_id,omitempty"`
	AnonSessionID string `json:"anon_session_id,omitempty"`
}

// AuthenticatedIdentity builds an identity for a signed-in user.
func AuthenticatedIdentity(userID string) Identity {
	return Identity{UserID: userID}
}

// AnonymousIdentity builds an identity for a cookie-less reader session.
func AnonymousIdentity(sessionID string) Identity {
	return Identity{AnonSessionID: sessionID}
}

// IsAuthenticated reports whether the identity carries a user id.
func (i Identity) IsAuthenticated() bool {
	return i.UserID != ""
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
