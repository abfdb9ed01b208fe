// Package session holds the client's authenticated session: the bearer
// token and its claims, their durable copy, and the timer that logs the
// user out when the token expires.
package session

import (
	"fmt"
	"time"

	"rollcall/internal/auth"
)

// Claims is what the client knows about its own bearer token. It is
// persisted as the `userData` slot
type Claims struct {
	Subject   string    `json:"sub"`
	UserId    int64     `json:"id"`
	Username  string    `json:"username"`
	NotBefore time.Time `json:"nbf"`
	ExpiresAt time.Time `json:"exp"`
	IsTeacher bool      `json:"isTeacher"`
	IsStudent bool      `json:"isStudent"`
	IsSuper   bool      `json:"isSuper"`
}

// ClaimsFromToken decodes the claims carried by `token`. The signature
// is not checked since the client does not hold the signing secret
func ClaimsFromToken(token string) (*Claims, error) {
	decoded, err := auth.DecodeSessionJwt(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}
	claims := &Claims{
		Subject:   decoded.Subject,
		UserId:    decoded.UserId,
		Username:  decoded.Username,
		ExpiresAt: decoded.ExpiresAt.Time,
		IsTeacher: decoded.IsTeacher,
		IsStudent: decoded.IsStudent,
		IsSuper:   decoded.IsSuper,
	}
	if decoded.NotBefore != nil {
		claims.NotBefore = decoded.NotBefore.Time
	}
	return claims, nil
}

// Session is one authenticated identity. Id is local to the process and
// changes on every login so that responses can be matched to the
// session they were requested under
type Session struct {
	Id     string
	Token  string
	Claims Claims
}

func (s *Session) Roles() Roles {
	return DeriveRoles(s)
}

// Remaining returns how long the token stays valid after `now`
func (s *Session) Remaining(now time.Time) time.Duration {
	return s.Claims.ExpiresAt.Sub(now)
}
