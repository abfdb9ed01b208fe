package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const JwtIssuer = "rollcall"

// SessionClaims is the payload of a bearer token issued at login
type SessionClaims struct {
	UserId    int64  `json:"id"`
	Username  string `json:"username"`
	IsTeacher bool   `json:"isTeacher"`
	IsStudent bool   `json:"isStudent"`
	IsSuper   bool   `json:"isSuper"`
	jwt.RegisteredClaims
}

type GenerateSessionJwtOpts struct {
	Email     string
	Id        string
	IsStudent bool
	IsTeacher bool
	Now       time.Time
	Secret    string
	Ttl       time.Duration
	UserId    int64
	Username  string
}

// GenerateSessionJwt creates a signed session token. Users that are
// neither teachers nor students are flagged as superusers
func GenerateSessionJwt(opts GenerateSessionJwtOpts) (string, *SessionClaims, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	claims := SessionClaims{
		UserId:    opts.UserId,
		Username:  opts.Username,
		IsTeacher: opts.IsTeacher,
		IsStudent: opts.IsStudent,
		IsSuper:   !opts.IsTeacher && !opts.IsStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        opts.Id,
			Issuer:    JwtIssuer,
			Subject:   opts.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(opts.Ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(opts.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, &claims, nil
}

// ValidateSessionJwt verifies the token's signature and expiry as of `now`
func ValidateSessionJwt(secret, tokenStr string, now time.Time) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if _, err := jwt.ParseWithClaims(
		tokenStr,
		claims,
		hmacKey(secret),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	); err != nil {
		return nil, mapJwtError(err)
	}
	return claims, nil
}

// DecodeSessionJwt reads the claims of `tokenStr` without verifying its
// signature, this is what a client that does not hold the signing
// secret can know about its own token
func DecodeSessionJwt(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrorJwtClaimsInvalid, err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp", ErrorJwtClaimsInvalid)
	}
	return claims, nil
}

// ChallengeClaims binds an attendance challenge to one student in one
// class session
type ChallengeClaims struct {
	ClassSessionId int64 `json:"id_aula"`
	StudentId      int64 `json:"id_aluno"`
	jwt.RegisteredClaims
}

// IsExpiredAt reports whether the challenge's validity window has
// elapsed at `now`
func (c ChallengeClaims) IsExpiredAt(now time.Time) bool {
	return c.ExpiresAt == nil || !now.Before(c.ExpiresAt.Time)
}

type GenerateChallengeJwtOpts struct {
	ClassSessionId int64
	Id             string
	Now            time.Time
	Secret         string
	StudentId      int64
	Ttl            time.Duration
}

func GenerateChallengeJwt(opts GenerateChallengeJwtOpts) (string, *ChallengeClaims, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	claims := ChallengeClaims{
		ClassSessionId: opts.ClassSessionId,
		StudentId:      opts.StudentId,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        opts.Id,
			Issuer:    JwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(opts.Ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(opts.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign challenge token: %w", err)
	}
	return token, &claims, nil
}

// ParseChallengeJwt verifies only the signature of a challenge token,
// expiry is left to the caller since an expired challenge may still
// identify a presence that was already recorded
func ParseChallengeJwt(secret, tokenStr string) (*ChallengeClaims, error) {
	claims := &ChallengeClaims{}
	if _, err := jwt.ParseWithClaims(
		tokenStr,
		claims,
		hmacKey(secret),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	); err != nil {
		return nil, mapJwtError(err)
	}
	if claims.ID == "" || claims.ClassSessionId == 0 || claims.StudentId == 0 {
		return nil, ErrorJwtClaimsInvalid
	}
	return claims, nil
}

func hmacKey(secret string) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("failed to validate token signing method")
		}
		return []byte(secret), nil
	}
}

func mapJwtError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrorJwtTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrorJwtTokenSignature, err)
	}
	return fmt.Errorf("%w: %w", ErrorJwtClaimsInvalid, err)
}
