package service

import (
	"time"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
)

// AccessClaims is the verified payload of an access token.
type AccessClaims struct {
	UserID    int64
	Role      entity.SystemRole
	Email     string
	Status    entity.AccountStatus
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AccessTokenService signs and verifies short-lived access tokens.
// It never touches storage.
type AccessTokenService interface {
	// Issue signs a token for the user's current identity.
	Issue(user *entity.User) (string, error)

	// Verify checks signature, algorithm and expiry. It returns
	// errors.ErrTokenExpired for an expired token and errors.ErrTokenInvalid for anything else.
	Verify(token string) (*AccessClaims, error)
}

// OpaqueTokenGenerator produces unguessable refresh tokens and the digest they are stored under.
type OpaqueTokenGenerator interface {
	Generate() (string, error)
	Digest(token string) string
}
