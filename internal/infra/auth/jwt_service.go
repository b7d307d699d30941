// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/config"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/service"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
)

// accessClaims is the JWT payload: {id, role, email, status, iat, exp}.
type accessClaims struct {
	UserID int64                `json:"id"`
	Role   entity.SystemRole    `json:"role"`
	Email  string               `json:"email"`
	Status entity.AccountStatus `json:"status"`
	jwt.RegisteredClaims
}

// jwtService is the HS256 implementation of service.AccessTokenService.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService builds the access token service from the signing secret and TTL in config.
func NewJWTService(cfg *config.Config) (service.AccessTokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if cfg.Auth == nil || cfg.Auth.AccessTokenTTL <= 0 {
		return nil, errors.New("access token ttl must be positive")
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    cfg.Auth.AccessTokenTTL,
		now:    time.Now,
	}, nil
}

// Issue signs an access token for user.
func (s *jwtService) Issue(user *entity.User) (string, error) {
	now := s.now()
	claims := accessClaims{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		Status: user.Status,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// Verify parses and validates an access token.
func (s *jwtService) Verify(token string) (*service.AccessClaims, error) {
	claims := new(accessClaims)
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrTokenExpired
		}

		return nil, domainerrors.ErrTokenInvalid.WithDetails(err.Error())
	}

	out := &service.AccessClaims{
		UserID: claims.UserID,
		Role:   claims.Role,
		Email:  claims.Email,
		Status: claims.Status,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	return out, nil
}
