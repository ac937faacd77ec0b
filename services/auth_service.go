package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/lbarasti/chess-social/lichess"
	"github.com/lbarasti/chess-social/models"
)

// Identity is the verified acting user: the Lichess account id (lower-case,
// canonical) and the display username. All authorization decisions consume
// only this, never the token that proved it.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// TokenVerifier resolves an opaque bearer token to the account that owns it.
// Implemented by lichess.Client; tests substitute a fake.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*lichess.Account, error)
}

type AuthService interface {
	// Login verifies a Lichess token and exchanges it for a server session
	// JWT, so later writes do not re-query the Lichess API.
	Login(ctx context.Context, lichessToken string) (string, *Identity, error)

	// IdentityFromToken authenticates a bearer token of either kind: a
	// session JWT issued by Login, or a raw Lichess token.
	IdentityFromToken(ctx context.Context, token string) (*Identity, error)
}

const (
	jwtClaimUserID   = "user_id"
	jwtClaimUsername = "username"
)

type authService struct {
	verifier   TokenVerifier
	jwtSecret  []byte
	sessionTTL time.Duration
}

func NewAuthService(verifier TokenVerifier, jwtSecret []byte, sessionTTL time.Duration) AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &authService{
		verifier:   verifier,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

func (s *authService) Login(ctx context.Context, lichessToken string) (string, *Identity, error) {
	identity, err := s.verifyWithLichess(ctx, lichessToken)
	if err != nil {
		return "", nil, err
	}

	claims := jwt.MapClaims{
		jwtClaimUserID:   identity.ID,
		jwtClaimUsername: identity.Username,
		"exp":            time.Now().Add(s.sessionTTL).Unix(),
	}
	session, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return session, identity, nil
}

func (s *authService) IdentityFromToken(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrAuthenticationRequired
	}
	// Session JWTs are the only dotted tokens we ever see; Lichess personal
	// and OAuth tokens are opaque strings without dots.
	if strings.Count(token, ".") == 2 {
		return s.parseSession(token)
	}
	return s.verifyWithLichess(ctx, token)
}

func (s *authService) parseSession(token string) (*Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	id, _ := claims[jwtClaimUserID].(string)
	username, _ := claims[jwtClaimUsername].(string)
	if id == "" {
		return nil, ErrTokenInvalid
	}
	return &Identity{ID: models.NormalizePlayerID(id), Username: username}, nil
}

func (s *authService) verifyWithLichess(ctx context.Context, token string) (*Identity, error) {
	account, err := s.verifier.VerifyToken(ctx, token)
	if err != nil {
		if errors.Is(err, lichess.ErrInvalidToken) {
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("%w: %v", ErrExternalDependency, err)
	}
	return &Identity{ID: models.NormalizePlayerID(account.ID), Username: account.Username}, nil
}
