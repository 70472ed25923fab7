// Package service holds the request-independent core: registration, login,
// and post CRUD with ownership enforcement. Handlers translate its errors
// to HTTP statuses; nothing in here knows about transport.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dpearce/inkwell/internal/apperr"
	"github.com/dpearce/inkwell/internal/models"
	"github.com/dpearce/inkwell/internal/password"
	"github.com/dpearce/inkwell/internal/repo"
	"github.com/dpearce/inkwell/internal/token"
)

// dummyDigest is a valid bcrypt digest of an unguessable value. Login runs a
// compare against it when the email is unknown so the unknown-email and
// wrong-password paths take comparable time.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// ==========================
// AuthService
// ==========================
type AuthService struct {
	Users  *repo.UserRepo
	Tokens *token.Service
}

func NewAuthService(users *repo.UserRepo, tokens *token.Service) *AuthService {
	return &AuthService{Users: users, Tokens: tokens}
}

// ==========================
// Register
// ==========================
// Register creates the identity and issues a token bound to it. A taken
// username or email surfaces as apperr.ErrConflict; the database unique
// constraints arbitrate concurrent duplicates.
func (s *AuthService) Register(ctx context.Context, username, email, plaintext string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || plaintext == "" {
		return nil, "", fmt.Errorf("username, email and password are required: %w", apperr.ErrValidation)
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.Users.Create(ctx, username, email, hash)
	if err != nil {
		return nil, "", err
	}

	tok, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, tok, nil
}

// ==========================
// Login
// ==========================
// Login resolves the identity by email and verifies the password. Unknown
// email and wrong password both return apperr.ErrInvalidCredentials with no
// distinguishing signal.
func (s *AuthService) Login(ctx context.Context, email, plaintext string) (*models.User, string, error) {
	user, err := s.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		password.Verify(plaintext, dummyDigest)
		return nil, "", apperr.ErrInvalidCredentials
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		return nil, "", apperr.ErrInvalidCredentials
	}

	tok, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, tok, nil
}

// ==========================
// Whoami
// ==========================
func (s *AuthService) Whoami(ctx context.Context, userID int) (*models.User, error) {
	return s.Users.GetByID(ctx, userID)
}
