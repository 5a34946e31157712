// Package service provides the business logic of the tracker: credential
// management and ownership-scoped access to family members and vaccination
// records. Persistence is delegated to repository interfaces.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/famtrack/vaxtrack/internal/auth"
	"github.com/famtrack/vaxtrack/internal/common"
	"github.com/famtrack/vaxtrack/internal/models"
)

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// Create persists a new account. Returns common.ErrorConflict when the
	// username is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByUsername fetches an account by its unique username. Returns
	// common.ErrorNotFound when no such account exists.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService implements registration, login and current-account
// resolution on top of a UserRepository.
type AuthService struct {
	repo     UserRepository
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService constructs an AuthService. secret signs session tokens,
// tokenTTL bounds their validity.
func NewAuthService(repo UserRepository, secret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{repo: repo, secret: secret, tokenTTL: tokenTTL}
}

// Register creates an account with a hashed password and issues a session
// token for it. A taken username yields common.ErrorConflict.
func (s *AuthService) Register(ctx context.Context, username, name, email, password string) (*models.User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user, err := s.repo.Create(ctx, &models.User{
		Username:     username,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, "", common.ErrorConflict
		}
		return nil, "", common.ErrorInternal
	}

	token, err := auth.GenerateToken(user.Username, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	return user, token, nil
}

// Login verifies the credentials and issues a session token. An unknown
// username and a wrong password both yield common.ErrorUnauthorized so the
// caller cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.Username, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	return user, token, nil
}

// CurrentAccount resolves a session token to the account it identifies.
// A missing, invalid or expired token and a subject that no longer maps to
// an account all yield common.ErrorUnauthorized.
func (s *AuthService) CurrentAccount(ctx context.Context, token string) (*models.User, error) {
	subject, err := auth.SubjectFromToken(token, s.secret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repo.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Never reveal whether the subject ever existed.
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}
