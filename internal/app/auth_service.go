package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"articles-backend/internal/model"
	"articles-backend/internal/pkg/jwtutil"
	"articles-backend/internal/pkg/password"
	"articles-backend/internal/repository"
)

type AuthService struct {
	userRepo            *repository.UserRepository
	jwtSecret           string
	jwtExpiration       time.Duration
	allowRoleOnRegister bool
}

type RegisterInput struct {
	Username string
	Password string
	Role     string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

// NewAuthService builds the auth service. A zero jwtExpiration issues tokens
// that never expire. allowRoleOnRegister lets callers register themselves
// as Admin.
func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiration time.Duration, allowRoleOnRegister bool) *AuthService {
	return &AuthService{
		userRepo:            userRepo,
		jwtSecret:           jwtSecret,
		jwtExpiration:       jwtExpiration,
		allowRoleOnRegister: allowRoleOnRegister,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	role := model.RoleUser
	if input.Role != "" {
		role = model.Role(input.Role)
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if role != model.RoleUser && !s.allowRoleOnRegister {
		return nil, ErrRoleNotAllowed
	}

	_, err := s.userRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, ErrUsernameExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, ErrInvalidCredential
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if err := password.Check(user.PasswordHash, input.Password); err != nil {
		return nil, ErrInvalidCredential
	}
	return s.issue(user)
}

// Authenticate verifies a bearer token and loads the user it names. A token
// for a user that no longer exists is treated as invalid.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := jwtutil.ParseToken(s.jwtSecret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d no longer exists", ErrInvalidToken, claims.UserID)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
