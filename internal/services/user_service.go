package services

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/vladimiradmaev/nutrilyzer/internal/auth"
	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	apperrors "github.com/vladimiradmaev/nutrilyzer/internal/errors"
	"github.com/vladimiradmaev/nutrilyzer/internal/repository"
)

const minPasswordLength = 6

type UserService struct {
	store  *repository.Store
	tokens *auth.TokenManager
	hasher *auth.PasswordHasher
	logger *slog.Logger
}

func NewUserService(store *repository.Store, tokens *auth.TokenManager, hasher *auth.PasswordHasher, logger *slog.Logger) *UserService {
	return &UserService{store: store, tokens: tokens, hasher: hasher, logger: logger}
}

// Session is a user together with a freshly issued token
type Session struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates an account and signs the user in
func (s *UserService) Register(ctx context.Context, username, email, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" {
		return nil, apperrors.NewValidationError("username is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.NewValidationError("email is not valid")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.NewValidationError("password must be at least 6 characters")
	}

	taken, err := s.store.Users().Exists(ctx, username, email)
	if err != nil {
		return nil, storeError(err)
	}
	if taken {
		return nil, apperrors.NewConflictError("username or email already registered")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, storeError(err)
	}
	s.logger.InfoContext(ctx, "User registered", "user_id", user.ID)

	return s.session(user)
}

// Login checks the credentials and issues a new token
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, storeError(err)
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}
	return s.session(user)
}

// Current returns the signed in user
func (s *UserService) Current(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "user")
	}
	return user, nil
}

// Authenticate resolves a bearer token to the user id it was issued for
func (s *UserService) Authenticate(token string) (string, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", apperrors.NewUnauthorizedError("invalid or expired token")
	}
	return claims.UserID, nil
}

func (s *UserService) session(user *domain.User) (*Session, error) {
	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{User: user, Token: token}, nil
}
