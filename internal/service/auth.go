package service

import (
	"context"
	"errors"
	"time"

	"github.com/inkshelf/inkshelf-go/internal/crypto"
	"github.com/inkshelf/inkshelf-go/internal/model"
	"github.com/inkshelf/inkshelf-go/internal/repository"
	"github.com/inkshelf/inkshelf-go/internal/validate"
)

var (
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidSession      = errors.New("invalid session token")
)

// AuthService handles registration, sign-in/out and session resolution.
type AuthService struct {
	users     *repository.UserRepository
	tokens    *repository.TokenRepository
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *repository.UserRepository, tokens *repository.TokenRepository, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account and issues its session token.
func (s *AuthService) Register(ctx context.Context, req model.SignUpRequest) (model.SignUpResponse, error) {
	if err := validate.Struct(req); err != nil {
		return model.SignUpResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.SignUpResponse{}, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.SignUpResponse{}, ErrUsernameTaken
		}
		return model.SignUpResponse{}, err
	}

	token, err := crypto.NewSessionToken(user.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.SignUpResponse{}, err
	}
	if err := s.tokens.Save(ctx, user.ID, token); err != nil {
		return model.SignUpResponse{}, err
	}

	return model.SignUpResponse{
		Token: token,
		User: model.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}

// SignIn authenticates a user, marks them active and returns their session
// token. The token is reused across sign-ins: an existing valid token is
// returned as-is, a missing or expired one is replaced.
func (s *AuthService) SignIn(ctx context.Context, req model.SignInRequest) (model.SignInResponse, error) {
	if req.Username == "" || req.Password == "" {
		return model.SignInResponse{}, ErrCredentialsRequired
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.SignInResponse{}, ErrUserNotFound
		}
		return model.SignInResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.SignInResponse{}, err
	}
	if !match {
		return model.SignInResponse{}, ErrInvalidPassword
	}

	if err := s.users.Activate(ctx, user.ID); err != nil {
		return model.SignInResponse{}, err
	}

	token, err := s.sessionToken(ctx, user.ID)
	if err != nil {
		return model.SignInResponse{}, err
	}

	return model.SignInResponse{
		Token: token,
		User: model.SignedInUser{
			UserID:   user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}

// SignOut marks the user inactive and records the sign-out time. Their
// stored token stops resolving until the next sign-in.
func (s *AuthService) SignOut(ctx context.Context, userID int64) error {
	return s.users.Deactivate(ctx, userID)
}

// ResolveToken resolves a presented bearer token to its active user. Used by
// the auth middleware; any failure is surfaced to the client as 401.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	if _, err := crypto.ParseSessionToken(token, s.jwtSecret); err != nil {
		return nil, ErrInvalidSession
	}

	user, err := s.tokens.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	if !user.Active {
		return nil, ErrInvalidSession
	}

	return user, nil
}

// sessionToken returns the user's stored session token, issuing and storing
// a fresh one when none exists or the stored one no longer validates.
func (s *AuthService) sessionToken(ctx context.Context, userID int64) (string, error) {
	stored, err := s.tokens.GetByUserID(ctx, userID)
	if err == nil {
		if _, perr := crypto.ParseSessionToken(stored, s.jwtSecret); perr == nil {
			return stored, nil
		}
	} else if !errors.Is(err, repository.ErrTokenNotFound) {
		return "", err
	}

	token, err := crypto.NewSessionToken(userID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return "", err
	}
	if err := s.tokens.Save(ctx, userID, token); err != nil {
		return "", err
	}
	return token, nil
}
