package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopherblog/internal/model"
	"gopherblog/internal/pkg/jwtutil"
	"gopherblog/internal/pkg/validate"
)

type AuthService struct {
	users         *UserService
	jwtSecret     string
	jwtExpiration time.Duration
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(users *UserService, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if !validate.Email(input.Email) {
		return nil, ErrInvalidEmail
	}
	if !validate.Password(input.Password) {
		return nil, ErrWeakPassword
	}
	if err := checkName(input.Name); err != nil {
		return nil, err
	}
	if s.jwtSecret == "" {
		return nil, ErrServerConfig.with(jwtutil.ErrMissingSecret)
	}

	user, err := s.users.CreateUser(ctx, CreateUserInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login answers ErrInvalidCredential for both an unknown email and a wrong
// password.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if validate.IsEmpty(input.Email) || input.Password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !s.users.CheckPassword(user, input.Password) {
		return nil, ErrInvalidCredential
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: withoutHash(user)}, nil
}

func (s *AuthService) IssueToken(user *model.User) (string, error) {
	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Email)
	if err != nil {
		if errors.Is(err, jwtutil.ErrMissingSecret) {
			return "", ErrServerConfig.with(err)
		}
		return "", err
	}
	return token, nil
}

// VerifyToken checks signature and expiry and returns the embedded identity.
func (s *AuthService) VerifyToken(token string) (*jwtutil.Claims, error) {
	claims, err := jwtutil.ParseToken(s.jwtSecret, token)
	if err != nil {
		switch {
		case errors.Is(err, jwtutil.ErrMissingSecret):
			return nil, ErrServerConfig.with(err)
		case errors.Is(err, jwtutil.ErrTokenExpired):
			return nil, ErrTokenExpired.with(err)
		default:
			return nil, ErrInvalidToken.with(err)
		}
	}
	return claims, nil
}

// ResolveUser turns a verified token's subject into the stored user. A
// subject that no longer exists surfaces as a plain internal error.
func (s *AuthService) ResolveUser(ctx context.Context, claims *jwtutil.Claims) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("token subject %s no longer exists", claims.UserID)
		}
		return nil, err
	}
	return user, nil
}
