package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/ecommerce/internal/events"
	"github.com/Skotchmaster/ecommerce/internal/logging"
	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/repo"
	"github.com/Skotchmaster/ecommerce/internal/tokens"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/google/uuid"
)

const (
	msgEmailInUse        = "Email address might be use or unknown error occurred."
	msgAccountCreated    = "Account created successfully"
	msgCreateFailed      = "Error occurred in create account."
	msgBadCredentials    = "Email not found or invalid credentials"
	msgAuthInternalError = "Internal error occurred while authenticating"
	msgInvalidToken      = "Invalid token"
	msgLoggedOut         = "Logged out successfully"
)

// UserStore is satisfied by *identity.UserManager.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.AppUser, password string) (bool, error)
	GetUserByEmail(ctx context.Context, email string) (*models.AppUser, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.AppUser, error)
	CountUsers(ctx context.Context) (int64, error)
	RemoveUserByEmail(ctx context.Context, email string) (int64, error)
	LoginUser(ctx context.Context, email, password string) (bool, error)
	GetUserClaims(ctx context.Context, email string) (tokens.UserClaims, error)
}

// RoleAssigner is satisfied by *identity.RoleManager.
type RoleAssigner interface {
	AddUserToRole(ctx context.Context, user *models.AppUser, role string) (bool, error)
}

// TokenIssuer is satisfied by *tokens.Manager.
type TokenIssuer interface {
	GenerateToken(claims tokens.UserClaims) (string, error)
	GetRefreshToken() (string, error)
	ValidateRefreshToken(ctx context.Context, token string) (bool, error)
	AddRefreshToken(ctx context.Context, userID uuid.UUID, token string) (int64, error)
	UpdateRefreshToken(ctx context.Context, userID uuid.UUID, oldToken, newToken string) (int64, error)
	GetUserIDByRefreshToken(ctx context.Context, token string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, token string) (int64, error)
}

type AuthenticationService struct {
	Users     UserStore
	Roles     RoleAssigner
	Tokens    TokenIssuer
	Validator *transport.Validator
	Events    EventPublisher
}

func (s *AuthenticationService) validate(dto any) (string, bool) {
	if err := s.Validator.Validate(dto); err != nil {
		return err.Error(), false
	}
	return "", true
}

// CreateUser registers an account. The first account ever created becomes
// Admin, every later one User.
func (s *AuthenticationService) CreateUser(ctx context.Context, dto transport.CreateUser) (transport.ServiceResponse, error) {
	l := logging.FromContext(ctx).With("op", "auth.create_user")

	if msg, ok := s.validate(dto); !ok {
		return transport.ServiceResponse{Message: msg}, nil
	}

	user := dto.ToModel()
	created, err := s.Users.CreateUser(ctx, &user, dto.Password)
	if err != nil {
		return transport.ServiceResponse{}, err
	}
	if !created {
		l.Warn("create_user_rejected", "reason", "email in use")
		return transport.ServiceResponse{Message: msgEmailInUse}, nil
	}

	count, err := s.Users.CountUsers(ctx)
	if err != nil {
		return transport.ServiceResponse{}, err
	}
	role := models.RoleUser
	if count <= 1 {
		role = models.RoleAdmin
	}

	assigned, err := s.Roles.AddUserToRole(ctx, &user, role)
	if err != nil || !assigned {
		l.Error("role_assignment_failed", "user_id", user.ID, "role", role, "error", err)
		removed, rmErr := s.Users.RemoveUserByEmail(ctx, user.Email)
		if rmErr != nil || removed <= 0 {
			l.Error("user_rollback_failed", "user_id", user.ID, "reason", "user could not be removed after role assignment failure", "error", rmErr)
		}
		return transport.ServiceResponse{Message: msgCreateFailed}, nil
	}

	publish(ctx, s.Events, events.TopicUsers, user.ID.String(), "user_registered", map[string]any{
		"id":   user.ID,
		"role": role,
	})
	l.Info("user_created", "user_id", user.ID, "role", role)
	return transport.ServiceResponse{Flag: true, Message: msgAccountCreated}, nil
}

func (s *AuthenticationService) LoginUser(ctx context.Context, dto transport.LoginUser) (transport.LoginResponse, error) {
	l := logging.FromContext(ctx).With("op", "auth.login")

	if msg, ok := s.validate(dto); !ok {
		return transport.LoginResponse{Message: msg}, nil
	}

	ok, err := s.Users.LoginUser(ctx, dto.Email, dto.Password)
	if err != nil {
		return transport.LoginResponse{}, err
	}
	if !ok {
		l.Warn("login_failed", "reason", "bad credentials or no role")
		return transport.LoginResponse{Message: msgBadCredentials}, nil
	}

	claims, err := s.Users.GetUserClaims(ctx, dto.Email)
	if err != nil {
		return transport.LoginResponse{}, err
	}
	jwtToken, err := s.Tokens.GenerateToken(claims)
	if err != nil {
		return transport.LoginResponse{}, err
	}
	refresh, err := s.Tokens.GetRefreshToken()
	if err != nil {
		return transport.LoginResponse{}, err
	}

	n, err := s.Tokens.AddRefreshToken(ctx, claims.UserID, refresh)
	if err != nil || n <= 0 {
		l.Error("login_failed", "reason", "refresh token not stored", "error", err)
		return transport.LoginResponse{Message: msgAuthInternalError}, nil
	}

	l.Info("login_success", "user_id", claims.UserID)
	return transport.LoginResponse{Success: true, Token: jwtToken, RefreshToken: refresh}, nil
}

// ReviveToken exchanges a valid refresh token for a new session token and
// rotates the refresh token.
func (s *AuthenticationService) ReviveToken(ctx context.Context, refreshToken string) (transport.LoginResponse, error) {
	l := logging.FromContext(ctx).With("op", "auth.refresh")
	invalid := transport.LoginResponse{Message: msgInvalidToken}

	valid, err := s.Tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return transport.LoginResponse{}, err
	}
	if !valid {
		l.Warn("refresh_failed", "reason", "token unknown, revoked or expired")
		return invalid, nil
	}

	userID, err := s.Tokens.GetUserIDByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return invalid, nil
		}
		return transport.LoginResponse{}, err
	}
	user, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("refresh_failed", "reason", "user gone", "user_id", userID)
			return invalid, nil
		}
		return transport.LoginResponse{}, err
	}

	claims, err := s.Users.GetUserClaims(ctx, user.Email)
	if err != nil {
		return transport.LoginResponse{}, err
	}
	jwtToken, err := s.Tokens.GenerateToken(claims)
	if err != nil {
		return transport.LoginResponse{}, err
	}
	next, err := s.Tokens.GetRefreshToken()
	if err != nil {
		return transport.LoginResponse{}, err
	}

	n, err := s.Tokens.UpdateRefreshToken(ctx, userID, refreshToken, next)
	if err != nil {
		return transport.LoginResponse{}, err
	}
	if n <= 0 {
		l.Warn("refresh_failed", "reason", "token rotated concurrently", "user_id", userID)
		return invalid, nil
	}

	l.Info("refresh_success", "user_id", userID)
	return transport.LoginResponse{Success: true, Token: jwtToken, RefreshToken: next}, nil
}

func (s *AuthenticationService) Logout(ctx context.Context, refreshToken string) (transport.ServiceResponse, error) {
	n, err := s.Tokens.RevokeRefreshToken(ctx, refreshToken)
	if err != nil {
		return transport.ServiceResponse{}, err
	}
	if n <= 0 {
		return transport.ServiceResponse{Message: msgInvalidToken}, nil
	}
	logging.FromContext(ctx).Info("logout_success")
	return transport.ServiceResponse{Flag: true, Message: msgLoggedOut}, nil
}
