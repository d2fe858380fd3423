package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/ecommerce/internal/hash"
	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/repo"
	"github.com/Skotchmaster/ecommerce/internal/tokens"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserManager struct {
	DB    *gorm.DB
	Roles *RoleManager
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser stores user with a bcrypt hash of password. It reports false
// when the email is already registered.
func (m *UserManager) CreateUser(ctx context.Context, user *models.AppUser, password string) (bool, error) {
	user.Email = normalizeEmail(user.Email)

	_, err := m.GetUserByEmail(ctx, user.Email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return false, err
	}

	hashed, err := hash.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hashed

	if err := m.DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *UserManager) GetUserByEmail(ctx context.Context, email string) (*models.AppUser, error) {
	var user models.AppUser
	err := m.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", repo.ErrNotFound, email)
		}
		return nil, err
	}
	return &user, nil
}

func (m *UserManager) GetUserByID(ctx context.Context, id uuid.UUID) (*models.AppUser, error) {
	var user models.AppUser
	err := m.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", repo.ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

func (m *UserManager) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := m.DB.WithContext(ctx).Model(&models.AppUser{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// RemoveUserByEmail deletes the user with its roles and refresh tokens.
// It returns the number of user rows removed.
func (m *UserManager) RemoveUserByEmail(ctx context.Context, email string) (int64, error) {
	user, err := m.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	var removed int64
	err = m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", user.ID).Delete(&models.AppUser{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// LoginUser checks the credentials. An account without a role cannot log in.
func (m *UserManager) LoginUser(ctx context.Context, email, password string) (bool, error) {
	user, err := m.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	role, err := m.Roles.GetUserRole(ctx, user.Email)
	if err != nil {
		return false, err
	}
	if role == "" {
		return false, nil
	}

	return hash.CheckPassword(user.PasswordHash, password), nil
}

func (m *UserManager) GetUserClaims(ctx context.Context, email string) (tokens.UserClaims, error) {
	user, err := m.GetUserByEmail(ctx, email)
	if err != nil {
		return tokens.UserClaims{}, err
	}
	role, err := m.Roles.GetUserRole(ctx, user.Email)
	if err != nil {
		return tokens.UserClaims{}, err
	}
	return tokens.UserClaims{
		FullName: user.FullName,
		UserID:   user.ID,
		Email:    user.Email,
		Role:     role,
	}, nil
}
