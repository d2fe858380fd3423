package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUnknownRole = errors.New("unknown role")

type RoleManager struct {
	DB *gorm.DB
}

func (m *RoleManager) AddUserToRole(ctx context.Context, user *models.AppUser, role string) (bool, error) {
	if role != models.RoleAdmin && role != models.RoleUser {
		return false, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	if user == nil || user.ID == uuid.Nil {
		return false, nil
	}

	var existing int64
	if err := m.DB.WithContext(ctx).Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", user.ID, role).
		Count(&existing).Error; err != nil {
		return false, err
	}
	if existing > 0 {
		return false, nil
	}

	res := m.DB.WithContext(ctx).Create(&models.UserRole{UserID: user.ID, Role: role})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetUserRole returns the first role of the user, or "" when the user is
// unknown or has none.
func (m *RoleManager) GetUserRole(ctx context.Context, email string) (string, error) {
	var roles []models.UserRole
	err := m.DB.WithContext(ctx).
		Joins("JOIN app_users ON app_users.id = user_roles.user_id").
		Where("app_users.email = ?", normalizeEmail(email)).
		Order("user_roles.role ASC").
		Limit(1).
		Find(&roles).Error
	if err != nil {
		return "", err
	}
	if len(roles) == 0 {
		return "", nil
	}
	return roles[0].Role, nil
}
