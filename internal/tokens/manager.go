package tokens

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/ecommerce/internal/hash"
	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/repo"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const refreshTokenBytes = 64

var ErrInvalidToken = errors.New("invalid token")

type Manager struct {
	DB         *gorm.DB
	Secret     []byte
	Issuer     string
	Audience   string
	TTL        time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}

func (m *Manager) GenerateToken(uc UserClaims) (string, error) {
	now := m.now()
	claims := Claims{
		FullName: uc.FullName,
		Email:    uc.Email,
		Role:     uc.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uc.UserID.String(),
			Issuer:    m.Issuer,
			Audience:  jwt.ClaimStrings{m.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
			ID:        uuid.NewString(),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.Secret)
}

func (m *Manager) ParseToken(raw string) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return m.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.Issuer),
		jwt.WithAudience(m.Audience),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// GetRefreshToken returns a new opaque refresh token safe for use in a URL path.
func (m *Manager) GetRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func (m *Manager) ValidateRefreshToken(ctx context.Context, token string) (bool, error) {
	var count int64
	err := m.DB.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token = ? AND revoked = ? AND expires_at > ?", hash.Token(token), false, m.now()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *Manager) AddRefreshToken(ctx context.Context, userID uuid.UUID, token string) (int64, error) {
	row := models.RefreshToken{
		UserID:    userID,
		Token:     hash.Token(token),
		ExpiresAt: m.now().Add(m.RefreshTTL),
	}
	res := m.DB.WithContext(ctx).Create(&row)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// UpdateRefreshToken rotates the stored token of userID from oldToken to
// newToken and restarts its expiry.
func (m *Manager) UpdateRefreshToken(ctx context.Context, userID uuid.UUID, oldToken, newToken string) (int64, error) {
	res := m.DB.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("user_id = ? AND token = ? AND revoked = ?", userID, hash.Token(oldToken), false).
		Updates(map[string]any{
			"token":      hash.Token(newToken),
			"expires_at": m.now().Add(m.RefreshTTL),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (m *Manager) GetUserIDByRefreshToken(ctx context.Context, token string) (uuid.UUID, error) {
	var row models.RefreshToken
	err := m.DB.WithContext(ctx).Where("token = ?", hash.Token(token)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fmt.Errorf("%w: refresh token", repo.ErrNotFound)
		}
		return uuid.Nil, err
	}
	return row.UserID, nil
}

func (m *Manager) RevokeRefreshToken(ctx context.Context, token string) (int64, error) {
	res := m.DB.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token = ? AND revoked = ?", hash.Token(token), false).
		Update("revoked", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
