package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("not found")

// Generic is the data access contract shared by every entity.
type Generic[T models.Entity] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, entity *T) (int64, error)
	Update(ctx context.Context, entity *T) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type GormRepo[T models.Entity] struct {
	DB       *gorm.DB
	Preloads []string
}

func New[T models.Entity](db *gorm.DB, preloads ...string) *GormRepo[T] {
	return &GormRepo[T]{DB: db, Preloads: preloads}
}

func (r *GormRepo[T]) query(ctx context.Context) *gorm.DB {
	q := r.DB.WithContext(ctx)
	for _, p := range r.Preloads {
		q = q.Preload(p)
	}
	return q
}

func (r *GormRepo[T]) GetAll(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.query(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	if err := r.query(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo[T]) Create(ctx context.Context, entity *T) (int64, error) {
	res := r.DB.WithContext(ctx).Omit(clause.Associations).Create(entity)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Update replaces every column of the row whose id matches entity. A missing
// row is reported as zero affected rows, never inserted.
func (r *GormRepo[T]) Update(ctx context.Context, entity *T) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", (*entity).GetID()).
		Select("*").
		Omit(clause.Associations).
		Updates(entity)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *GormRepo[T]) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
