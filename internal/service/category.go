package service

import (
	"context"

	"github.com/Skotchmaster/ecommerce/internal/events"
	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/repo"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/google/uuid"
)

type CategoryService struct {
	Repo   repo.Generic[models.Category]
	Events EventPublisher
}

func (s *CategoryService) GetAll(ctx context.Context) ([]transport.GetCategory, error) {
	items, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return transport.FromCategories(items), nil
}

func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*transport.GetCategory, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := transport.FromCategory(*c)
	return &out, nil
}

func (s *CategoryService) Create(ctx context.Context, dto transport.CreateCategory) (transport.ServiceResponse, error) {
	c := dto.ToModel()
	n, err := s.Repo.Create(ctx, &c)
	if err != nil {
		return transport.ServiceResponse{}, err
	}
	if n > 0 {
		publish(ctx, s.Events, events.TopicCategories, c.ID.String(), "category_created", transport.FromCategory(c))
	}
	return response(n, "Category Created successfully.", "Category failed to be Created."), nil
}

func (s *CategoryService) Update(ctx context.Context, dto transport.UpdateCategory) (transport.ServiceResponse, error) {
	c := dto.ToModel()
	n, err := s.Repo.Update(ctx, &c)
	if err != nil {
		return transport.ServiceResponse{}, err
	}
	if n > 0 {
		publish(ctx, s.Events, events.TopicCategories, c.ID.String(), "category_updated", transport.FromCategory(c))
	}
	return response(n, "Category Updated successfully.", "Category failed to be Updated."), nil
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) (transport.ServiceResponse, error) {
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return transport.ServiceResponse{}, err
	}
	if n > 0 {
		publish(ctx, s.Events, events.TopicCategories, id.String(), "category_deleted", map[string]any{"id": id})
	}
	return response(n, "Category Deleted successfully.", "Category failed to be deleted."), nil
}
