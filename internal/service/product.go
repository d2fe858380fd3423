package service

import (
	"context"

	"github.com/Skotchmaster/ecommerce/internal/events"
	"github.com/Skotchmaster/ecommerce/internal/logging"
	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/repo"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/google/uuid"
)

type ProductService struct {
	Repo   repo.Generic[models.Product]
	Events EventPublisher
	Index  ProductIndexer
}

func (s *ProductService) GetAll(ctx context.Context) ([]transport.GetProduct, error) {
	items, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return transport.FromProducts(items), nil
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*transport.GetProduct, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := transport.FromProduct(*p)
	return &out, nil
}

func (s *ProductService) Create(ctx context.Context, dto transport.CreateProduct) (transport.ServiceResponse, error) {
	p := dto.ToModel()
	n, err := s.Repo.Create(ctx, &p)
	if err != nil {
		return transport.ServiceResponse{}, err
	}
	if n > 0 {
		s.changed(ctx, "product_created", p)
	}
	return response(n, "Product Created successfully.", "Product failed to be Created."), nil
}

func (s *ProductService) Update(ctx context.Context, dto transport.UpdateProduct) (transport.ServiceResponse, error) {
	p := dto.ToModel()
	n, err := s.Repo.Update(ctx, &p)
	if err != nil {
		return transport.ServiceResponse{}, err
	}
	if n > 0 {
		s.changed(ctx, "product_updated", p)
	}
	return response(n, "Product Updated successfully.", "Product failed to be Updated."), nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) (transport.ServiceResponse, error) {
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return transport.ServiceResponse{}, err
	}
	if n > 0 {
		publish(ctx, s.Events, events.TopicProducts, id.String(), "product_deleted", map[string]any{"id": id})
		if s.Index != nil {
			if err := s.Index.DeleteProduct(ctx, id); err != nil {
				logging.FromContext(ctx).Error("product_unindex_failed", "product_id", id, "error", err)
			}
		}
	}
	return response(n, "Product Deleted successfully.", "Product failed to be deleted."), nil
}

func (s *ProductService) changed(ctx context.Context, eventType string, p models.Product) {
	publish(ctx, s.Events, events.TopicProducts, p.ID.String(), eventType, transport.FromProduct(p))
	if s.Index != nil {
		if err := s.Index.IndexProduct(ctx, p); err != nil {
			logging.FromContext(ctx).Error("product_index_failed", "product_id", p.ID, "error", err)
		}
	}
}
