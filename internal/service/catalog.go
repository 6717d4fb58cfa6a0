package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Skotchmaster/product_catalog/internal/events"
	"github.com/Skotchmaster/product_catalog/internal/logging"
	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/search"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

type ProductStore interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error)
	UpdateOwnedProduct(ctx context.Context, id, ownerID uint, fields map[string]any) (*models.Product, error)
	DeleteOwnedProduct(ctx context.Context, id, ownerID uint) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

type CatalogService struct {
	Repo   ProductStore
	Search search.Searcher
	Events events.Publisher
}

func (s *CatalogService) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.GetProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return prod, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, ownerID uint, req transport.CreateProductRequest) (*models.Product, error) {
	if req.ProductName == "" {
		return nil, fmt.Errorf("%w: productName is required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	if _, err := s.Repo.GetUserByID(ctx, ownerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnknownOwner
		}
		return nil, err
	}

	prod, err := s.Repo.CreateProduct(ctx, &models.Product{
		Name:        req.ProductName,
		ImageLink:   req.ImageLink,
		Description: req.Description,
		Price:       req.Price,
		UserID:      ownerID,
	})
	if err != nil {
		return nil, err
	}

	s.index(ctx, *prod)
	events.Emit(ctx, s.Events, events.TopicProducts, productKey(prod.ID), events.Event{
		Type:      events.ProductCreated,
		UserID:    ownerID,
		ProductID: prod.ID,
		Name:      prod.Name,
	})
	return prod, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id, callerID uint, req transport.UpdateProductRequest) (*models.Product, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	fields := req.Fields()
	prod, err := s.Repo.UpdateOwnedProduct(ctx, id, callerID, fields)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	if len(fields) > 0 {
		s.index(ctx, *prod)
		events.Emit(ctx, s.Events, events.TopicProducts, productKey(prod.ID), events.Event{
			Type:      events.ProductUpdated,
			UserID:    callerID,
			ProductID: prod.ID,
			Name:      prod.Name,
		})
	}
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id, callerID uint) error {
	if err := s.Repo.DeleteOwnedProduct(ctx, id, callerID); err != nil {
		return mapRepoErr(err)
	}

	if s.Search != nil {
		if err := s.Search.Remove(ctx, id); err != nil {
			logging.FromContext(ctx).Error("search_remove_failed", "product_id", id, "error", err)
		}
	}
	events.Emit(ctx, s.Events, events.TopicProducts, productKey(id), events.Event{
		Type:      events.ProductDeleted,
		UserID:    callerID,
		ProductID: id,
	})
	return nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, q string, limit int) ([]models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" || s.Search == nil {
		return []models.Product{}, nil
	}
	return s.Search.Search(ctx, q, search.ClampLimit(limit))
}

func (s *CatalogService) index(ctx context.Context, p models.Product) {
	if s.Search == nil {
		return
	}
	if err := s.Search.Index(ctx, p); err != nil {
		logging.FromContext(ctx).Error("search_index_failed", "product_id", p.ID, "error", err)
	}
}

func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repo.ErrNotOwner):
		return ErrForbidden
	default:
		return err
	}
}

func productKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
