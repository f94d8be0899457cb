package catalog

import (
	"context"
	"fmt"
	"strings"

	"bytebazaar-storefront/internal/model"
)

// API is the slice of the storefront client the catalog views read through.
type API interface {
	ListProducts(ctx context.Context) ([]*model.Product, error)
	GetProduct(ctx context.Context, productID int64) (*model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]*model.Product, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	UpdateCategory(ctx context.Context, categoryID int64, name string) (*model.Category, error)
	DeleteCategory(ctx context.Context, categoryID int64) error
}

// Service is the browse/search read path over the catalog API. It owns no
// state; every call goes to the backend and errors surface to the view.
type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{
		api: api,
	}
}

func (s *Service) Browse(ctx context.Context) ([]*model.Product, error) {
	return s.api.ListProducts(ctx)
}

func (s *Service) Product(ctx context.Context, productID int64) (*model.Product, error) {
	if productID <= 0 {
		return nil, fmt.Errorf("invalid product id %d", productID)
	}
	return s.api.GetProduct(ctx, productID)
}

// Search runs a catalog search; a blank query falls back to browsing the
// full catalog, matching the storefront's search box behavior.
func (s *Service) Search(ctx context.Context, query string) ([]*model.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.api.ListProducts(ctx)
	}
	return s.api.SearchProducts(ctx, query)
}

func (s *Service) Categories(ctx context.Context) ([]*model.Category, error) {
	return s.api.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	return s.api.CreateCategory(ctx, name)
}

func (s *Service) RenameCategory(ctx context.Context, categoryID int64, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	return s.api.UpdateCategory(ctx, categoryID, name)
}

func (s *Service) DeleteCategory(ctx context.Context, categoryID int64) error {
	return s.api.DeleteCategory(ctx, categoryID)
}
