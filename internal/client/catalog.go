package client

import (
	"context"
	"fmt"
	"net/url"

	"bytebazaar-storefront/internal/model"
)

func (c *storefrontClientImpl) ListProducts(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	if err := c.do(ctx, "GET", "/api/products", nil, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (c *storefrontClientImpl) GetProduct(ctx context.Context, productID int64) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, "GET", fmt.Sprintf("/api/products/%d", productID), nil, &product); err != nil {
		return nil, fmt.Errorf("get product %d: %w", productID, err)
	}
	return &product, nil
}

func (c *storefrontClientImpl) SearchProducts(ctx context.Context, query string) ([]*model.Product, error) {
	var products []*model.Product
	path := "/api/products/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, "GET", path, nil, &products); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

func (c *storefrontClientImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	if err := c.do(ctx, "GET", "/api/categories", nil, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

type categoryRequest struct {
	CategoryName string `json:"categoryName"`
}

func (c *storefrontClientImpl) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	if err := c.do(ctx, "POST", "/api/categories", &categoryRequest{CategoryName: name}, &category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

func (c *storefrontClientImpl) UpdateCategory(ctx context.Context, categoryID int64, name string) (*model.Category, error) {
	var category model.Category
	path := fmt.Sprintf("/api/categories/%d", categoryID)
	if err := c.do(ctx, "PUT", path, &categoryRequest{CategoryName: name}, &category); err != nil {
		return nil, fmt.Errorf("update category %d: %w", categoryID, err)
	}
	return &category, nil
}

func (c *storefrontClientImpl) DeleteCategory(ctx context.Context, categoryID int64) error {
	path := fmt.Sprintf("/api/categories/%d", categoryID)
	if err := c.do(ctx, "DELETE", path, nil, nil); err != nil {
		return fmt.Errorf("delete category %d: %w", categoryID, err)
	}
	return nil
}
