package client

import (
	"context"
	"fmt"

	"bytebazaar-storefront/internal/model"
)

type addCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int32 `json:"quantity"`
}

func (c *storefrontClientImpl) GetCart(ctx context.Context) ([]*model.CartItem, error) {
	var items []*model.CartItem
	if err := c.do(ctx, "GET", "/api/cart", nil, &items); err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return items, nil
}

func (c *storefrontClientImpl) AddCartItem(ctx context.Context, productID int64, quantity int32) error {
	req := &addCartItemRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, "POST", "/api/cart", req, nil); err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

func (c *storefrontClientImpl) UpdateCartItem(ctx context.Context, cartItemID int64, quantity int32) error {
	path := fmt.Sprintf("/api/cart/%d", cartItemID)
	if err := c.do(ctx, "PUT", path, &updateCartItemRequest{Quantity: quantity}, nil); err != nil {
		return fmt.Errorf("update cart item %d: %w", cartItemID, err)
	}
	return nil
}

func (c *storefrontClientImpl) RemoveCartItem(ctx context.Context, cartItemID int64) error {
	path := fmt.Sprintf("/api/cart/%d", cartItemID)
	if err := c.do(ctx, "DELETE", path, nil, nil); err != nil {
		return fmt.Errorf("remove cart item %d: %w", cartItemID, err)
	}
	return nil
}

func (c *storefrontClientImpl) ClearCart(ctx context.Context) error {
	if err := c.do(ctx, "DELETE", "/api/cart", nil, nil); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
