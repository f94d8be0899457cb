package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bytebazaar-storefront/internal/config"
	"bytebazaar-storefront/internal/model"
)

// TokenSource supplies the bearer token for authenticated calls. The session
// manager implements it; an empty token means no Authorization header is set
// and the backend answers 401.
type TokenSource interface {
	Token() string
}

type StorefrontClient interface {
	// Catalog
	ListProducts(ctx context.Context) ([]*model.Product, error)
	GetProduct(ctx context.Context, productID int64) (*model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]*model.Product, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	UpdateCategory(ctx context.Context, categoryID int64, name string) (*model.Category, error)
	DeleteCategory(ctx context.Context, categoryID int64) error

	// Cart
	GetCart(ctx context.Context) ([]*model.CartItem, error)
	AddCartItem(ctx context.Context, productID int64, quantity int32) error
	UpdateCartItem(ctx context.Context, cartItemID int64, quantity int32) error
	RemoveCartItem(ctx context.Context, cartItemID int64) error
	ClearCart(ctx context.Context) error

	// Profile and payment methods
	GetProfile(ctx context.Context) (*model.UserProfile, error)
	ListPaymentMethods(ctx context.Context) ([]*model.PaymentMethod, error)
	AddPaymentMethod(ctx context.Context, req *PaymentMethodRequest) (*model.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, paymentID int64, req *PaymentMethodRequest) (*model.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, paymentID int64) error

	// Orders and shipments
	Checkout(ctx context.Context, requestKey string) (*model.OrderConfirmation, error)
	ListShipments(ctx context.Context) ([]*model.ShipmentTracking, error)
	GetShipment(ctx context.Context, transactionID int64) (*model.ShipmentTracking, error)
}

type storefrontClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	tokens     TokenSource
}

func NewStorefrontClient(cfg *config.Storefront, tokens TokenSource) StorefrontClient {
	return &storefrontClientImpl{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		baseApiURL: cfg.BaseApiURL,
		tokens:     tokens,
	}
}

// do issues an authenticated JSON request and decodes a 2xx body into out
// (out may be nil for calls whose response body is ignored). Non-2xx
// responses come back as a classified *APIError.
func (c *storefrontClientImpl) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal req payload: %w", err)
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseApiURL+path, body)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", netError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: %w", method, path, classifyStatus(resp.StatusCode, b))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}
