package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"bytebazaar-storefront/internal/model"
)

// Checkout asks the backend to create an order from the server-side cart.
// The backend owns inventory checks, pricing and cart clearing; requestKey
// lets it deduplicate a resubmitted order.
func (c *storefrontClientImpl) Checkout(ctx context.Context, requestKey string) (*model.OrderConfirmation, error) {
	url := c.baseApiURL + "/api/transactions/checkout"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create checkout request: %w", err)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestKey != "" {
		req.Header.Set("X-Request-Key", requestKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout request failed: %w", netError(err))
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("checkout: %w", classifyStatus(resp.StatusCode, body))
	}

	var confirmation model.OrderConfirmation
	if err := json.Unmarshal(body, &confirmation); err != nil {
		return nil, fmt.Errorf("decode checkout response: %w", err)
	}
	return &confirmation, nil
}

func (c *storefrontClientImpl) ListShipments(ctx context.Context) ([]*model.ShipmentTracking, error) {
	var shipments []*model.ShipmentTracking
	if err := c.do(ctx, "GET", "/api/shipments", nil, &shipments); err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	return shipments, nil
}

func (c *storefrontClientImpl) GetShipment(ctx context.Context, transactionID int64) (*model.ShipmentTracking, error) {
	var shipment model.ShipmentTracking
	path := fmt.Sprintf("/api/shipments/%d", transactionID)
	if err := c.do(ctx, "GET", path, nil, &shipment); err != nil {
		return nil, fmt.Errorf("get shipment %d: %w", transactionID, err)
	}
	return &shipment, nil
}
