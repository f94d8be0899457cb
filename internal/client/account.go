package client

import (
	"context"
	"fmt"

	"bytebazaar-storefront/internal/model"
)

// PaymentMethodRequest carries the raw card details to the backend when a
// method is created or replaced. It exists only for the duration of the
// call; responses never echo the full number back.
type PaymentMethodRequest struct {
	CardNumber  string `json:"cardNumber"`
	ExpiryMonth int    `json:"cardExpirationMonth"`
	ExpiryYear  int    `json:"cardExpirationYear"`
	HolderName  string `json:"nameOnCard"`

	Line1   string `json:"addressLine1"`
	Line2   string `json:"addressLine2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type paymentMethodResponse struct {
	PaymentID   int64  `json:"paymentId"`
	CardNumber  string `json:"cardNumber"` // masked or last-4 form from the backend
	ExpiryMonth int    `json:"cardExpirationMonth"`
	ExpiryYear  int    `json:"cardExpirationYear"`
	HolderName  string `json:"nameOnCard"`

	Line1   string `json:"addressLine1"`
	Line2   string `json:"addressLine2"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// toModel truncates whatever card rendering the backend sent down to the
// last four digits so nothing longer survives past the boundary.
func (r *paymentMethodResponse) toModel() *model.PaymentMethod {
	return &model.PaymentMethod{
		PaymentID:   r.PaymentID,
		CardLast4:   model.Last4(r.CardNumber),
		ExpiryMonth: r.ExpiryMonth,
		ExpiryYear:  r.ExpiryYear,
		HolderName:  r.HolderName,
		Billing: model.Address{
			Line1:   r.Line1,
			Line2:   r.Line2,
			City:    r.City,
			State:   r.State,
			ZipCode: r.ZipCode,
			Country: r.Country,
		},
	}
}

func (c *storefrontClientImpl) GetProfile(ctx context.Context) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := c.do(ctx, "GET", "/auth/profile", nil, &profile); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

func (c *storefrontClientImpl) ListPaymentMethods(ctx context.Context) ([]*model.PaymentMethod, error) {
	var raw []*paymentMethodResponse
	if err := c.do(ctx, "GET", "/api/payment-methods", nil, &raw); err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	methods := make([]*model.PaymentMethod, len(raw))
	for i, r := range raw {
		methods[i] = r.toModel()
	}
	return methods, nil
}

func (c *storefrontClientImpl) AddPaymentMethod(ctx context.Context, req *PaymentMethodRequest) (*model.PaymentMethod, error) {
	var raw paymentMethodResponse
	if err := c.do(ctx, "POST", "/api/payment-methods", req, &raw); err != nil {
		return nil, fmt.Errorf("add payment method: %w", err)
	}
	return raw.toModel(), nil
}

func (c *storefrontClientImpl) UpdatePaymentMethod(ctx context.Context, paymentID int64, req *PaymentMethodRequest) (*model.PaymentMethod, error) {
	var raw paymentMethodResponse
	path := fmt.Sprintf("/api/payment-methods/%d", paymentID)
	if err := c.do(ctx, "PUT", path, req, &raw); err != nil {
		return nil, fmt.Errorf("update payment method %d: %w", paymentID, err)
	}
	return raw.toModel(), nil
}

func (c *storefrontClientImpl) DeletePaymentMethod(ctx context.Context, paymentID int64) error {
	path := fmt.Sprintf("/api/payment-methods/%d", paymentID)
	if err := c.do(ctx, "DELETE", path, nil, nil); err != nil {
		return fmt.Errorf("delete payment method %d: %w", paymentID, err)
	}
	return nil
}
