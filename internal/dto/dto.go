package dto

import "bytebazaar-storefront/internal/model"

type AddToCartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int32 `json:"quantity"`
}

type CartResponse struct {
	Items      []*model.CartItem  `json:"items"`
	Summary    model.OrderSummary `json:"summary"`
	ItemCount  int32              `json:"itemCount"`
	DrawerOpen bool               `json:"drawerOpen"`
}

type CardRequest struct {
	Number      string `json:"cardNumber"`
	CVV         string `json:"cvv"`
	ExpiryMonth int    `json:"expiryMonth"`
	ExpiryYear  int    `json:"expiryYear"`
	HolderName  string `json:"nameOnCard"`
}

// PaymentEntryRequest mutates the payment step: pick a saved method (or 0
// for manual entry), type card details, toggle billing source, request a
// save. Absent fields leave that part of the form untouched.
type PaymentEntryRequest struct {
	SavedPaymentMethodID *int64         `json:"savedPaymentMethodId,omitempty"`
	Card                 *CardRequest   `json:"card,omitempty"`
	SameAsShipping       *bool          `json:"sameAsShipping,omitempty"`
	BillingAddress       *model.Address `json:"billingAddress,omitempty"`
	SavePaymentMethod    *bool          `json:"savePaymentMethod,omitempty"`
}

type CheckoutStateResponse struct {
	State          string                 `json:"state"`
	Summary        model.OrderSummary     `json:"summary"`
	ShippingTo     model.Address          `json:"shippingTo"`
	SavedMethods   []*model.PaymentMethod `json:"savedMethods"`
	SameAsShipping bool                   `json:"sameAsShipping"`
	Error          string                 `json:"error,omitempty"`
}

type PlaceOrderResponse struct {
	TransactionID   int64       `json:"transactionId"`
	Total           model.Cents `json:"totalCents"`
	TransactionDate string      `json:"transactionDate"`
}

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

type CategoryRequest struct {
	CategoryName string `json:"categoryName"`
}

type ThemeRequest struct {
	Theme string `json:"theme"` // "light" or "dark"
}

type ThemeResponse struct {
	Theme string `json:"theme"`
}
