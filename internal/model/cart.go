package model

// CartItem is a line item in the server-side cart. The backend owns the
// authoritative copy; instances here are a local mirror replaced wholesale
// on every refresh.
type CartItem struct {
	CartItemID int64  `json:"cartItemId"`
	ProductID  int64  `json:"productId"`
	Name       string `json:"name"`
	UnitPrice  Cents  `json:"unitPriceCents"`
	Quantity   int32  `json:"quantity"`
	ImageURL   string `json:"imageUrl"`
	Inventory  int32  `json:"availableQuantity"`
}

// OrderSummary is derived from the current cart contents, never stored.
type OrderSummary struct {
	Subtotal Cents `json:"subtotalCents"`
	Tax      Cents `json:"taxCents"`
	Shipping Cents `json:"shippingCents"`
	Total    Cents `json:"totalCents"`
}
