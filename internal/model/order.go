package model

import "time"

// OrderConfirmation is returned by the backend checkout endpoint once an
// order has been created from the server-side cart.
type OrderConfirmation struct {
	TransactionID   int64     `json:"transactionId"`
	Total           Cents     `json:"priceCents"`
	TransactionDate time.Time `json:"transactionDate"`
}

type ShipmentItem struct {
	ProductID       int64  `json:"productId"`
	ProductName     string `json:"productName"`
	Quantity        int32  `json:"quantity"`
	PriceAtPurchase Cents  `json:"priceAtPurchaseCents"`
	DaysToDeliver   int    `json:"daysToDeliver"`
}

type ShipmentTracking struct {
	TransactionID     int64          `json:"transactionId"`
	TrackingNumber    string         `json:"trackingNumber"`
	Status            string         `json:"status"`
	TotalPrice        Cents          `json:"totalPriceCents"`
	OrderDate         time.Time      `json:"orderDate"`
	EstimatedDelivery time.Time      `json:"estimatedDelivery"`
	DeliveryAddress   string         `json:"deliveryAddress"`
	Items             []ShipmentItem `json:"items"`
	MaxDeliveryDays   int            `json:"maxDeliveryDays"`
}
