package model

type Product struct {
	ID          int64   `json:"productId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       Cents   `json:"priceCents"`
	ImageURL    string  `json:"imageUrl"`
	Rating      float64 `json:"rating"`
	CategoryID  int64   `json:"categoryId,omitempty"`
	Inventory   int32   `json:"availableQuantity"`
}

type Category struct {
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}
