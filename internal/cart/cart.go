package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"bytebazaar-storefront/internal/model"
)

// Tax and shipping follow the store's fixed pricing: 8% tax and flat
// standard shipping.
const (
	TaxRateBasisPoints = 800
	ShippingFee        = model.Cents(999)
)

// ErrInvalidInput is returned for mutations rejected before any backend call.
var ErrInvalidInput = errors.New("product id and quantity must be positive")

// API is the slice of the storefront client the cart needs.
type API interface {
	GetCart(ctx context.Context) ([]*model.CartItem, error)
	AddCartItem(ctx context.Context, productID int64, quantity int32) error
	UpdateCartItem(ctx context.Context, cartItemID int64, quantity int32) error
	RemoveCartItem(ctx context.Context, cartItemID int64) error
	ClearCart(ctx context.Context) error
}

// Holder is the single source of truth for the locally cached cart. The
// backend owns the real cart; every mutation goes through it and is followed
// by a full refresh, never an optimistic local edit. Consumers read items
// and totals; only the holder writes them.
type Holder struct {
	mu         sync.RWMutex
	api        API
	items      []*model.CartItem
	lastErr    error
	drawerOpen bool
}

func NewHolder(api API) *Holder {
	return &Holder{
		api: api,
	}
}

// Refresh replaces the cached items wholesale with the backend's cart. On
// failure the prior cache is left untouched and the error is recorded.
func (h *Holder) Refresh(ctx context.Context) error {
	items, err := h.api.GetCart(ctx)
	if err != nil {
		h.mu.Lock()
		h.lastErr = err
		h.mu.Unlock()
		return fmt.Errorf("refresh cart: %w", err)
	}

	kept := make([]*model.CartItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		kept = append(kept, item)
	}

	h.mu.Lock()
	h.items = kept
	h.lastErr = nil
	h.mu.Unlock()
	return nil
}

// AddItem posts a new entry and resyncs. The refresh, not a local append,
// is what makes the item visible, so server-computed fields stay
// authoritative. A failed follow-up refresh is recorded but does not turn a
// successful add into a failure.
func (h *Holder) AddItem(ctx context.Context, productID int64, quantity int32) error {
	if productID <= 0 || quantity <= 0 {
		return ErrInvalidInput
	}

	if err := h.api.AddCartItem(ctx, productID, quantity); err != nil {
		return fmt.Errorf("add item: %w", err)
	}

	_ = h.Refresh(ctx)
	return nil
}

// UpdateQuantity changes an entry's quantity; anything below one is a
// removal, never a zero-quantity entry.
func (h *Holder) UpdateQuantity(ctx context.Context, cartItemID int64, quantity int32) error {
	if quantity < 1 {
		return h.RemoveItem(ctx, cartItemID)
	}

	if err := h.api.UpdateCartItem(ctx, cartItemID, quantity); err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}

	_ = h.Refresh(ctx)
	return nil
}

func (h *Holder) RemoveItem(ctx context.Context, cartItemID int64) error {
	if err := h.api.RemoveCartItem(ctx, cartItemID); err != nil {
		return fmt.Errorf("remove item: %w", err)
	}

	_ = h.Refresh(ctx)
	return nil
}

// Clear empties the backend cart and resets the local cache, used after a
// successful order placement.
func (h *Holder) Clear(ctx context.Context) error {
	if err := h.api.ClearCart(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	h.mu.Lock()
	h.items = nil
	h.lastErr = nil
	h.mu.Unlock()
	return nil
}

// Items returns a copy of the cached cart contents.
func (h *Holder) Items() []*model.CartItem {
	h.mu.RLock()
	defer h.mu.RUnlock()
	items := make([]*model.CartItem, len(h.items))
	for i, item := range h.items {
		cp := *item
		items[i] = &cp
	}
	return items
}

func (h *Holder) ItemCount() int32 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var count int32
	for _, item := range h.items {
		count += item.Quantity
	}
	return count
}

func (h *Holder) Subtotal() model.Cents {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return subtotal(h.items)
}

// Summary derives the order totals from the current items. It is recomputed
// on every call, never cached.
func (h *Holder) Summary() model.OrderSummary {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sub := subtotal(h.items)
	tax := sub * TaxRateBasisPoints / 10000
	return model.OrderSummary{
		Subtotal: sub,
		Tax:      tax,
		Shipping: ShippingFee,
		Total:    sub + tax + ShippingFee,
	}
}

// LastError reports the most recent refresh failure, cleared by the next
// successful refresh.
func (h *Holder) LastError() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastErr
}

func (h *Holder) IsEmpty() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items) == 0
}

func (h *Holder) OpenDrawer() {
	h.mu.Lock()
	h.drawerOpen = true
	h.mu.Unlock()
}

func (h *Holder) CloseDrawer() {
	h.mu.Lock()
	h.drawerOpen = false
	h.mu.Unlock()
}

func (h *Holder) ToggleDrawer() {
	h.mu.Lock()
	h.drawerOpen = !h.drawerOpen
	h.mu.Unlock()
}

func (h *Holder) DrawerOpen() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.drawerOpen
}

func subtotal(items []*model.CartItem) model.Cents {
	var sum model.Cents
	for _, item := range items {
		sum += item.UnitPrice * model.Cents(item.Quantity)
	}
	return sum
}
