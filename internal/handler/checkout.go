package handler

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"bytebazaar-storefront/internal/cart"
	"bytebazaar-storefront/internal/checkout"
	"bytebazaar-storefront/internal/dto"

	"github.com/labstack/echo/v4"
)

// CheckoutHandler drives the checkout wizard over HTTP. A wizard instance
// lives from Begin until the order completes or the user walks away; a new
// Begin always starts a fresh one.
type CheckoutHandler struct {
	mu      sync.Mutex
	api     checkout.API
	cart    *cart.Holder
	current *checkout.Orchestrator
}

func NewCheckoutHandler(api checkout.API, cartHolder *cart.Holder) *CheckoutHandler {
	return &CheckoutHandler{
		api:  api,
		cart: cartHolder,
	}
}

// Page gates the checkout route: an empty cart (after a resync) bounces the
// user back to the cart view instead of rendering checkout.
func (h *CheckoutHandler) Page(c echo.Context) error {
	ctx := c.Request().Context()

	_ = h.cart.Refresh(ctx)
	if h.cart.IsEmpty() {
		return c.Redirect(http.StatusFound, "/cart")
	}
	return c.JSON(http.StatusOK, map[string]string{"page": "checkout"})
}

// Begin starts a fresh wizard: loads profile and saved payment methods, then
// reports the payment-entry state.
func (h *CheckoutHandler) Begin(c echo.Context) error {
	ctx := c.Request().Context()

	flow := checkout.NewOrchestrator(h.api, h.cart)
	if err := flow.Begin(ctx); err != nil {
		return checkoutError(err)
	}

	h.mu.Lock()
	h.current = flow
	h.mu.Unlock()

	return c.JSON(http.StatusOK, h.stateResponse(flow))
}

// PaymentEntry applies form edits: saved-method selection, card entry,
// billing toggles, save requests.
func (h *CheckoutHandler) PaymentEntry(c echo.Context) error {
	flow := h.flow()
	if flow == nil {
		return echo.NewHTTPError(http.StatusConflict, "checkout has not been started")
	}

	var req dto.PaymentEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if req.SavedPaymentMethodID != nil {
		if err := flow.SelectSavedMethod(*req.SavedPaymentMethodID); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	form := flow.Form()
	if form == nil {
		return echo.NewHTTPError(http.StatusConflict, "checkout is still loading, please wait")
	}

	if req.Card != nil {
		err := form.SetCard(checkout.CardInput{
			Number:      req.Card.Number,
			CVV:         req.Card.CVV,
			ExpiryMonth: req.Card.ExpiryMonth,
			ExpiryYear:  req.Card.ExpiryYear,
			HolderName:  req.Card.HolderName,
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	if req.SameAsShipping != nil {
		form.SetSameAsShipping(*req.SameAsShipping)
	}
	if req.BillingAddress != nil {
		if err := form.SetBillingAddress(*req.BillingAddress); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	if req.SavePaymentMethod != nil {
		form.SetSaveMethod(*req.SavePaymentMethod)
	}

	return c.JSON(http.StatusOK, h.stateResponse(flow))
}

// PlaceOrder submits the order and reports the confirmation.
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()

	flow := h.flow()
	if flow == nil {
		return echo.NewHTTPError(http.StatusConflict, "checkout has not been started")
	}

	confirmation, err := flow.PlaceOrder(ctx)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNotReady):
			return echo.NewHTTPError(http.StatusConflict, checkout.ErrNotReady.Error())
		case errors.Is(err, checkout.ErrPlacementInFlight):
			return echo.NewHTTPError(http.StatusConflict, checkout.ErrPlacementInFlight.Error())
		}
		if msg := flow.UserError(); msg != "" {
			return echo.NewHTTPError(http.StatusBadGateway, msg)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, &dto.PlaceOrderResponse{
		TransactionID:   confirmation.TransactionID,
		Total:           confirmation.Total,
		TransactionDate: confirmation.TransactionDate.Format(time.RFC3339),
	})
}

// State reports where the wizard currently is.
func (h *CheckoutHandler) State(c echo.Context) error {
	flow := h.flow()
	if flow == nil {
		return echo.NewHTTPError(http.StatusConflict, "checkout has not been started")
	}
	return c.JSON(http.StatusOK, h.stateResponse(flow))
}

func (h *CheckoutHandler) flow() *checkout.Orchestrator {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func (h *CheckoutHandler) stateResponse(flow *checkout.Orchestrator) *dto.CheckoutStateResponse {
	resp := &dto.CheckoutStateResponse{
		State:        string(flow.State()),
		Summary:      h.cart.Summary(),
		SavedMethods: flow.Methods(),
		Error:        flow.UserError(),
	}
	if profile := flow.Profile(); profile != nil {
		resp.ShippingTo = profile.Address()
	}
	if form := flow.Form(); form != nil {
		resp.SameAsShipping = form.SameAsShipping()
	}
	return resp
}

func checkoutError(err error) error {
	return cartError(err)
}
