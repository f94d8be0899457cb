package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bytebazaar-storefront/internal/cart"
	"bytebazaar-storefront/internal/client"
	"bytebazaar-storefront/internal/dto"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cart *cart.Holder
}

func NewCartHandler(cartHolder *cart.Holder) *CartHandler {
	return &CartHandler{
		cart: cartHolder,
	}
}

func (h *CartHandler) respond(c echo.Context) error {
	return c.JSON(http.StatusOK, &dto.CartResponse{
		Items:      h.cart.Items(),
		Summary:    h.cart.Summary(),
		ItemCount:  h.cart.ItemCount(),
		DrawerOpen: h.cart.DrawerOpen(),
	})
}

// GetCart resyncs from the backend and returns the cart view.
func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.cart.Refresh(ctx); err != nil {
		return cartError(err)
	}
	return h.respond(c)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.cart.AddItem(ctx, req.ProductID, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidInput) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return cartError(err)
	}
	return h.respond(c)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	cartItemID, err := strconv.ParseInt(c.Param("cartItemID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid cart item id")
	}

	var req dto.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.cart.UpdateQuantity(ctx, cartItemID, req.Quantity); err != nil {
		return cartError(err)
	}
	return h.respond(c)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	cartItemID, err := strconv.ParseInt(c.Param("cartItemID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid cart item id")
	}

	if err := h.cart.RemoveItem(ctx, cartItemID); err != nil {
		return cartError(err)
	}
	return h.respond(c)
}

func (h *CartHandler) Clear(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.cart.Clear(ctx); err != nil {
		return cartError(err)
	}
	return h.respond(c)
}

func (h *CartHandler) ToggleDrawer(c echo.Context) error {
	h.cart.ToggleDrawer()
	return h.respond(c)
}

// cartError translates an API failure into the HTTP error the view shows.
func cartError(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
		return echo.NewHTTPError(status, apiErr.Message)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
}
