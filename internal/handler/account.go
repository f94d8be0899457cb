package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bytebazaar-storefront/internal/client"
	"bytebazaar-storefront/internal/dto"
	"bytebazaar-storefront/internal/repository"
	"bytebazaar-storefront/internal/session"

	"github.com/labstack/echo/v4"
)

// AccountHandler serves profile, saved payment methods, shipment tracking
// and local UI preferences for the signed-in user.
type AccountHandler struct {
	api      client.StorefrontClient
	sessions *session.Manager
	prefs    repository.PreferenceRepository
}

func NewAccountHandler(api client.StorefrontClient, sessions *session.Manager, prefs repository.PreferenceRepository) *AccountHandler {
	return &AccountHandler{
		api:      api,
		sessions: sessions,
		prefs:    prefs,
	}
}

func (h *AccountHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	profile, err := h.api.GetProfile(ctx)
	if err != nil {
		return cartError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *AccountHandler) ListPaymentMethods(c echo.Context) error {
	ctx := c.Request().Context()

	methods, err := h.api.ListPaymentMethods(ctx)
	if err != nil {
		return cartError(err)
	}
	return c.JSON(http.StatusOK, methods)
}

func (h *AccountHandler) AddPaymentMethod(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PaymentMethodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := validatePaymentMethod(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	method, err := h.api.AddPaymentMethod(ctx, toClientPaymentMethod(&req))
	if err != nil {
		return cartError(err)
	}
	return c.JSON(http.StatusCreated, method)
}

func (h *AccountHandler) UpdatePaymentMethod(c echo.Context) error {
	ctx := c.Request().Context()

	paymentID, err := strconv.ParseInt(c.Param("paymentID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment method id")
	}

	var req dto.PaymentMethodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := validatePaymentMethod(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	method, err := h.api.UpdatePaymentMethod(ctx, paymentID, toClientPaymentMethod(&req))
	if err != nil {
		return cartError(err)
	}
	return c.JSON(http.StatusOK, method)
}

func (h *AccountHandler) DeletePaymentMethod(c echo.Context) error {
	ctx := c.Request().Context()

	paymentID, err := strconv.ParseInt(c.Param("paymentID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment method id")
	}

	if err := h.api.DeletePaymentMethod(ctx, paymentID); err != nil {
		return cartError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) ListShipments(c echo.Context) error {
	ctx := c.Request().Context()

	shipments, err := h.api.ListShipments(ctx)
	if err != nil {
		return cartError(err)
	}
	return c.JSON(http.StatusOK, shipments)
}

func (h *AccountHandler) GetShipment(c echo.Context) error {
	ctx := c.Request().Context()

	transactionID, err := strconv.ParseInt(c.Param("transactionID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid transaction id")
	}

	shipment, err := h.api.GetShipment(ctx, transactionID)
	if err != nil {
		return cartError(err)
	}
	return c.JSON(http.StatusOK, shipment)
}

func (h *AccountHandler) GetTheme(c echo.Context) error {
	ctx := c.Request().Context()

	identity := h.sessions.Identity()
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}

	theme, err := h.prefs.Get(ctx, identity.ID, "theme")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load preferences")
	}
	if theme == "" {
		theme = "light"
	}
	return c.JSON(http.StatusOK, &dto.ThemeResponse{Theme: theme})
}

func (h *AccountHandler) SetTheme(c echo.Context) error {
	ctx := c.Request().Context()

	identity := h.sessions.Identity()
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}

	var req dto.ThemeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Theme != "light" && req.Theme != "dark" {
		return echo.NewHTTPError(http.StatusBadRequest, "theme must be light or dark")
	}

	if err := h.prefs.Set(ctx, identity.ID, "theme", req.Theme); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not save preference")
	}
	return c.JSON(http.StatusOK, &dto.ThemeResponse{Theme: req.Theme})
}

func validatePaymentMethod(req *dto.PaymentMethodRequest) error {
	switch {
	case len(req.CardNumber) < 13:
		return errors.New("card number is too short")
	case req.ExpiryMonth < 1 || req.ExpiryMonth > 12:
		return errors.New("expiration month must be between 1 and 12")
	case req.HolderName == "":
		return errors.New("name on card is required")
	case req.Line1 == "" || req.City == "" || req.State == "" || req.ZipCode == "":
		return errors.New("billing address is incomplete")
	}
	return nil
}

func toClientPaymentMethod(req *dto.PaymentMethodRequest) *client.PaymentMethodRequest {
	return &client.PaymentMethodRequest{
		CardNumber:  req.CardNumber,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		HolderName:  req.HolderName,
		Line1:       req.Line1,
		Line2:       req.Line2,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Country:     req.Country,
	}
}
