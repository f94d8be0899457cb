package handler

import (
	"net/http"

	"bytebazaar-storefront/internal/session"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	sessions *session.Manager
}

func NewAuthHandler(sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
	}
}

// Login sends the browser to the identity provider.
func (h *AuthHandler) Login(c echo.Context) error {
	state := uuid.NewString()
	return c.Redirect(http.StatusFound, h.sessions.LoginURL(state))
}

// Callback lands the provider redirect, exchanges the code, and routes on
// the outcome: home on success, back to login with an error flag otherwise.
func (h *AuthHandler) Callback(c echo.Context) error {
	ctx := c.Request().Context()

	if errParam := c.QueryParam("error"); errParam != "" {
		return c.Redirect(http.StatusFound, "/login?error=auth_callback_failed")
	}

	code := c.QueryParam("code")
	if code == "" {
		return c.Redirect(http.StatusFound, "/login?error=auth_callback_failed")
	}

	if _, err := h.sessions.HandleCallback(ctx, code); err != nil {
		c.Logger().Errorf("auth callback: %v", err)
		return c.Redirect(http.StatusFound, "/login?error=auth_callback_failed")
	}

	return c.Redirect(http.StatusFound, "/")
}

// Logout clears the local session and hands the browser to the provider's
// logout endpoint.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	logoutURL := h.sessions.Logout(ctx)
	return c.Redirect(http.StatusFound, logoutURL)
}

// Me reports the current identity for display (navbar greeting, profile).
func (h *AuthHandler) Me(c echo.Context) error {
	identity := h.sessions.Identity()
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}
	return c.JSON(http.StatusOK, identity)
}

// LoginPage is what an unauthenticated visitor sees on /login.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	resp := map[string]string{"page": "login"}
	if errFlag := c.QueryParam("error"); errFlag != "" {
		resp["error"] = errFlag
	}
	return c.JSON(http.StatusOK, resp)
}
