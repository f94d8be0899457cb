package server

import (
	"net/http"

	"bytebazaar-storefront/internal/cart"
	"bytebazaar-storefront/internal/catalog"
	"bytebazaar-storefront/internal/client"
	"bytebazaar-storefront/internal/handler"
	appmiddleware "bytebazaar-storefront/internal/middleware"
	"bytebazaar-storefront/internal/repository"
	"bytebazaar-storefront/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	authHandler     *handler.AuthHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	catalogHandler  *handler.CatalogHandler
	accountHandler  *handler.AccountHandler
	sessions        *session.Manager
}

func NewServer(
	sessions *session.Manager,
	api client.StorefrontClient,
	cartHolder *cart.Holder,
	catalogService *catalog.Service,
	prefs repository.PreferenceRepository,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		authHandler:     handler.NewAuthHandler(sessions),
		cartHandler:     handler.NewCartHandler(cartHolder),
		checkoutHandler: handler.NewCheckoutHandler(api, cartHolder),
		catalogHandler:  handler.NewCatalogHandler(catalogService),
		accountHandler:  handler.NewAccountHandler(api, sessions, prefs),
		sessions:        sessions,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	requireAuth := appmiddleware.RequireAuth(s.sessions)
	loginGuard := appmiddleware.LoginGuard(s.sessions, "/")

	s.echo.GET("/login", s.authHandler.LoginPage, loginGuard)
	s.echo.GET("/login/start", s.authHandler.Login, loginGuard)
	s.echo.GET("/auth/callback", s.authHandler.Callback)
	s.echo.GET("/logout", s.authHandler.Logout)

	// static informational pages
	for _, page := range []string{"about", "customer-service", "privacy-policy", "terms-of-service"} {
		p := page
		s.echo.GET("/"+p, func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]string{"page": p})
		})
	}

	s.echo.GET("/checkout", s.checkoutHandler.Page, requireAuth)

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- catalog (browse without login) --------
	api.GET("/products", s.catalogHandler.ListProducts)
	api.GET("/products/search", s.catalogHandler.Search)
	api.GET("/products/:productID", s.catalogHandler.GetProduct)
	api.GET("/categories", s.catalogHandler.ListCategories)

	// -------- authenticated surface --------
	auth := api.Group("", requireAuth)
	auth.GET("/me", s.authHandler.Me)
	auth.GET("/profile", s.accountHandler.GetProfile)

	auth.POST("/categories", s.catalogHandler.CreateCategory)
	auth.PUT("/categories/:categoryID", s.catalogHandler.UpdateCategory)
	auth.DELETE("/categories/:categoryID", s.catalogHandler.DeleteCategory)

	auth.GET("/cart", s.cartHandler.GetCart)
	auth.POST("/cart", s.cartHandler.AddItem)
	auth.PUT("/cart/:cartItemID", s.cartHandler.UpdateQuantity)
	auth.DELETE("/cart/:cartItemID", s.cartHandler.RemoveItem)
	auth.DELETE("/cart", s.cartHandler.Clear)
	auth.POST("/cart/drawer/toggle", s.cartHandler.ToggleDrawer)

	auth.POST("/checkout/begin", s.checkoutHandler.Begin)
	auth.GET("/checkout/state", s.checkoutHandler.State)
	auth.PUT("/checkout/payment", s.checkoutHandler.PaymentEntry)
	auth.POST("/checkout/place", s.checkoutHandler.PlaceOrder)

	auth.GET("/payment-methods", s.accountHandler.ListPaymentMethods)
	auth.POST("/payment-methods", s.accountHandler.AddPaymentMethod)
	auth.PUT("/payment-methods/:paymentID", s.accountHandler.UpdatePaymentMethod)
	auth.DELETE("/payment-methods/:paymentID", s.accountHandler.DeletePaymentMethod)

	auth.GET("/shipments", s.accountHandler.ListShipments)
	auth.GET("/shipments/:transactionID", s.accountHandler.GetShipment)

	auth.GET("/preferences/theme", s.accountHandler.GetTheme)
	auth.PUT("/preferences/theme", s.accountHandler.SetTheme)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
