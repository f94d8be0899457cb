package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bytebazaar-storefront/internal/catalog"
	"bytebazaar-storefront/internal/client"
	"bytebazaar-storefront/internal/dto"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalog *catalog.Service
}

func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalogService,
	}
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalog.Browse(ctx)
	if err != nil {
		return cartError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	product, err := h.catalog.Product(ctx, productID)
	if err != nil {
		return cartError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalog.Search(ctx, c.QueryParam("q"))
	if err != nil {
		return cartError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		return cartError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	category, err := h.catalog.CreateCategory(ctx, req.CategoryName)
	if err != nil {
		return categoryError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID, err := strconv.ParseInt(c.Param("categoryID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	category, err := h.catalog.RenameCategory(ctx, categoryID, req.CategoryName)
	if err != nil {
		return categoryError(err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID, err := strconv.ParseInt(c.Param("categoryID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	if err := h.catalog.DeleteCategory(ctx, categoryID); err != nil {
		return cartError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// categoryError keeps validation failures (blank name) a 400 while backend
// failures still map by status.
func categoryError(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return cartError(err)
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
