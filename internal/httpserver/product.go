package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_catalog/internal/logging"
	authmw "github.com/Skotchmaster/product_catalog/internal/middleware/auth"
	"github.com/Skotchmaster/product_catalog/internal/search"
	"github.com/Skotchmaster/product_catalog/internal/service"
	"github.com/Skotchmaster/product_catalog/internal/transport"
	"github.com/Skotchmaster/product_catalog/internal/util"
)

const (
	msgProductNotFound = "Product not found"
	msgInvalidID       = "invalid product id"
	msgForbidEdit      = "Forbidden: You are not authorized to edit this product"
	msgForbidDelete    = "Forbidden: You are not authorized to delete this product"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.Svc.GetProducts(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("get_products_error", "status", 500, "reason", "cannot load products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, msgInternal).SetInternal(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := util.ParseID(c.Param("id"))
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "id is not an integer", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidID)
	}

	prod, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_error", "status", 404, "reason", "product not found", "product_id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		}
		l.Error("get_product_error", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, msgInternal).SetInternal(err)
	}
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) AddProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.add_product")

	caller, ok := authmw.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, authmw.MsgInvalidToken)
	}

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.CreateProduct(ctx, caller.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_product_error", "status", 400, "reason", validationMessage(err))
			return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
		case errors.Is(err, service.ErrUnknownOwner):
			l.Warn("add_product_error", "status", 401, "reason", "token user does not exist", "user_id", caller.UserID)
			return echo.NewHTTPError(http.StatusUnauthorized, authmw.MsgInvalidToken)
		default:
			l.Error("add_product_error", "status", 500, "reason", "cannot add product", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, msgInternal).SetInternal(err)
		}
	}

	l.Info("add_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	caller, ok := authmw.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, authmw.MsgInvalidToken)
	}

	id, err := util.ParseID(c.Param("id"))
	if err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "id is not an integer", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidID)
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.UpdateProduct(ctx, id, caller.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_product_error", "status", 404, "reason", "product not found", "product_id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		case errors.Is(err, service.ErrForbidden):
			l.Warn("update_product_error", "status", 403, "reason", "not the owner", "product_id", id)
			return echo.NewHTTPError(http.StatusForbidden, msgForbidEdit)
		default:
			l.Error("update_product_error", "status", 500, "reason", "cannot update product", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, msgInternal).SetInternal(err)
		}
	}

	l.Info("update_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	caller, ok := authmw.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, authmw.MsgInvalidToken)
	}

	id, err := util.ParseID(c.Param("id"))
	if err != nil {
		l.Warn("delete_product_error", "status", 400, "reason", "id is not an integer", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidID)
	}

	if err := h.Svc.DeleteProduct(ctx, id, caller.UserID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("delete_product_error", "status", 404, "reason", "product not found", "product_id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		case errors.Is(err, service.ErrForbidden):
			l.Warn("delete_product_error", "status", 403, "reason", "not the owner", "product_id", id)
			return echo.NewHTTPError(http.StatusForbidden, msgForbidDelete)
		default:
			l.Error("delete_product_error", "status", 500, "reason", "cannot delete product", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, msgInternal).SetInternal(err)
		}
	}

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Product deleted successfully"})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()

	limit := util.ParseIntDefault(c.QueryParam("limit"), search.DefaultLimit)
	items, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), limit)
	if err != nil {
		logging.FromContext(ctx).Error("search_products_error", "status", 500, "reason", "search failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, msgInternal).SetInternal(err)
	}
	return c.JSON(http.StatusOK, items)
}

// validationMessage strips the sentinel prefix so clients see only the
// field-level reason.
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
}
