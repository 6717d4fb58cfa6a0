package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/product_catalog/internal/db"
	authmw "github.com/Skotchmaster/product_catalog/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	Auth           *authmw.BearerAuth
	DB             *gorm.DB
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), d.DB); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable").SetInternal(err)
		}
		return c.NoContent(http.StatusOK)
	})

	g := e.Group("/auth")
	g.POST("/signup", d.AuthHandler.Signup)
	g.POST("/login", d.AuthHandler.Login)
	g.POST("/logout", d.AuthHandler.Logout)

	g.GET("/products", d.CatalogHandler.GetProducts)
	g.GET("/products/search", d.CatalogHandler.SearchProducts)
	g.GET("/products/:id", d.CatalogHandler.GetProduct)

	g.POST("/addProduct", d.CatalogHandler.AddProduct, d.Auth.RequireAuth)
	g.DELETE("/deleteProduct/:id", d.CatalogHandler.DeleteProduct, d.Auth.RequireAuth)
	g.PUT("/products/:id", d.CatalogHandler.UpdateProduct, d.Auth.RequireAuth)
}
