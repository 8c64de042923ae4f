package httpserver

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/maisonrony/shop_backend/internal/auth"
	"github.com/maisonrony/shop_backend/internal/handlers"
	"github.com/maisonrony/shop_backend/internal/models"
)

type Deps struct {
	Guard *auth.Guard

	AdminHandler      *handlers.AdminHandler
	CategoryAdmin     *handlers.CategoryAdminHandler
	ImageAdmin        *handlers.ImageAdminHandler
	PromotionAdmin    *handlers.PromotionAdminHandler
	PublicCatalog     *handlers.PublicCatalogHandler
	PublicPromotions  *handlers.PublicPromotionHandler
	ReviewHandler     *handlers.ReviewHandler
	AnalyticsHandler  *handlers.AnalyticsHandler
	ContactHandler    *handlers.ContactHandler
	SearchHandler     *handlers.SearchHandler

	// StaticDir, when non-empty, serves the built frontend with an index
	// fallback for client-side routes.
	StaticDir string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	adm := api.Group("/admin")
	adm.POST("/login", d.AdminHandler.Login)
	adm.POST("/logout", d.AdminHandler.Logout)
	adm.POST("/create-first", d.AdminHandler.CreateFirst)
	adm.GET("/me", d.AdminHandler.Me, d.Guard.VerifyAdmin)

	superOnly := []echo.MiddlewareFunc{d.Guard.VerifyAdmin, auth.RequireRole(models.RoleSuperAdmin)}
	adm.POST("/create", d.AdminHandler.Create, superOnly...)
	adm.GET("/list", d.AdminHandler.List, superOnly...)
	adm.PUT("/:id/toggle-status", d.AdminHandler.ToggleStatus, superOnly...)
	adm.DELETE("/:id", d.AdminHandler.Delete, superOnly...)

	categories := adm.Group("/categories", d.Guard.VerifyAdmin)
	categories.GET("", d.CategoryAdmin.List)
	categories.POST("", d.CategoryAdmin.Create)
	categories.GET("/:id", d.CategoryAdmin.Get)
	categories.PUT("/:id", d.CategoryAdmin.Update)
	categories.DELETE("/:id", d.CategoryAdmin.Delete)

	// Image routes keep the category in the path for listing and creation;
	// updates and deletes address the image directly.
	categories.GET("/:categoryId/images", d.ImageAdmin.ListByCategory)
	categories.POST("/:categoryId/images", d.ImageAdmin.Create)
	categories.PUT("/:categoryId/images/reorder", d.ImageAdmin.Reorder)
	categories.PUT("/images/:imageId", d.ImageAdmin.Update)
	categories.DELETE("/images/:imageId", d.ImageAdmin.Delete)

	promos := adm.Group("/promotions", d.Guard.VerifyAdmin)
	promos.GET("", d.PromotionAdmin.List)
	promos.POST("", d.PromotionAdmin.Create)
	promos.GET("/:id", d.PromotionAdmin.Get)
	promos.PUT("/:id", d.PromotionAdmin.Update)
	promos.DELETE("/:id", d.PromotionAdmin.Delete)
	promos.PUT("/:id/toggle", d.PromotionAdmin.Toggle)

	// The two recording routes sit under /admin/analytics for historical
	// reasons but are called by the storefront, so they stay unguarded.
	adm.GET("/analytics/dashboard", d.AnalyticsHandler.Dashboard, d.Guard.VerifyAdmin)
	adm.POST("/analytics/visite", d.AnalyticsHandler.RecordVisit)
	adm.POST("/analytics/commande", d.AnalyticsHandler.RecordOrder)

	api.GET("/categories", d.PublicCatalog.List)
	api.GET("/categories/:slug", d.PublicCatalog.GetBySlug)

	api.GET("/promotions/active", d.PublicPromotions.Active)
	api.GET("/promotions/tombola", d.PublicPromotions.Tombola)
	api.GET("/promotions/category/:id", d.PublicPromotions.ByCategory)

	api.GET("/reviews", d.ReviewHandler.List)
	api.POST("/reviews", d.ReviewHandler.Create)
	api.PUT("/reviews/:id", d.ReviewHandler.Update)
	api.DELETE("/reviews/:id", d.ReviewHandler.Delete)
	api.POST("/reviews/:id/like", d.ReviewHandler.ToggleLike)

	api.POST("/contact/send", d.ContactHandler.Send)

	if d.SearchHandler != nil {
		api.GET("/search", d.SearchHandler.Search)
	}

	e.RouteNotFound("/api/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"message": "Route API introuvable",
			"path":    c.Request().URL.Path,
		})
	})

	if d.StaticDir != "" {
		registerStatic(e, d.StaticDir)
	}
}

// registerStatic serves the frontend build and falls back to index.html for
// any non-API path, so client-side routing keeps working on refresh.
func registerStatic(e *echo.Echo, dir string) {
	e.Static("/", dir)
	index := filepath.Join(dir, "index.html")
	e.RouteNotFound("/*", func(c echo.Context) error {
		if strings.HasPrefix(c.Request().URL.Path, "/api") {
			return echo.ErrNotFound
		}
		if _, err := os.Stat(index); err != nil {
			return echo.ErrNotFound
		}
		return c.File(index)
	})
}
