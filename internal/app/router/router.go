// Package router mounts the HTTP routes.
package router

import (
	"github.com/gin-gonic/gin"

	producthandler "shop_backend/internal/feature/product/transport/handler"
	userhandler "shop_backend/internal/feature/user/transport/handler"
	platformhandler "shop_backend/internal/platform/http/handler"
)

// NewRouter mounts /users and /products. Unknown paths fall through to gin's 404.
func NewRouter(users *userhandler.UserHandler, products *producthandler.ProductHandler,
	health *platformhandler.HealthHandler, middlewares ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// liveness probe, outside the rate limit
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)

	api := r.Group("/")
	api.Use(middlewares...)

	u := api.Group("/users")
	{
		u.POST("", users.Create)
		u.GET("", users.List)
		u.GET("/:id", users.Get)
		u.PATCH("/:id", users.Update)
		u.DELETE("/:id", users.Delete)
		u.GET("/:id/products", users.ListProducts)
	}

	p := api.Group("/products")
	{
		p.POST("", products.Create)
		p.GET("", products.List)
		p.GET("/:id", products.Get)
		p.PATCH("/:id", products.Update)
		p.DELETE("/:id", products.Delete)
		p.GET("/:id/owner", products.Owner)
	}

	return r
}
