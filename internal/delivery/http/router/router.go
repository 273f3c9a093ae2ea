// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams collects the handlers and middlewares fx injects into
// the router.
type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	SellerHandler       *handler.SellerHandler
	ProductHandler      *handler.ProductHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	sellerHandler       *handler.SellerHandler
	productHandler      *handler.ProductHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		sellerHandler:       params.SellerHandler,
		productHandler:      params.ProductHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)

	e.GET("/health", handler.HealthCheck)

	v1 := e.Group("/api/v1")

	users := v1.Group("/users")
	{
		users.POST("/signup", r.userHandler.Signup)
		users.POST("/login", r.userHandler.Login)
		users.POST("/refresh-token", r.userHandler.RefreshToken)
	}

	usersAuth := v1.Group("/users")
	usersAuth.Use(r.authMiddleware.AuthenticateUser)
	{
		usersAuth.POST("/logout", r.userHandler.Logout)
		usersAuth.GET("/current-user", r.userHandler.CurrentUser)
		usersAuth.POST("/change-password", r.userHandler.ChangePassword)
		usersAuth.POST("/update-account", r.userHandler.UpdateAccount)
		usersAuth.GET("/purchase-history", r.userHandler.PurchaseHistory)
		usersAuth.POST("/buy-product", r.userHandler.BuyProduct)
	}

	sellers := v1.Group("/sellers")
	{
		sellers.POST("/signup", r.sellerHandler.Signup)
		sellers.POST("/login", r.sellerHandler.Login)
		sellers.POST("/refresh-token", r.sellerHandler.RefreshToken)
	}

	sellersAuth := v1.Group("/sellers")
	sellersAuth.Use(r.authMiddleware.AuthenticateSeller)
	{
		sellersAuth.POST("/logout", r.sellerHandler.Logout)
		sellersAuth.GET("/current-seller", r.sellerHandler.CurrentSeller)
		sellersAuth.POST("/change-password", r.sellerHandler.ChangePassword)
		sellersAuth.PATCH("/update-account", r.sellerHandler.UpdateAccount)
		sellersAuth.GET("/products", r.sellerHandler.Products)
	}

	products := v1.Group("/products")
	{
		products.GET("/all-products", r.productHandler.AllProducts)
		products.GET("/:productId", r.productHandler.GetProduct)
		products.GET("/:productId/reviews", r.productHandler.ListReviews)
	}

	productsUserAuth := v1.Group("/products")
	productsUserAuth.Use(r.authMiddleware.AuthenticateUser)
	{
		productsUserAuth.POST("/:productId/reviews", r.productHandler.AddReview)
	}

	productsSellerAuth := v1.Group("/products")
	productsSellerAuth.Use(r.authMiddleware.AuthenticateSeller)
	{
		productsSellerAuth.POST("/add-product", r.productHandler.AddProduct)
		productsSellerAuth.PUT("/:productId", r.productHandler.UpdateProduct)
		productsSellerAuth.DELETE("/:productId", r.productHandler.DeleteProduct)
	}
}
