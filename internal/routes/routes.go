package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"aodai_back_end/internal/cache"
	orderhandler "aodai_back_end/internal/handlers/order"
	producthandler "aodai_back_end/internal/handlers/product"
	userhandler "aodai_back_end/internal/handlers/user"
	"aodai_back_end/internal/middleware"
	"aodai_back_end/internal/store"
)

type Deps struct {
	Store    *store.Store
	Cache    *cache.Cache
	Users    *userhandler.Handler
	Products *producthandler.Handler
	Orders   *orderhandler.Handler
}

func Register(r *gin.Engine, d Deps) {
	r.Use(middleware.RequestID())

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := d.Store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := api.Group("/users")
	{
		users.POST("", d.Users.Register)
		users.POST("/login", middleware.LoginRateLimit(d.Cache), d.Users.Login)
		users.GET("/profile", middleware.AuthRequired(), d.Users.Profile)
		users.PUT("/profile", middleware.AuthRequired(), d.Users.UpdateProfile)
		users.GET("/favorites", middleware.AuthRequired(), d.Users.GetFavorites)
		users.POST("/favorites", middleware.AuthRequired(), d.Users.ToggleFavorite)
		users.GET("", middleware.AuthRequired(), middleware.RequireAdmin, d.Users.ListUsers)
	}

	products := api.Group("/products")
	{
		products.GET("", d.Products.List)
		products.GET("/detail/:slug", d.Products.DetailBySlug)
		products.GET("/related/:id", d.Products.Related)
		products.POST("/review/:id", middleware.AuthRequired(), d.Products.CreateReview)

		admin := products.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
		{
			admin.GET("", d.Products.ListAll)
			admin.POST("", d.Products.Create)
			admin.GET("/:id", d.Products.GetByID)
			admin.PUT("/:id", d.Products.Update)
			admin.DELETE("/:id", d.Products.Delete)
			admin.DELETE("", d.Products.DeleteAll)
		}
	}

	api.POST("/upload", middleware.AuthRequired(), middleware.RequireAdmin, d.Products.Upload)

	orders := api.Group("/orders", middleware.AuthRequired())
	{
		orders.POST("", d.Orders.Create)
		orders.GET("", d.Orders.MyOrders)
		orders.GET("/all", middleware.RequireAdmin, d.Orders.ListAll)
		orders.GET("/details/:id", d.Orders.Details)
		orders.PUT("/deliver/:id", middleware.RequireAdmin, d.Orders.Deliver)
		orders.PUT("/receive/:id", middleware.RequireAdmin, d.Orders.Receive)
		orders.PUT("/pay/:id", middleware.RequireAdmin, d.Orders.Pay)
		orders.PUT("/cancel/:id", d.Orders.Cancel)
		orders.PUT("/review/:id", d.Orders.FlagReviewed)
	}
}
