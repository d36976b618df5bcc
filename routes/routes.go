package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AYATON2/shoes-sub000/controllers"
	"github.com/AYATON2/shoes-sub000/middleware"
	"github.com/AYATON2/shoes-sub000/models"
)

// Controllers bundles every controller the router needs.
type Controllers struct {
	Order        *controllers.OrderController
	Product      *controllers.ProductController
	Sale         *controllers.SaleController
	Notification *controllers.NotificationController
	Address      *controllers.AddressController
	Cart         *controllers.CartController
	User         *controllers.UserController
	Payment      *controllers.PaymentController
}

// Register sets up all API routes.
func Register(r *gin.Engine, c Controllers) {
	// Public catalog routes
	r.GET("/products", c.Product.List)
	r.GET("/products/:id", c.Product.Get)
	r.GET("/products/:id/sales", c.Sale.ListForProduct)

	auth := r.Group("")
	auth.Use(middleware.AuthMiddleware())

	// Orders
	auth.POST("/orders", c.Order.PlaceOrder)
	auth.GET("/orders", c.Order.GetOrders)
	auth.GET("/orders/:id", c.Order.GetOrder)
	auth.PUT("/orders/:id", c.Order.UpdateStatus)
	auth.GET("/orders/:id/invoice", c.Order.Invoice)

	// Cart
	auth.GET("/cart", c.Cart.Get)
	auth.PUT("/cart/items", c.Cart.PutItem)
	auth.DELETE("/cart/items/:id", c.Cart.RemoveItem)
	auth.DELETE("/cart", c.Cart.Clear)

	// Addresses
	auth.POST("/addresses", c.Address.Create)
	auth.GET("/addresses", c.Address.List)
	auth.PUT("/addresses/:id", c.Address.Update)
	auth.DELETE("/addresses/:id", c.Address.Delete)

	// Notifications
	auth.GET("/notifications", c.Notification.List)
	auth.PUT("/notifications/read-all", c.Notification.MarkAllRead)
	auth.PUT("/notifications/:id/read", c.Notification.MarkRead)
	auth.DELETE("/notifications/:id", c.Notification.Delete)

	// Catalog management (sellers and admins)
	manage := auth.Group("")
	manage.Use(middleware.RequireRoles(models.RoleSeller, models.RoleAdmin))
	manage.GET("/seller/products", c.Product.ListMine)
	manage.POST("/products", c.Product.Create)
	manage.PUT("/products/:id", c.Product.Update)
	manage.DELETE("/products/:id", c.Product.Delete)
	manage.POST("/products/:id/skus", c.Product.CreateSKU)
	manage.PUT("/skus/:id/stock", c.Product.SetSKUStock)
	manage.DELETE("/skus/:id", c.Product.DeleteSKU)
	manage.POST("/sales", c.Sale.Create)
	manage.PUT("/sales/:id/activate", c.Sale.Activate)
	manage.PUT("/sales/:id/deactivate", c.Sale.Deactivate)
	manage.DELETE("/sales/:id", c.Sale.Delete)

	// Admin-only routes
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.POST("/users", c.User.Create)
	admin.GET("/users", c.User.List)
	admin.PUT("/users/:id/role", c.User.UpdateRole)

	payments := auth.Group("/payments")
	payments.Use(middleware.RequireRoles(models.RoleAdmin))
	payments.PUT("/:id/verify", c.Payment.Verify)
}
