package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/incognitoworld123-dev/RationalART/controllers"
	"github.com/incognitoworld123-dev/RationalART/middleware"
)

// Controllers bundles everything RegisterRoutes wires up.
type Controllers struct {
	Products *controllers.ProductController
	Carts    *controllers.CartController
	Checkout *controllers.CheckoutController
	Concepts *controllers.ConceptController
	Orders   *controllers.OrderController
	Webhook  *controllers.PaymentWebhookController
}

func RegisterRoutes(r *gin.Engine, c Controllers, adminPasskey string) {
	// Public catalog.
	r.GET("/products", c.Products.List)

	// Provider webhooks authenticate with their own signature, not ours.
	r.POST("/payments/webhook", c.Webhook.Handle)

	user := r.Group("/", middleware.Identity())
	{
		cartRoutes := user.Group("/cart")
		{
			cartRoutes.GET("", c.Carts.Get)
			cartRoutes.POST("/items", c.Carts.AddItem)
			cartRoutes.DELETE("/items/:product_id", c.Carts.RemoveItem)
			cartRoutes.DELETE("", c.Carts.Clear)
		}

		checkoutRoutes := user.Group("/checkout")
		{
			checkoutRoutes.POST("", c.Checkout.Start)
			checkoutRoutes.GET("/:id", c.Checkout.Get)
			checkoutRoutes.POST("/:id/details", c.Checkout.SubmitDetails)
			checkoutRoutes.POST("/:id/payment", c.Checkout.SelectPayment)
			checkoutRoutes.POST("/:id/pay", c.Checkout.Pay)
			checkoutRoutes.POST("/:id/dismiss", c.Checkout.Dismiss)
			checkoutRoutes.DELETE("/:id", c.Checkout.Close)
			checkoutRoutes.POST("/:id/finish", c.Checkout.Finish)
		}

		requestRoutes := user.Group("/requests")
		{
			requestRoutes.POST("", c.Concepts.SubmitRequest)
			requestRoutes.POST("/preview", c.Concepts.StartPreview)
			requestRoutes.GET("/preview/:id", c.Concepts.GetPreview)
		}

		user.GET("/orders", c.Orders.List)
	}

	admin := r.Group("/admin", middleware.AdminOnly(adminPasskey))
	{
		admin.POST("/products", c.Products.Create)
		admin.PATCH("/products/:id/stock", c.Products.UpdateStock)
		admin.POST("/concepts", c.Concepts.AutoGenerate)
		admin.GET("/requests", c.Concepts.ListRequests)
		admin.GET("/orders", c.Orders.ListAll)
		admin.POST("/orders/:id/complete", c.Orders.Complete)
	}
}
