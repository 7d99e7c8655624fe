package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"

	controller "ecomadmin/controllers"
	"ecomadmin/editor"
	"ecomadmin/middleware"
	"ecomadmin/utils"
	"ecomadmin/worker"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	auth.Post("/login", controller.Login)
	auth.Post("/refresh", controller.RefreshToken)

	protectedAuth := auth.Group("", middleware.Protected())
	protectedAuth.Post("/logout", controller.Logout)
	protectedAuth.Get("/me", controller.GetCurrentUser)
}

func SetupAPIRoutes(app *fiber.App, db *gorm.DB, drafts editor.DraftStore, exports *worker.ExportWorker) {
	campaignController := controller.NewCampaignController(db, log.New(os.Stdout, "CAMPAIGN: ", log.LstdFlags), drafts, exports)
	productController := controller.NewProductController(db, log.New(os.Stdout, "PRODUCT: ", log.LstdFlags))
	orderController := controller.NewOrderController(db, log.New(os.Stdout, "ORDER: ", log.LstdFlags), utils.NewOrderMailer())
	userController := controller.NewUserController(db, log.New(os.Stdout, "USER: ", log.LstdFlags))
	reviewController := controller.NewReviewController(db, log.New(os.Stdout, "REVIEW: ", log.LstdFlags))
	wishlistController := controller.NewWishlistController(db, log.New(os.Stdout, "WISHLIST: ", log.LstdFlags))
	cartController := controller.NewCartController(db, log.New(os.Stdout, "CART: ", log.LstdFlags))
	dashboardController := controller.NewDashboardController(db, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))
	paymentController := controller.NewPaymentController(db, log.New(os.Stdout, "PAYMENT: ", log.LstdFlags))

	// Stripe calls back without a JWT; signature verification is the auth
	app.Post("/webhooks/stripe", paymentController.HandleStripeWebhook)

	// The console is admin-only end to end
	api := app.Group("/api/v1", middleware.Protected(), middleware.AdminOnly(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.Get("/stats", dashboardController.GetDashboardStats)
	dashboard.Get("/revenue", dashboardController.GetRevenueOverTime)
	dashboard.Get("/recent-orders", dashboardController.GetRecentOrders)

	// Campaign routes. The draft slot is registered before /:id so the
	// literal path wins.
	campaign := api.Group("/campaigns")
	campaign.Get("/draft", campaignController.GetDraft)
	campaign.Put("/draft", campaignController.SaveDraft)
	campaign.Delete("/draft", campaignController.ClearDraft)
	campaign.Post("/draft/publish", campaignController.PublishDraft)

	campaign.Post("/", campaignController.CreateCampaign)
	campaign.Get("/", campaignController.GetCampaigns)
	campaign.Get("/:id", campaignController.GetCampaign)
	campaign.Put("/:id", campaignController.UpdateCampaign)
	campaign.Put("/:id/status", campaignController.UpdateCampaignStatus)
	campaign.Delete("/:id", campaignController.DeleteCampaign)

	// Step editing
	campaign.Post("/:id/steps", campaignController.AddStep)
	campaign.Delete("/:id/steps/:stepID", campaignController.DeleteStep)
	campaign.Put("/:id/steps/:stepID/name", campaignController.UpdateStepName)
	campaign.Put("/:id/steps/:stepID/style", campaignController.UpdateStepStyle)
	campaign.Put("/:id/steps/:stepID/background", campaignController.SetStepBackground)
	campaign.Post("/:id/steps/:stepID/content", campaignController.AddStepContent)
	campaign.Delete("/:id/steps/:stepID/content/:index", campaignController.RemoveStepContent)
	campaign.Put("/:id/steps/:stepID/content/reorder", campaignController.ReorderStepContent)
	campaign.Put("/:id/steps/:stepID/content/:index/size", campaignController.ResizeStepContent)
	campaign.Put("/:id/steps/:stepID/logic", campaignController.UpdateStepLogic)

	// Asset libraries
	campaign.Post("/:id/library/:library", campaignController.AddLibraryAsset)
	campaign.Put("/:id/library/:library/:assetID", campaignController.UpdateLibraryAsset)
	campaign.Delete("/:id/library/:library/:assetID", campaignController.DeleteLibraryAsset)

	// PDF export, throttled separately
	campaign.Post("/:id/export", middleware.ExportRateLimiter(), campaignController.StartExport)
	campaign.Get("/exports/:jobID", campaignController.GetExportJob)
	campaign.Get("/exports/:jobID/download", campaignController.DownloadExport)

	// WebSocket route for export progress
	app.Get("/api/v1/campaigns/export-progress", websocket.New(func(c *websocket.Conn) {
		exports.Hub().Serve(c)
	}))

	// Product routes
	product := api.Group("/products")
	product.Post("/", productController.CreateProduct)
	product.Get("/", productController.GetProducts)
	product.Get("/:id", productController.GetProduct)
	product.Put("/:id", productController.UpdateProduct)
	product.Delete("/:id", productController.DeleteProduct)

	// Category routes
	category := api.Group("/categories")
	category.Get("/", productController.GetCategories)
	category.Post("/", productController.CreateCategory)

	// Order routes
	order := api.Group("/orders")
	order.Get("/", orderController.GetOrders)
	order.Get("/:id", orderController.GetOrder)
	order.Put("/:id/status", orderController.UpdateOrderStatus)
	order.Delete("/:id", orderController.DeleteOrder)
	order.Post("/:id/payment-intent", paymentController.CreateOrderPaymentIntent)
	order.Post("/:id/refund", paymentController.RefundOrder)

	// User routes
	user := api.Group("/users")
	user.Post("/", userController.CreateUser)
	user.Get("/", userController.GetUsers)
	user.Get("/:id", userController.GetUser)
	user.Put("/:id", userController.UpdateUser)
	user.Delete("/:id", userController.DeleteUser)

	// Per-user wishlist and cart
	user.Get("/:userID/wishlist", wishlistController.GetUserWishlist)
	user.Post("/:userID/wishlist/items", wishlistController.AddWishlistItem)
	user.Delete("/:userID/wishlist/items/:productID", wishlistController.RemoveWishlistItem)
	user.Get("/:userID/cart", cartController.GetUserCart)
	user.Post("/:userID/cart/items", cartController.AddCartItem)

	wishlist := api.Group("/wishlists")
	wishlist.Get("/", wishlistController.GetWishlists)

	cart := api.Group("/cart-items")
	cart.Put("/:itemID", cartController.UpdateCartItem)
	cart.Delete("/:itemID", cartController.RemoveCartItem)

	// Review routes
	review := api.Group("/reviews")
	review.Post("/", reviewController.CreateReview)
	review.Get("/", reviewController.GetReviews)
	review.Put("/:id", reviewController.UpdateReview)
	review.Delete("/:id", reviewController.DeleteReview)

	log.Println("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, db *gorm.DB, drafts editor.DraftStore, exports *worker.ExportWorker) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupAuthRoutes(app)
	SetupAPIRoutes(app, db, drafts, exports)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
