package routes

import (
	"github.com/anjiri1684/course_academy/handlers"
	"github.com/anjiri1684/course_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/orders", middleware.Protected(), handlers.CreateOrder)
	api.Get("/orders/:orderId", middleware.Protected(), handlers.GetOrderByID)
	api.Post("/payments/verify", middleware.Protected(), handlers.VerifyPayment)

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/orders", handlers.GetAllOrders)
	admin.Post("/orders/skip-payment", handlers.CreateSkipOrder)
	admin.Post("/refunds/:transactionId", handlers.InitiateRefund)
	admin.Get("/refunds", handlers.GetAllRefunds)
	admin.Get("/purchases", handlers.GetAllCoursePurchases)
	admin.Patch("/purchases/:id/toggle", handlers.TogglePurchaseActive)
}
