package routes

import (
	"github.com/anjiri1684/course_academy/handlers"
	"github.com/anjiri1684/course_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func CourseRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/courses", handlers.GetAllCourses)
	api.Get("/courses/:courseId/users/:userId", middleware.Protected(), handlers.GetPurchasedCourseDetails)
	api.Get("/users/:userId/enrolled-courses", middleware.Protected(), handlers.GetEnrolledCourses)

	api.Post("/video-progress", middleware.Protected(), handlers.UpdateVideoProgress)

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Post("/courses", handlers.CreateCourse)
	admin.Put("/courses/:courseId", handlers.UpdateCourse)
	admin.Post("/videos", handlers.CreateVideo)
	admin.Get("/courses/:courseId/videos", handlers.GetVideosByCourse)
}
