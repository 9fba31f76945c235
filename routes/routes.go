package routes

import (
	"feesmanagement_go/controllers"
	"feesmanagement_go/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App) {
	// Initialize controllers
	authController := &controllers.AuthController{}
	dashboardController := controllers.NewDashboardController()
	studentController := controllers.NewStudentController()
	paymentController := controllers.NewPaymentController()
	classController := &controllers.StudentClassController{}
	logController := &controllers.LogController{}
	healthController := controllers.NewHealthController(nil)

	// Health check endpoint
	app.Get("/health", healthController.GetHealthStatus)

	// Login is reachable without a session
	app.Get("/admin/login/", authController.ShowLogin)
	app.Post("/admin/login/", authController.Login)

	// Root redirects to the dashboard
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/fees/", fiber.StatusFound)
	})

	// Logout works for any session, privileged or not
	app.Get("/fees/logout/", authController.Logout)

	// Every business route requires an authenticated administrator; both
	// checks are applied at the group level so no handler can skip one.
	fees := app.Group("/fees", middleware.RequireLogin(), middleware.RequireAdmin())

	fees.Get("/", dashboardController.Dashboard)

	fees.Get("/students/", studentController.GetStudents)
	fees.Get("/students/new/", studentController.NewStudent)
	fees.Post("/students/new/", studentController.NewStudent)
	fees.Get("/student/:id/", studentController.GetStudent)
	fees.Get("/student/:id/edit/", studentController.UpdateStudent)
	fees.Post("/student/:id/edit/", studentController.UpdateStudent)
	fees.Post("/student/:id/delete/", studentController.DeleteStudent)

	fees.Get("/student/:id/payment/", paymentController.MarkPayment)
	fees.Post("/student/:id/payment/", paymentController.MarkPayment)

	fees.Get("/payment-history/", paymentController.PaymentHistory)
	fees.Get("/payment-history/export/", paymentController.ExportPaymentHistory)

	fees.Get("/classes/", classController.GetClasses)
	fees.Post("/classes/", classController.GetClasses)
	fees.Post("/classes/:id/", classController.UpdateClass)
	fees.Post("/classes/:id/delete/", classController.DeleteClass)

	fees.Get("/logs/", logController.GetLogs)
}
