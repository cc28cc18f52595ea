package routes

import (
	"os"

	"tour-booking/constants"
	"tour-booking/controllers/quote"
	"tour-booking/logger"
	"tour-booking/middleware"
	"tour-booking/services/negotiation"
	"tour-booking/types"

	"github.com/gofiber/fiber/v2"
)

// Deps holds what the HTTP layer is built from
type Deps struct {
	Service       *negotiation.Service
	Resolver      middleware.ActorResolver
	Logger        *logger.AsyncLogger
	JWTSecret     []byte
	PaymentSecret string
}

// DepsFromEnv fills the secrets from JWT_SECRET and PAYMENT_CALLBACK_SECRET
func DepsFromEnv(service *negotiation.Service, resolver middleware.ActorResolver, asyncLogger *logger.AsyncLogger) Deps {
	return Deps{
		Service:       service,
		Resolver:      resolver,
		Logger:        asyncLogger,
		JWTSecret:     []byte(os.Getenv("JWT_SECRET")),
		PaymentSecret: os.Getenv("PAYMENT_CALLBACK_SECRET"),
	}
}

func SetupRoutes(app *fiber.App, deps Deps) {
	quoteController := quote.NewQuoteController(deps.Service)
	paymentController := quote.NewPaymentController(deps.Service)

	if deps.Logger != nil {
		app.Use(middleware.RequestLogger(deps.Logger))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(types.ApiResponse{
			Message: "OK",
			Status:  fiber.StatusOK,
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/payments/callback", middleware.RequirePaymentSecret(deps.PaymentSecret), paymentController.Callback)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	auth := api.Group("", middleware.Authenticate(deps.JWTSecret, deps.Resolver))

	/*=============================================================================
	| Customer Quote Routes
	===============================================================================*/
	customer := middleware.RequireRoles(constants.RoleUser)
	auth.Post("/quotes", customer, quoteController.Submit)
	auth.Get("/quotes", customer, quoteController.ListMine)
	auth.Post("/quotes/:id/accept", customer, quoteController.Accept)
	auth.Post("/quotes/:id/reject", customer, quoteController.Reject)
	auth.Post("/quotes/:id/cancel", customer, quoteController.Cancel)

	/*=============================================================================
	| Operator Quote Routes
	===============================================================================*/
	operator := middleware.RequireRoles(constants.RoleOperator)
	auth.Get("/operator/quotes", operator, quoteController.ListIncoming)
	auth.Post("/quotes/:id/respond", operator, quoteController.Respond)

	/*=============================================================================
	| Shared Quote Routes
	===============================================================================*/
	auth.Get("/quotes/:id", quoteController.Show)
	auth.Get("/quotes/:id/messages/latest", quoteController.LatestMessage)
	auth.Get("/quotes/:id/messages", quoteController.ListMessages)
	auth.Post("/quotes/:id/messages", quoteController.PostMessage)

	logger.Success("Routes registered")
}
