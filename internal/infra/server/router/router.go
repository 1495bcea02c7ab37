// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ledgerkeep/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerkeep/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	profileController     *controller.ProfileController
	accountController     *controller.AccountController
	transactionController *controller.TransactionController
	expenseController     *controller.ExpenseController
	createRateLimiter     *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	profileController *controller.ProfileController,
	accountController *controller.AccountController,
	transactionController *controller.TransactionController,
	expenseController *controller.ExpenseController,
	createRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		profileController:     profileController,
		accountController:     accountController,
		transactionController: transactionController,
		expenseController:     expenseController,
		createRateLimiter:     createRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Profile creation is the only unauthenticated write endpoint.
		if r.profileController != nil && r.createRateLimiter != nil {
			v1.POST("/profiles", r.createRateLimiter.Middleware(), r.profileController.Create)
		}

		if r.profileController != nil && r.authMiddleware != nil {
			profile := v1.Group("/profile")
			profile.Use(r.authMiddleware.Authenticate())
			{
				profile.GET("", r.profileController.Get)
				profile.PUT("", r.profileController.Update)
			}

			snapshot := v1.Group("/snapshot")
			snapshot.Use(r.authMiddleware.Authenticate())
			{
				snapshot.GET("", r.profileController.GetSnapshot)
			}

			v1.GET("/currencies", r.profileController.ListCurrencies)
		}

		if r.accountController != nil && r.authMiddleware != nil {
			accounts := v1.Group("/accounts")
			accounts.Use(r.authMiddleware.Authenticate())
			{
				accounts.GET("", r.accountController.List)
				accounts.POST("", r.accountController.Create)
				accounts.GET("/:accountId", r.accountController.Get)
				accounts.PUT("/:accountId", r.accountController.Update)
				accounts.PUT("/:accountId/balance", r.accountController.UpdateBalance)
				accounts.DELETE("/:accountId", r.accountController.Delete)
			}
		}

		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.GET("/:txId", r.transactionController.Get)
				transactions.PUT("/:txId", r.transactionController.Update)
				transactions.DELETE("/:txId", r.transactionController.Delete)
			}
		}

		if r.expenseController != nil && r.authMiddleware != nil {
			expenses := v1.Group("/expenses")
			expenses.Use(r.authMiddleware.Authenticate())
			{
				expenses.GET("", r.expenseController.List)
				expenses.POST("", r.expenseController.Create)
				expenses.GET("/:expenseId", r.expenseController.Get)
				expenses.PUT("/:expenseId", r.expenseController.Update)
				expenses.DELETE("/:expenseId", r.expenseController.Delete)
			}
		}
	}
}
