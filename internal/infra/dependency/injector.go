// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ledgerkeep/backend/config"
	"github.com/ledgerkeep/backend/internal/application/usecase/account"
	"github.com/ledgerkeep/backend/internal/application/usecase/expense"
	"github.com/ledgerkeep/backend/internal/application/usecase/ledger"
	"github.com/ledgerkeep/backend/internal/application/usecase/profile"
	"github.com/ledgerkeep/backend/internal/application/usecase/transaction"
	"github.com/ledgerkeep/backend/internal/fx"
	"github.com/ledgerkeep/backend/internal/infra/db"
	"github.com/ledgerkeep/backend/internal/infra/server/router"
	"github.com/ledgerkeep/backend/internal/integration/adapters"
	snapshotcache "github.com/ledgerkeep/backend/internal/integration/cache"
	"github.com/ledgerkeep/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerkeep/backend/internal/integration/entrypoint/middleware"
	"github.com/ledgerkeep/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, database *db.Database, redisClient *redis.Client, rateTable *fx.Table) *Injector {
	// Create core services
	clock := adapters.NewSystemClock()
	converter := fx.NewConverter(rateTable)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	uow := persistence.NewUnitOfWork(database.DB())
	cache := snapshotcache.NewSnapshotCache(redisClient, cfg.Redis.SnapshotTTL)

	// Core recalculation machinery shared by all write paths
	updater := ledger.NewUpdater(converter, clock)
	lifecycle := expense.NewLifecycle(clock)

	// Create profile use cases
	createProfileUseCase := profile.NewCreateProfileUseCase(uow, tokenService, clock)
	getProfileUseCase := profile.NewGetProfileUseCase(uow)
	updateProfileUseCase := profile.NewUpdateProfileUseCase(uow, updater, cache, clock)
	getSnapshotUseCase := profile.NewGetSnapshotUseCase(uow, cache)
	listCurrenciesUseCase := profile.NewListCurrenciesUseCase(uow)

	// Create account use cases
	listAccountsUseCase := account.NewListAccountsUseCase(uow)
	getAccountUseCase := account.NewGetAccountUseCase(uow)
	createAccountUseCase := account.NewCreateAccountUseCase(uow, clock)
	updateAccountUseCase := account.NewUpdateAccountUseCase(uow, updater, cache, clock)
	deleteAccountUseCase := account.NewDeleteAccountUseCase(uow, updater, cache)
	updateBalanceUseCase := account.NewUpdateBalanceUseCase(uow, updater, cache, clock)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(uow, converter)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(uow)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(uow, updater, lifecycle, cache, clock)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(uow, updater, lifecycle, cache)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(uow, updater, lifecycle, cache)

	// Create expense use cases
	listExpensesUseCase := expense.NewListExpensesUseCase(uow, converter)
	getExpenseUseCase := expense.NewGetExpenseUseCase(uow)
	createExpenseUseCase := expense.NewCreateExpenseUseCase(uow, updater, cache, clock)
	updateExpenseUseCase := expense.NewUpdateExpenseUseCase(uow, updater, cache, clock)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(uow, updater, cache)

	// Create controllers
	healthController := controller.NewHealthController(database.HealthCheck)

	profileController := controller.NewProfileController(
		createProfileUseCase,
		getProfileUseCase,
		updateProfileUseCase,
		getSnapshotUseCase,
		listCurrenciesUseCase,
	)

	accountController := controller.NewAccountController(
		listAccountsUseCase,
		getAccountUseCase,
		createAccountUseCase,
		updateAccountUseCase,
		deleteAccountUseCase,
		updateBalanceUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		getTransactionUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		clock,
	)

	expenseController := controller.NewExpenseController(
		listExpensesUseCase,
		getExpenseUseCase,
		createExpenseUseCase,
		updateExpenseUseCase,
		deleteExpenseUseCase,
	)

	// Create middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var createRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		createRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		createRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		profileController,
		accountController,
		transactionController,
		expenseController,
		createRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     database.DB(),
		Router: r,
	}
}
