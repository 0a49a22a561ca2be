package app

import (
	"database/sql"

	"github.com/birrflow/birrflow/internal/auth"
	"github.com/birrflow/birrflow/internal/config"
	"github.com/birrflow/birrflow/internal/event_bus"
	"github.com/birrflow/birrflow/internal/utils"
	"github.com/birrflow/birrflow/pkg/account"
	"github.com/birrflow/birrflow/pkg/admin"
	"github.com/birrflow/birrflow/pkg/bill"
	"github.com/birrflow/birrflow/pkg/budget"
	"github.com/birrflow/birrflow/pkg/community"
	"github.com/birrflow/birrflow/pkg/education"
	"github.com/birrflow/birrflow/pkg/expense"
	"github.com/birrflow/birrflow/pkg/export"
	"github.com/birrflow/birrflow/pkg/forecast"
	"github.com/birrflow/birrflow/pkg/income"
	"github.com/birrflow/birrflow/pkg/notification"
	"github.com/birrflow/birrflow/pkg/payment"
	"github.com/birrflow/birrflow/pkg/preferences"
	"github.com/birrflow/birrflow/pkg/rates"
	"github.com/birrflow/birrflow/pkg/savings"
	"github.com/birrflow/birrflow/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	TokenIssuer *auth.TokenIssuer
	EventBus    *event_bus.EventBus
	Clock       utils.Clock

	UserRepo    user.Repo
	UserService user.Service
	UserHandler *user.Handler

	AccountRepo    account.Repo
	AccountService account.Service
	AccountHandler *account.Handler

	BillRepo    bill.Repo
	BillService bill.Service
	BillHandler *bill.Handler

	IncomeService income.Service
	IncomeHandler *income.Handler

	ExpenseService expense.Service
	ExpenseHandler *expense.Handler

	BudgetService budget.Service
	BudgetHandler *budget.Handler

	SavingsService savings.Service
	SavingsHandler *savings.Handler

	PreferencesService preferences.Service
	PreferencesHandler *preferences.Handler

	ForecastCacheRepo forecast.CacheRepo
	ForecastService   forecast.Service
	ForecastHandler   *forecast.Handler

	NotificationRepo    notification.Repo
	NotificationService notification.Service
	NotificationHandler *notification.Handler
	AlertService        *notification.AlertService

	PaymentGateway payment.Gateway
	PaymentService payment.Service
	PaymentHandler *payment.Handler

	CommunityService community.Service
	CommunityHandler *community.Handler

	EducationService education.Service
	EducationHandler *education.Handler

	RatesProvider rates.Provider
	RatesHandler  *rates.Handler

	ExportService export.Service
	ExportHandler *export.Handler

	AdminService admin.Service
	AdminHandler *admin.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.TokenIssuer = auth.NewTokenIssuer(cfg.Auth)
	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserRepo = user.NewRepo(db)
	deps.UserService = user.NewService(deps.UserRepo, deps.TokenIssuer, cfg.Auth.BcryptCost)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.AccountRepo = account.NewRepo(db)
	deps.AccountService = account.NewService(deps.AccountRepo)
	deps.AccountHandler = account.NewHandler(deps.AccountService)

	deps.BillRepo = bill.NewRepo(db)
	deps.BillService = bill.NewService(deps.BillRepo)
	deps.BillHandler = bill.NewHandler(deps.BillService)

	deps.IncomeService = income.NewService(income.NewRepo(db))
	deps.IncomeHandler = income.NewHandler(deps.IncomeService)

	deps.ExpenseService = expense.NewService(expense.NewRepo(db))
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.BudgetService = budget.NewService(budget.NewRepo(db), deps.Clock)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService)

	deps.SavingsService = savings.NewService(savings.NewRepo(db))
	deps.SavingsHandler = savings.NewHandler(deps.SavingsService)

	deps.PreferencesService = preferences.NewService(preferences.NewRepo(db))
	deps.PreferencesHandler = preferences.NewHandler(deps.PreferencesService)

	deps.ForecastCacheRepo = forecast.NewCacheRepo(db)
	deps.ForecastService = forecast.NewService(
		deps.AccountService,
		deps.BillService,
		deps.IncomeService,
		deps.PreferencesService,
		deps.ExpenseService,
		deps.Clock,
		cfg.Forecast,
	)
	deps.ForecastHandler = forecast.NewHandler(deps.ForecastService)

	deps.NotificationRepo = notification.NewRepo(db)
	deps.NotificationService = notification.NewService(deps.NotificationRepo)
	deps.NotificationHandler = notification.NewHandler(deps.NotificationService)
	deps.AlertService = notification.NewAlertService(
		deps.UserRepo,
		deps.BillService,
		deps.ForecastService,
		deps.ForecastCacheRepo,
		deps.NotificationRepo,
		deps.Clock,
		cfg.Alerts,
	)
	deps.AlertService.Subscribe(deps.EventBus)

	deps.PaymentGateway = payment.NewTelebirrGateway(cfg.Payment)
	deps.PaymentService = payment.NewService(payment.NewRepo(db), deps.BillRepo, deps.AccountRepo, deps.PaymentGateway, deps.EventBus)
	deps.PaymentHandler = payment.NewHandler(deps.PaymentService)

	deps.CommunityService = community.NewService(community.NewRepo(db))
	deps.CommunityHandler = community.NewHandler(deps.CommunityService)

	deps.EducationService = education.NewService(education.NewRepo(db))
	deps.EducationHandler = education.NewHandler(deps.EducationService)

	deps.RatesProvider = rates.NewBankFXProvider(cfg.Rates)
	deps.RatesHandler = rates.NewHandler(deps.RatesProvider)

	deps.ExportService = export.NewService(deps.AccountService, deps.BillService, deps.IncomeService, deps.ForecastCacheRepo)
	deps.ExportHandler = export.NewHandler(deps.ExportService)

	deps.AdminService = admin.NewService(admin.NewRepo(db), deps.UserRepo)
	deps.AdminHandler = admin.NewHandler(deps.AdminService)

	return deps
}
