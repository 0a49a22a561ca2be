package app

import (
	"github.com/gorilla/mux"

	"github.com/birrflow/birrflow/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Authentication
	r.HandleFunc("/api/auth/register", deps.UserHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", deps.UserHandler.Login).Methods("POST")

	// User profile
	r.HandleFunc("/api/user/profile", deps.UserHandler.Profile).Methods("GET")
	r.HandleFunc("/api/user/profile", deps.UserHandler.UpdateProfile).Methods("PUT")
	r.HandleFunc("/api/user/password", deps.UserHandler.ChangePassword).Methods("PUT")

	// Accounts
	r.HandleFunc("/api/accounts", deps.AccountHandler.CreateAccount).Methods("POST")
	r.HandleFunc("/api/accounts", deps.AccountHandler.GetAllAccounts).Methods("GET")
	r.HandleFunc("/api/accounts/{id}/balance", deps.AccountHandler.UpdateBalance).Methods("PATCH")
	r.HandleFunc("/api/accounts/{id}", deps.AccountHandler.DeleteAccount).Methods("DELETE")

	// Bills
	r.HandleFunc("/api/bills", deps.BillHandler.CreateBill).Methods("POST")
	r.HandleFunc("/api/bills", deps.BillHandler.GetAllBills).Methods("GET")
	r.HandleFunc("/api/bills/{id}", deps.BillHandler.UpdateBill).Methods("PUT")
	r.HandleFunc("/api/bills/{id}/paid", deps.BillHandler.MarkPaid).Methods("PUT")
	r.HandleFunc("/api/bills/{id}", deps.BillHandler.DeleteBill).Methods("DELETE")

	// Income sources
	r.HandleFunc("/api/income", deps.IncomeHandler.CreateSource).Methods("POST")
	r.HandleFunc("/api/income", deps.IncomeHandler.GetAllSources).Methods("GET")
	r.HandleFunc("/api/income/{id}", deps.IncomeHandler.DeleteSource).Methods("DELETE")

	// Expenses
	r.HandleFunc("/api/expenses", deps.ExpenseHandler.RecordExpense).Methods("POST")
	r.HandleFunc("/api/expenses", deps.ExpenseHandler.GetAllExpenses).Methods("GET")
	r.HandleFunc("/api/expenses/daily-average", deps.ExpenseHandler.GetDailyAverage).Methods("GET")
	r.HandleFunc("/api/expenses/{id}", deps.ExpenseHandler.DeleteExpense).Methods("DELETE")

	// Budgets
	r.HandleFunc("/api/budget/categories", deps.BudgetHandler.CreateCategory).Methods("POST")
	r.HandleFunc("/api/budget/categories", deps.BudgetHandler.GetCategories).Methods("GET")
	r.HandleFunc("/api/budget/categories/{id}", deps.BudgetHandler.DeleteCategory).Methods("DELETE")
	r.HandleFunc("/api/budget/transactions", deps.BudgetHandler.RecordTransaction).Methods("POST")
	r.HandleFunc("/api/budget/transactions", deps.BudgetHandler.GetTransactions).Methods("GET")
	r.HandleFunc("/api/budget/summary", deps.BudgetHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.CreateBudget).Methods("POST")
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetBudgets).Methods("GET")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.DeleteBudget).Methods("DELETE")

	// Savings goals
	r.HandleFunc("/api/savings", deps.SavingsHandler.CreateGoal).Methods("POST")
	r.HandleFunc("/api/savings", deps.SavingsHandler.GetGoals).Methods("GET")
	r.HandleFunc("/api/savings/{id}/contribute", deps.SavingsHandler.Contribute).Methods("POST")
	r.HandleFunc("/api/savings/{id}/transactions", deps.SavingsHandler.GetTransactions).Methods("GET")
	r.HandleFunc("/api/savings/{id}", deps.SavingsHandler.DeleteGoal).Methods("DELETE")

	// Preferences
	r.HandleFunc("/api/preferences", deps.PreferencesHandler.GetPreferences).Methods("GET")
	r.HandleFunc("/api/preferences", deps.PreferencesHandler.SavePreferences).Methods("PUT")

	// Forecast
	r.HandleFunc("/api/forecast", deps.ForecastHandler.GetForecast).Methods("GET")

	// Notifications
	r.HandleFunc("/api/notifications", deps.NotificationHandler.GetAllNotifications).Methods("GET")
	r.HandleFunc("/api/notifications/read-all", deps.NotificationHandler.MarkAllRead).Methods("PUT")
	r.HandleFunc("/api/notifications/{id}/read", deps.NotificationHandler.MarkRead).Methods("PUT")

	// Payments
	r.HandleFunc("/api/payment/pay-bill/{id}", deps.PaymentHandler.PayBill).Methods("POST")
	r.HandleFunc("/api/payment/webhook", deps.PaymentHandler.Webhook).Methods("POST")
	r.HandleFunc("/api/payments", deps.PaymentHandler.GetPayments).Methods("GET")

	// Community
	r.HandleFunc("/api/community/tips", deps.CommunityHandler.ShareTip).Methods("POST")
	r.HandleFunc("/api/community/tips", deps.CommunityHandler.GetTips).Methods("GET")
	r.HandleFunc("/api/community/prices", deps.CommunityHandler.SharePrice).Methods("POST")
	r.HandleFunc("/api/community/prices", deps.CommunityHandler.GetPrices).Methods("GET")

	// Financial education
	r.HandleFunc("/api/education/tips", deps.EducationHandler.GetArticles).Methods("GET")
	r.HandleFunc("/api/education/tips", RequireAdmin(deps.UserRepo, deps.EducationHandler.CreateArticle)).Methods("POST")

	// Exchange rates
	r.HandleFunc("/api/rates", deps.RatesHandler.GetRates).Methods("GET")

	// Data export
	r.HandleFunc("/api/export/financial-data", deps.ExportHandler.ExportFinancialData).Methods("GET")

	// Admin
	r.HandleFunc("/api/admin/dashboard", RequireAdmin(deps.UserRepo, deps.AdminHandler.GetDashboard)).Methods("GET")
	r.HandleFunc("/api/admin/users", RequireAdmin(deps.UserRepo, deps.AdminHandler.ListUsers)).Methods("GET")
	r.HandleFunc("/api/admin/users/{id}/admin", RequireAdmin(deps.UserRepo, deps.AdminHandler.SetUserAdmin)).Methods("PUT")
	r.HandleFunc("/api/admin/users/{id}", RequireAdmin(deps.UserRepo, deps.AdminHandler.DeleteUser)).Methods("DELETE")
}
