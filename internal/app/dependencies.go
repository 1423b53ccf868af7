package app

import (
	"github.com/expensebuddy/expensebuddy/internal/config"
	"github.com/expensebuddy/expensebuddy/internal/event_bus"
	"github.com/expensebuddy/expensebuddy/internal/utils"
	"github.com/expensebuddy/expensebuddy/pkg/alert"
	"github.com/expensebuddy/expensebuddy/pkg/auth"
	"github.com/expensebuddy/expensebuddy/pkg/budget"
	"github.com/expensebuddy/expensebuddy/pkg/category"
	"github.com/expensebuddy/expensebuddy/pkg/dashboard"
	"github.com/expensebuddy/expensebuddy/pkg/expense"
	"github.com/expensebuddy/expensebuddy/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	UserService user.Service
	TokenIssuer *auth.TokenIssuer
	AuthHandler *auth.Handler

	CategoryRepo    category.Repo
	CategoryHandler *category.Handler

	ExpenseRepo    expense.Repo
	ExpenseService expense.Service
	ExpenseHandler *expense.Handler

	BudgetRepo    budget.Repo
	BudgetService budget.Service
	BudgetHandler *budget.Handler

	AlertService *alert.ServiceImpl
	AlertHandler *alert.Handler

	DashboardService dashboard.Service
	DashboardHandler *dashboard.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.TokenIssuer = auth.NewTokenIssuer(cfg.Auth, deps.Clock)
	deps.AuthHandler = auth.NewHandler(deps.UserService, deps.TokenIssuer)

	deps.CategoryRepo = category.NewCategoryRepo(db)
	deps.CategoryHandler = category.NewHandler(deps.CategoryRepo)

	deps.ExpenseRepo = expense.NewExpenseRepo(db)
	deps.ExpenseService = expense.NewExpenseService(deps.ExpenseRepo, deps.CategoryRepo, deps.EventBus)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetService(deps.BudgetRepo, deps.CategoryRepo, deps.ExpenseRepo, deps.Clock)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService)

	deps.AlertService = alert.NewAlertService(
		deps.BudgetService,
		deps.ExpenseRepo,
		alert.ThresholdsFromConfig(cfg.Alerts),
		alert.NewMonthOverMonthStrategy(),
		deps.Clock,
	)
	deps.AlertHandler = alert.NewHandler(deps.AlertService)
	deps.AlertService.SubscribeToExpenses(deps.EventBus)

	deps.DashboardService = dashboard.NewDashboardService(deps.ExpenseRepo, deps.BudgetService, deps.Clock)
	deps.DashboardHandler = dashboard.NewHandler(deps.DashboardService)

	return deps
}
