package app

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {
	api := r.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/health", healthCheck).Methods("GET")
	api.HandleFunc("/auth/register", deps.AuthHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", deps.AuthHandler.Login).Methods("POST")
	api.HandleFunc("/categories", deps.CategoryHandler.GetAll).Methods("GET")

	// Authenticated
	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(deps.TokenIssuer, deps.UserService))

	// Dashboard
	protected.HandleFunc("/dashboard", deps.DashboardHandler.GetDashboard).Methods("GET")

	// Expenses
	protected.HandleFunc("/expenses", deps.ExpenseHandler.Search).Methods("GET")
	protected.HandleFunc("/expenses", deps.ExpenseHandler.Create).Methods("POST")
	protected.HandleFunc("/expenses/{id}", deps.ExpenseHandler.Update).Methods("PUT")
	protected.HandleFunc("/expenses/{id}", deps.ExpenseHandler.Delete).Methods("DELETE")

	// Budgets
	protected.HandleFunc("/budgets", deps.BudgetHandler.GetAll).Methods("GET")
	protected.HandleFunc("/budgets", deps.BudgetHandler.Create).Methods("POST")
	protected.HandleFunc("/budgets/{id}", deps.BudgetHandler.Update).Methods("PUT")
	protected.HandleFunc("/budgets/{id}", deps.BudgetHandler.Delete).Methods("DELETE")

	// Alerts
	protected.HandleFunc("/alerts", deps.AlertHandler.GetAlerts).Methods("GET")
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"message": "ExpenseBuddy API is running",
	})
}
