package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/haldorr/pennywise-backend/internal/middleware"
)

// Handlers bundles every resource handler for route registration.
type Handlers struct {
	Accounts     *AccountHandler
	Categories   *CategoryHandler
	Transactions *TransactionHandler
	SpecialDates *SpecialDateHandler
	Savings      *SavingsHandler
	Budgets      *BudgetHandler
	Reports      *ReportHandler
	Porting      *PortingHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, h Handlers) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Account routes
	accounts := api.Group("/accounts")
	accounts.POST("", h.Accounts.CreateAccount)
	accounts.GET("", h.Accounts.GetAccounts)
	accounts.PUT("/:id", h.Accounts.UpdateAccount)
	accounts.DELETE("/:id", h.Accounts.DeleteAccount)

	// Category routes
	categories := api.Group("/categories")
	categories.POST("", h.Categories.CreateCategory)
	categories.GET("", h.Categories.GetCategories)
	categories.PUT("/:id", h.Categories.UpdateCategory)
	categories.DELETE("/:id", h.Categories.DeleteCategory)

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.POST("", h.Transactions.CreateTransaction)
	transactions.GET("", h.Transactions.GetTransactions)
	transactions.PUT("/:id", h.Transactions.UpdateTransaction)
	transactions.DELETE("/:id", h.Transactions.DeleteTransaction)

	// Special date routes
	specialDates := api.Group("/special-dates")
	specialDates.POST("", h.SpecialDates.CreateSpecialDate)
	specialDates.GET("", h.SpecialDates.GetSpecialDates)
	specialDates.PUT("/:id", h.SpecialDates.UpdateSpecialDate)
	specialDates.PATCH("/:id/toggle-completed", h.SpecialDates.ToggleCompleted)
	specialDates.DELETE("/:id", h.SpecialDates.DeleteSpecialDate)

	// Savings goal and movement routes
	savings := api.Group("/savings")
	savings.POST("/goals", h.Savings.CreateGoal)
	savings.GET("/goals", h.Savings.GetGoals)
	savings.PUT("/goals/:id", h.Savings.UpdateGoal)
	savings.DELETE("/goals/:id", h.Savings.DeleteGoal)
	savings.POST("/movements", h.Savings.CreateMovement)
	savings.GET("/movements", h.Savings.GetMovements)
	savings.PUT("/movements/:id", h.Savings.UpdateMovement)
	savings.DELETE("/movements/:id", h.Savings.DeleteMovement)

	// Budget routes (weekly goals, monthly note, plan vs actual)
	budgets := api.Group("/budgets")
	budgets.GET("/:year/:month/goals", h.Budgets.GetWeeklyGoals)
	budgets.PUT("/:year/:month/goals/:categoryId", h.Budgets.UpsertWeeklyGoal)
	budgets.DELETE("/:year/:month/goals/:categoryId", h.Budgets.DeleteWeeklyGoal)
	budgets.GET("/:year/:month/note", h.Budgets.GetMonthlyNote)
	budgets.PUT("/:year/:month/note", h.Budgets.UpsertMonthlyNote)
	budgets.DELETE("/:year/:month/note", h.Budgets.DeleteMonthlyNote)
	budgets.GET("/:year/:month/comparison", h.Budgets.GetComparison)

	// Report routes
	reports := api.Group("/reports")
	reports.GET("/annual/:year", h.Reports.GetAnnual)
	reports.GET("/monthly/:year/:month", h.Reports.GetMonthly)

	// Import/export routes
	porting := api.Group("/porting")
	porting.POST("/import", h.Porting.ImportTransactions)
	porting.GET("/export", h.Porting.ExportTransactions)
}
