package config

import (
	"log/slog"
	"os"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/NaokiHung/BA.System-sub000/models"
)

// UserDB holds user accounts, ExpenseDB holds budgets and expenses.
// The split mirrors the two database files the service has always shipped
// with, so existing deployments keep their data layout.
var (
	UserDB    *gorm.DB
	ExpenseDB *gorm.DB
)

// ConnectDatabases opens both SQLite files and migrates their schemas.
func ConnectDatabases() {
	userPath := getEnv("USER_DB_PATH", "data/users.db")
	expensePath := getEnv("EXPENSE_DB_PATH", "data/expenses.db")

	var err error
	UserDB, err = gorm.Open(sqlite.Open(userPath), &gorm.Config{})
	if err != nil {
		slog.Error("failed to open user database", "path", userPath, "error", err)
		os.Exit(1)
	}
	if err := UserDB.AutoMigrate(&models.User{}); err != nil {
		slog.Error("user database migration failed", "error", err)
		os.Exit(1)
	}

	ExpenseDB, err = gorm.Open(sqlite.Open(expensePath), &gorm.Config{})
	if err != nil {
		slog.Error("failed to open expense database", "path", expensePath, "error", err)
		os.Exit(1)
	}
	if err := ExpenseDB.AutoMigrate(
		&models.MonthlyBudget{},
		&models.CashExpense{},
		&models.CreditCardExpense{},
	); err != nil {
		slog.Error("expense database migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("databases connected", "users", userPath, "expenses", expensePath)
}
