package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/NaokiHung/BA.System-sub000/models"
)

// ExpenseServiceSuite runs the budget/expense rules against an in-memory
// database.
type ExpenseServiceSuite struct {
	suite.Suite
	db     *gorm.DB
	userID string
}

// newTestDB opens an in-memory database pinned to a single connection so
// the pool cannot hand out a second, empty :memory: instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func (s *ExpenseServiceSuite) SetupTest() {
	db := newTestDB(s.T())
	require.NoError(s.T(), db.AutoMigrate(
		&models.MonthlyBudget{},
		&models.CashExpense{},
		&models.CreditCardExpense{},
	))
	s.db = db
	s.userID = "5f0c1de2-8f2a-4c3e-9b1d-6a7e8f9a0b1c"
}

func (s *ExpenseServiceSuite) setBudget(amount float64) *models.MonthlyBudget {
	budget, err := SetMonthlyBudget(s.db, s.userID, 2026, 8, amount)
	require.NoError(s.T(), err)
	return budget
}

func (s *ExpenseServiceSuite) remaining() float64 {
	budget, err := GetMonthlyBudget(s.db, s.userID, 2026, 8)
	require.NoError(s.T(), err)
	return budget.RemainingAmount
}

func (s *ExpenseServiceSuite) TestAddCashExpenseDeductsBalance() {
	s.setBudget(1000)

	expense, err := AddCashExpense(s.db, s.userID, 2026, 8, CashExpenseInput{
		Amount: 300, Description: "午餐", Category: "food",
	})
	require.NoError(s.T(), err)
	assert.NotZero(s.T(), expense.ID)
	assert.Equal(s.T(), 700.0, s.remaining())
}

func (s *ExpenseServiceSuite) TestAddCashExpenseWithoutBudget() {
	_, err := AddCashExpense(s.db, s.userID, 2026, 8, CashExpenseInput{
		Amount: 50, Description: "coffee",
	})
	assert.ErrorIs(s.T(), err, ErrBudgetNotSet)
}

func (s *ExpenseServiceSuite) TestAddCashExpenseInsufficientBalance() {
	s.setBudget(100)

	_, err := AddCashExpense(s.db, s.userID, 2026, 8, CashExpenseInput{
		Amount: 150, Description: "too much",
	})
	assert.ErrorIs(s.T(), err, ErrInsufficientBalance)
	assert.Equal(s.T(), "餘額不足", err.Error())

	// Nothing was written.
	assert.Equal(s.T(), 100.0, s.remaining())
	var count int64
	s.db.Model(&models.CashExpense{}).Count(&count)
	assert.Zero(s.T(), count)
}

func (s *ExpenseServiceSuite) TestDeleteCashExpenseRestoresBalance() {
	s.setBudget(1000)
	expense, err := AddCashExpense(s.db, s.userID, 2026, 8, CashExpenseInput{
		Amount: 250, Description: "groceries",
	})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 750.0, s.remaining())

	require.NoError(s.T(), DeleteCashExpense(s.db, s.userID, expense.ID))
	assert.Equal(s.T(), 1000.0, s.remaining())

	_, err = GetCashExpense(s.db, s.userID, expense.ID)
	assert.ErrorIs(s.T(), err, ErrExpenseNotFound)
}

func (s *ExpenseServiceSuite) TestUpdateCashExpenseAdjustsByDelta() {
	s.setBudget(1000)
	expense, err := AddCashExpense(s.db, s.userID, 2026, 8, CashExpenseInput{
		Amount: 400, Description: "dinner",
	})
	require.NoError(s.T(), err)

	// Raise 400 -> 600: remaining moves 600 -> 400.
	updated, err := UpdateCashExpense(s.db, s.userID, expense.ID, CashExpenseInput{
		Amount: 600, Description: "dinner for two", Category: "food",
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 600.0, updated.Amount)
	assert.Equal(s.T(), 400.0, s.remaining())

	// Lower 600 -> 100: remaining moves 400 -> 900.
	_, err = UpdateCashExpense(s.db, s.userID, expense.ID, CashExpenseInput{
		Amount: 100, Description: "dinner", Category: "food",
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 900.0, s.remaining())
}

func (s *ExpenseServiceSuite) TestUpdateCashExpenseInsufficientBalance() {
	s.setBudget(500)
	expense, err := AddCashExpense(s.db, s.userID, 2026, 8, CashExpenseInput{
		Amount: 200, Description: "book",
	})
	require.NoError(s.T(), err)

	// Delta 700 exceeds the 300 remaining.
	_, err = UpdateCashExpense(s.db, s.userID, expense.ID, CashExpenseInput{
		Amount: 900, Description: "books",
	})
	assert.ErrorIs(s.T(), err, ErrInsufficientBalance)

	// Both rows untouched.
	assert.Equal(s.T(), 300.0, s.remaining())
	reloaded, err := GetCashExpense(s.db, s.userID, expense.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 200.0, reloaded.Amount)
	assert.Equal(s.T(), "book", reloaded.Description)
}

func (s *ExpenseServiceSuite) TestSetBudgetRecomputesRemaining() {
	s.setBudget(1000)
	_, err := AddCashExpense(s.db, s.userID, 2026, 8, CashExpenseInput{
		Amount: 400, Description: "rent share",
	})
	require.NoError(s.T(), err)

	budget, err := SetMonthlyBudget(s.db, s.userID, 2026, 8, 2000)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2000.0, budget.TotalAmount)
	assert.Equal(s.T(), 1600.0, budget.RemainingAmount)

	// A reset below current spend leaves a negative remaining balance.
	budget, err = SetMonthlyBudget(s.db, s.userID, 2026, 8, 300)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), -100.0, budget.RemainingAmount)
}

func (s *ExpenseServiceSuite) TestBudgetScenario() {
	// budget=1000; +300 -> 700; +800 rejected, stays 700; delete 300 -> 1000.
	s.setBudget(1000)

	first, err := AddCashExpense(s.db, s.userID, 2026, 8, CashExpenseInput{
		Amount: 300, Description: "first",
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 700.0, s.remaining())

	_, err = AddCashExpense(s.db, s.userID, 2026, 8, CashExpenseInput{
		Amount: 800, Description: "second",
	})
	require.ErrorIs(s.T(), err, ErrInsufficientBalance)
	assert.Equal(s.T(), 700.0, s.remaining())

	require.NoError(s.T(), DeleteCashExpense(s.db, s.userID, first.ID))
	assert.Equal(s.T(), 1000.0, s.remaining())
}

func (s *ExpenseServiceSuite) TestListCashExpensesFiltersPeriodAndOrders() {
	base := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	rows := []models.CashExpense{
		{UserID: s.userID, Year: 2026, Month: 8, Amount: 10, Description: "oldest",
			Model: gorm.Model{CreatedAt: base}},
		{UserID: s.userID, Year: 2026, Month: 8, Amount: 20, Description: "newest",
			Model: gorm.Model{CreatedAt: base.Add(2 * time.Hour)}},
		{UserID: s.userID, Year: 2026, Month: 7, Amount: 30, Description: "last month"},
		{UserID: "someone-else", Year: 2026, Month: 8, Amount: 40, Description: "not mine"},
	}
	for i := range rows {
		require.NoError(s.T(), s.db.Create(&rows[i]).Error)
	}

	list, err := ListCashExpenses(s.db, s.userID, 2026, 8)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 2)
	assert.Equal(s.T(), "newest", list[0].Description)
	assert.Equal(s.T(), "oldest", list[1].Description)
}

func (s *ExpenseServiceSuite) TestCreditCardExpenseDoesNotTouchBalance() {
	s.setBudget(1000)

	card := models.CreditCardExpense{
		UserID: s.userID, Year: 2026, Month: 8,
		Amount: 5000, Description: "new phone", CardName: "玉山卡",
		LastFourDigits: "1234", Installments: 12, Merchant: "momo",
	}
	require.NoError(s.T(), AddCreditCardExpense(s.db, &card))
	assert.Equal(s.T(), 1000.0, s.remaining())

	require.NoError(s.T(), DeleteCreditCardExpense(s.db, s.userID, card.ID))
	assert.Equal(s.T(), 1000.0, s.remaining())
}

func (s *ExpenseServiceSuite) TestExpenseOwnershipEnforced() {
	s.setBudget(1000)
	expense, err := AddCashExpense(s.db, s.userID, 2026, 8, CashExpenseInput{
		Amount: 100, Description: "mine",
	})
	require.NoError(s.T(), err)

	_, err = GetCashExpense(s.db, "intruder", expense.ID)
	assert.ErrorIs(s.T(), err, ErrExpenseNotFound)
	err = DeleteCashExpense(s.db, "intruder", expense.ID)
	assert.ErrorIs(s.T(), err, ErrExpenseNotFound)
	assert.Equal(s.T(), 900.0, s.remaining())
}

func (s *ExpenseServiceSuite) TestGetBudgetSummary() {
	s.setBudget(1000)
	_, err := AddCashExpense(s.db, s.userID, 2026, 8, CashExpenseInput{
		Amount: 150, Description: "a",
	})
	require.NoError(s.T(), err)
	_, err = AddCashExpense(s.db, s.userID, 2026, 8, CashExpenseInput{
		Amount: 50, Description: "b",
	})
	require.NoError(s.T(), err)
	require.NoError(s.T(), AddCreditCardExpense(s.db, &models.CreditCardExpense{
		UserID: s.userID, Year: 2026, Month: 8, Amount: 999, Description: "card",
	}))

	summary, err := GetBudgetSummary(s.db, s.userID, 2026, 8)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1000.0, summary.TotalAmount)
	assert.Equal(s.T(), 800.0, summary.RemainingAmount)
	assert.Equal(s.T(), 200.0, summary.CashTotal)
	assert.Equal(s.T(), int64(2), summary.CashCount)
	assert.Equal(s.T(), 999.0, summary.CreditCardTotal)
	assert.Equal(s.T(), int64(1), summary.CreditCardCount)
}

func (s *ExpenseServiceSuite) TestGetBudgetSummaryWithoutBudget() {
	summary, err := GetBudgetSummary(s.db, s.userID, 2026, 8)
	require.NoError(s.T(), err)
	assert.Zero(s.T(), summary.TotalAmount)
	assert.Zero(s.T(), summary.CashCount)
}

func TestExpenseServiceSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceSuite))
}
