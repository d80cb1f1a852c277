package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/NaokiHung/BA.System-sub000/models"
)

// Business-rule failures. The messages are the user-facing strings the API
// has always returned, so clients matching on them keep working.
var (
	ErrBudgetNotSet        = errors.New("尚未設定本月預算")
	ErrInsufficientBalance = errors.New("餘額不足")
	ErrExpenseNotFound     = errors.New("查無此筆支出")
)

// CashExpenseInput carries the caller-editable fields of a cash expense.
type CashExpenseInput struct {
	Amount      float64
	Description string
	Category    string
}

// BudgetSummary is the dashboard view of one period.
type BudgetSummary struct {
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	TotalAmount     float64 `json:"totalAmount"`
	RemainingAmount float64 `json:"remainingAmount"`
	CashTotal       float64 `json:"cashTotal"`
	CreditCardTotal float64 `json:"creditCardTotal"`
	CashCount       int64   `json:"cashCount"`
	CreditCardCount int64   `json:"creditCardCount"`
}

// AddCashExpense records a cash expense and deducts its amount from the
// period's remaining balance. The read-check-write runs in one transaction
// so concurrent requests cannot produce a lost update.
func AddCashExpense(db *gorm.DB, userID string, year, month int, in CashExpenseInput) (*models.CashExpense, error) {
	expense := models.CashExpense{
		UserID:      userID,
		Year:        year,
		Month:       month,
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		budget, err := findBudget(tx, userID, year, month)
		if err != nil {
			return err
		}
		if in.Amount > budget.RemainingAmount {
			return ErrInsufficientBalance
		}
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}
		budget.RemainingAmount -= in.Amount
		return tx.Save(budget).Error
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// UpdateCashExpense edits a cash expense and adjusts the balance by the
// amount delta. Raising the amount beyond the remaining balance fails and
// leaves both rows untouched.
func UpdateCashExpense(db *gorm.DB, userID string, id uint, in CashExpenseInput) (*models.CashExpense, error) {
	var expense models.CashExpense

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&expense, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrExpenseNotFound
			}
			return err
		}

		budget, err := findBudget(tx, userID, expense.Year, expense.Month)
		if err != nil {
			return err
		}

		delta := in.Amount - expense.Amount
		if delta > budget.RemainingAmount {
			return ErrInsufficientBalance
		}

		expense.Amount = in.Amount
		expense.Description = in.Description
		expense.Category = in.Category
		if err := tx.Save(&expense).Error; err != nil {
			return err
		}

		budget.RemainingAmount -= delta
		return tx.Save(budget).Error
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeleteCashExpense removes a cash expense and restores its amount to the
// period's remaining balance.
func DeleteCashExpense(db *gorm.DB, userID string, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var expense models.CashExpense
		if err := tx.Where("user_id = ?", userID).First(&expense, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrExpenseNotFound
			}
			return err
		}

		if err := tx.Delete(&expense).Error; err != nil {
			return err
		}

		budget, err := findBudget(tx, userID, expense.Year, expense.Month)
		if errors.Is(err, ErrBudgetNotSet) {
			// Budget row was removed out of band; nothing to restore to.
			return nil
		}
		if err != nil {
			return err
		}
		budget.RemainingAmount += expense.Amount
		return tx.Save(budget).Error
	})
}

// GetCashExpense returns one cash expense owned by userID.
func GetCashExpense(db *gorm.DB, userID string, id uint) (*models.CashExpense, error) {
	var expense models.CashExpense
	if err := db.Where("user_id = ?", userID).First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// SetMonthlyBudget creates or updates the budget for a period. On update the
// remaining balance is recomputed from the new total minus the expenses
// already recorded, so a reset never drifts from the recorded history.
func SetMonthlyBudget(db *gorm.DB, userID string, year, month int, total float64) (*models.MonthlyBudget, error) {
	var budget models.MonthlyBudget

	err := db.Transaction(func(tx *gorm.DB) error {
		var spent float64
		if err := tx.Model(&models.CashExpense{}).
			Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&spent).Error; err != nil {
			return err
		}

		err := tx.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
			First(&budget).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			budget = models.MonthlyBudget{
				UserID:          userID,
				Year:            year,
				Month:           month,
				TotalAmount:     total,
				RemainingAmount: total - spent,
			}
			return tx.Create(&budget).Error
		case err != nil:
			return err
		}

		budget.TotalAmount = total
		budget.RemainingAmount = total - spent
		return tx.Save(&budget).Error
	})
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

// GetMonthlyBudget returns the budget row for a period.
func GetMonthlyBudget(db *gorm.DB, userID string, year, month int) (*models.MonthlyBudget, error) {
	return findBudget(db, userID, year, month)
}

// GetBudgetSummary assembles the dashboard numbers for one period. A period
// with no budget row still reports its expenses, with zero totals.
func GetBudgetSummary(db *gorm.DB, userID string, year, month int) (*BudgetSummary, error) {
	summary := BudgetSummary{Year: year, Month: month}

	budget, err := findBudget(db, userID, year, month)
	if err != nil && !errors.Is(err, ErrBudgetNotSet) {
		return nil, err
	}
	if budget != nil {
		summary.TotalAmount = budget.TotalAmount
		summary.RemainingAmount = budget.RemainingAmount
	}

	if err := db.Model(&models.CashExpense{}).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Count(&summary.CashCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.CashExpense{}).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.CashTotal).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.CreditCardExpense{}).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Count(&summary.CreditCardCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.CreditCardExpense{}).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.CreditCardTotal).Error; err != nil {
		return nil, err
	}

	return &summary, nil
}

// ListCashExpenses returns the period's cash expenses, newest first.
func ListCashExpenses(db *gorm.DB, userID string, year, month int) ([]models.CashExpense, error) {
	expenses := make([]models.CashExpense, 0)
	err := db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Order("created_at DESC").
		Find(&expenses).Error
	return expenses, err
}

// ListCreditCardExpenses returns the period's credit-card expenses, newest
// first.
func ListCreditCardExpenses(db *gorm.DB, userID string, year, month int) ([]models.CreditCardExpense, error) {
	expenses := make([]models.CreditCardExpense, 0)
	err := db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Order("created_at DESC").
		Find(&expenses).Error
	return expenses, err
}

// AddCreditCardExpense records a card expense. The cash balance is never
// touched.
func AddCreditCardExpense(db *gorm.DB, expense *models.CreditCardExpense) error {
	return db.Create(expense).Error
}

// GetCreditCardExpense returns one card expense owned by userID.
func GetCreditCardExpense(db *gorm.DB, userID string, id uint) (*models.CreditCardExpense, error) {
	var expense models.CreditCardExpense
	if err := db.Where("user_id = ?", userID).First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// UpdateCreditCardExpense saves edits to a card expense.
func UpdateCreditCardExpense(db *gorm.DB, expense *models.CreditCardExpense) error {
	return db.Save(expense).Error
}

// DeleteCreditCardExpense removes a card expense owned by userID.
func DeleteCreditCardExpense(db *gorm.DB, userID string, id uint) error {
	result := db.Where("user_id = ?", userID).Delete(&models.CreditCardExpense{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func findBudget(db *gorm.DB, userID string, year, month int) (*models.MonthlyBudget, error) {
	var budget models.MonthlyBudget
	err := db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&budget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBudgetNotSet
	}
	if err != nil {
		return nil, err
	}
	return &budget, nil
}
