package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/NaokiHung/BA.System-sub000/config"
	"github.com/NaokiHung/BA.System-sub000/internal/services"
	"github.com/NaokiHung/BA.System-sub000/models"
)

const summaryCacheTTL = 5 * time.Minute

// CashExpenseInput is the payload for adding or editing a cash expense.
// Year and Month default to the current period when omitted.
type CashExpenseInput struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required,max=200"`
	Category    string  `json:"category" binding:"max=50"`
	Year        int     `json:"year" binding:"omitempty,gte=2000,lte=2200"`
	Month       int     `json:"month" binding:"omitempty,gte=1,lte=12"`
}

// SetBudgetInput is the payload for POST /api/expense/budget.
type SetBudgetInput struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Year   int     `json:"year" binding:"omitempty,gte=2000,lte=2200"`
	Month  int     `json:"month" binding:"omitempty,gte=1,lte=12"`
}

// GetCurrentBudgetHandler returns the dashboard summary for the current
// period, served from cache when possible.
func GetCurrentBudgetHandler(c *gin.Context) {
	userID := currentUserID(c)
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	cacheKey := summaryCacheKey(userID, year, month)
	if config.RDB != nil {
		if cached, err := config.RDB.Get(config.Ctx, cacheKey).Result(); err == nil {
			var summary services.BudgetSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				respondOK(c, "", summary)
				return
			}
		} else if err != redis.Nil {
			slog.Error("redis GET failed", "error", err, "key", cacheKey)
		}
	}

	summary, err := services.GetBudgetSummary(config.ExpenseDB, userID, year, month)
	if err != nil {
		failServer(c, err, "failed to build budget summary")
		return
	}

	if config.RDB != nil {
		if jsonData, err := json.Marshal(summary); err == nil {
			if err := config.RDB.Set(config.Ctx, cacheKey, jsonData, summaryCacheTTL).Err(); err != nil {
				slog.Warn("failed to cache budget summary", "error", err, "key", cacheKey)
			}
		}
	}

	respondOK(c, "", summary)
}

// SetBudgetHandler creates or resets the budget for a period. Resetting
// recomputes the remaining balance from the expenses already recorded.
func SetBudgetHandler(c *gin.Context) {
	var input SetBudgetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBadRequest(c, err.Error())
		return
	}
	userID := currentUserID(c)
	year, month := defaultPeriod(input.Year, input.Month)

	budget, err := services.SetMonthlyBudget(config.ExpenseDB, userID, year, month, input.Amount)
	if err != nil {
		failService(c, err, "failed to set budget")
		return
	}

	invalidateSummaryCache(userID, year, month)
	respondOK(c, "預算設定成功", budget)
}

// AddCashExpenseHandler records a cash expense and deducts the balance.
func AddCashExpenseHandler(c *gin.Context) {
	var input CashExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBadRequest(c, err.Error())
		return
	}
	userID := currentUserID(c)
	year, month := defaultPeriod(input.Year, input.Month)

	expense, err := services.AddCashExpense(config.ExpenseDB, userID, year, month, services.CashExpenseInput{
		Amount:      input.Amount,
		Description: input.Description,
		Category:    input.Category,
	})
	if err != nil {
		failService(c, err, "failed to add cash expense")
		return
	}

	invalidateSummaryCache(userID, year, month)
	respondCreated(c, "支出新增成功", expense)
}

// GetCashExpenseHandler returns one cash expense.
func GetCashExpenseHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	expense, err := services.GetCashExpense(config.ExpenseDB, currentUserID(c), id)
	if err != nil {
		failService(c, err, "failed to load cash expense")
		return
	}
	respondOK(c, "", expense)
}

// UpdateCashExpenseHandler edits a cash expense; the balance moves by the
// amount delta.
func UpdateCashExpenseHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input CashExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBadRequest(c, err.Error())
		return
	}
	userID := currentUserID(c)

	expense, err := services.UpdateCashExpense(config.ExpenseDB, userID, id, services.CashExpenseInput{
		Amount:      input.Amount,
		Description: input.Description,
		Category:    input.Category,
	})
	if err != nil {
		failService(c, err, "failed to update cash expense")
		return
	}

	invalidateSummaryCache(userID, expense.Year, expense.Month)
	respondOK(c, "支出更新成功", expense)
}

// DeleteCashExpenseHandler removes a cash expense and restores the balance.
func DeleteCashExpenseHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	userID := currentUserID(c)

	expense, err := services.GetCashExpense(config.ExpenseDB, userID, id)
	if err != nil {
		failService(c, err, "failed to load cash expense")
		return
	}
	if err := services.DeleteCashExpense(config.ExpenseDB, userID, id); err != nil {
		failService(c, err, "failed to delete cash expense")
		return
	}

	invalidateSummaryCache(userID, expense.Year, expense.Month)
	respondOK(c, "支出刪除成功", nil)
}

// GetHistoryHandler lists the cash and credit-card expenses of one period,
// newest first. Both lists honor the page/pageSize query parameters; the
// totals always cover the whole period.
func GetHistoryHandler(c *gin.Context) {
	year, month, ok := parsePeriod(c)
	if !ok {
		return
	}
	userID := currentUserID(c)

	var cash []models.CashExpense
	if err := config.ExpenseDB.
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Order("created_at DESC").
		Scopes(Paginate(c)).
		Find(&cash).Error; err != nil {
		failServer(c, err, "failed to list cash expenses")
		return
	}

	var cards []models.CreditCardExpense
	if err := config.ExpenseDB.
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Order("created_at DESC").
		Scopes(Paginate(c)).
		Find(&cards).Error; err != nil {
		failServer(c, err, "failed to list credit card expenses")
		return
	}

	var cashTotal, cardTotal float64
	config.ExpenseDB.Model(&models.CashExpense{}).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Select("COALESCE(SUM(amount), 0)").Scan(&cashTotal)
	config.ExpenseDB.Model(&models.CreditCardExpense{}).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Select("COALESCE(SUM(amount), 0)").Scan(&cardTotal)

	if cash == nil {
		cash = make([]models.CashExpense, 0)
	}
	if cards == nil {
		cards = make([]models.CreditCardExpense, 0)
	}

	respondOK(c, "", gin.H{
		"year":               year,
		"month":              month,
		"cashExpenses":       cash,
		"creditCardExpenses": cards,
		"cashTotal":          cashTotal,
		"creditCardTotal":    cardTotal,
	})
}

func defaultPeriod(year, month int) (int, int) {
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	return year, month
}

func summaryCacheKey(userID string, year, month int) string {
	return fmt.Sprintf("budget:%s:%d-%02d", userID, year, month)
}

func invalidateSummaryCache(userID string, year, month int) {
	if config.RDB == nil {
		return
	}
	key := summaryCacheKey(userID, year, month)
	if err := config.RDB.Del(config.Ctx, key).Err(); err != nil {
		slog.Warn("failed to invalidate budget summary cache", "error", err, "key", key)
	}
}
