package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/NaokiHung/BA.System-sub000/config"
	"github.com/NaokiHung/BA.System-sub000/internal/services"
	"github.com/NaokiHung/BA.System-sub000/models"
)

// CreditCardExpenseInput is the payload for credit-card expense endpoints.
type CreditCardExpenseInput struct {
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	Description    string  `json:"description" binding:"required,max=200"`
	Category       string  `json:"category" binding:"max=50"`
	Year           int     `json:"year" binding:"omitempty,gte=2000,lte=2200"`
	Month          int     `json:"month" binding:"omitempty,gte=1,lte=12"`
	CardName       string  `json:"cardName" binding:"max=50"`
	LastFourDigits string  `json:"lastFourDigits" binding:"omitempty,len=4,numeric"`
	Installments   int     `json:"installments" binding:"omitempty,gte=1,lte=60"`
	IsOnline       bool    `json:"isOnline"`
	IsRecurring    bool    `json:"isRecurring"`
	Merchant       string  `json:"merchant" binding:"max=100"`
	AuthCode       string  `json:"authCode" binding:"max=20"`
	Currency       string  `json:"currency" binding:"omitempty,len=3"`
}

// AddCreditCardExpenseHandler records a card expense. The cash budget is
// not affected.
func AddCreditCardExpenseHandler(c *gin.Context) {
	var input CreditCardExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBadRequest(c, err.Error())
		return
	}
	userID := currentUserID(c)
	year, month := defaultPeriod(input.Year, input.Month)

	expense := models.CreditCardExpense{
		UserID:         userID,
		Year:           year,
		Month:          month,
		Amount:         input.Amount,
		Description:    input.Description,
		Category:       input.Category,
		CardName:       input.CardName,
		LastFourDigits: input.LastFourDigits,
		Installments:   defaultInstallments(input.Installments),
		IsOnline:       input.IsOnline,
		IsRecurring:    input.IsRecurring,
		Merchant:       input.Merchant,
		AuthCode:       input.AuthCode,
		Currency:       defaultCurrency(input.Currency),
	}
	if err := services.AddCreditCardExpense(config.ExpenseDB, &expense); err != nil {
		failServer(c, err, "failed to add credit card expense")
		return
	}

	invalidateSummaryCache(userID, year, month)
	respondCreated(c, "信用卡支出新增成功", expense)
}

// GetCreditCardExpenseHandler returns one card expense.
func GetCreditCardExpenseHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	expense, err := services.GetCreditCardExpense(config.ExpenseDB, currentUserID(c), id)
	if err != nil {
		failService(c, err, "failed to load credit card expense")
		return
	}
	respondOK(c, "", expense)
}

// UpdateCreditCardExpenseHandler saves edits to a card expense.
func UpdateCreditCardExpenseHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input CreditCardExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBadRequest(c, err.Error())
		return
	}
	userID := currentUserID(c)

	expense, err := services.GetCreditCardExpense(config.ExpenseDB, userID, id)
	if err != nil {
		failService(c, err, "failed to load credit card expense")
		return
	}

	expense.Amount = input.Amount
	expense.Description = input.Description
	expense.Category = input.Category
	expense.CardName = input.CardName
	expense.LastFourDigits = input.LastFourDigits
	expense.Installments = defaultInstallments(input.Installments)
	expense.IsOnline = input.IsOnline
	expense.IsRecurring = input.IsRecurring
	expense.Merchant = input.Merchant
	expense.AuthCode = input.AuthCode
	expense.Currency = defaultCurrency(input.Currency)

	if err := services.UpdateCreditCardExpense(config.ExpenseDB, expense); err != nil {
		failServer(c, err, "failed to update credit card expense")
		return
	}

	invalidateSummaryCache(userID, expense.Year, expense.Month)
	respondOK(c, "信用卡支出更新成功", expense)
}

// DeleteCreditCardExpenseHandler removes a card expense.
func DeleteCreditCardExpenseHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	userID := currentUserID(c)

	expense, err := services.GetCreditCardExpense(config.ExpenseDB, userID, id)
	if err != nil {
		failService(c, err, "failed to load credit card expense")
		return
	}
	if err := services.DeleteCreditCardExpense(config.ExpenseDB, userID, id); err != nil {
		failService(c, err, "failed to delete credit card expense")
		return
	}

	invalidateSummaryCache(userID, expense.Year, expense.Month)
	respondOK(c, "信用卡支出刪除成功", nil)
}

func defaultInstallments(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func defaultCurrency(code string) string {
	if code == "" {
		return "TWD"
	}
	return code
}
