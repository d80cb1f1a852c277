package models

import "gorm.io/gorm"

// MonthlyBudget tracks the allocated cash budget for one user and period.
// RemainingAmount is kept equal to TotalAmount minus the sum of the user's
// cash expenses for the same (year, month).
type MonthlyBudget struct {
	gorm.Model
	UserID          string  `json:"userId" gorm:"size:36;uniqueIndex:idx_budget_period,priority:1;not null"`
	Year            int     `json:"year" gorm:"uniqueIndex:idx_budget_period,priority:2;not null"`
	Month           int     `json:"month" gorm:"uniqueIndex:idx_budget_period,priority:3;not null"`
	TotalAmount     float64 `json:"totalAmount"`
	RemainingAmount float64 `json:"remainingAmount"`
}

// CashExpense is an expenditure paid from the monthly cash budget. Every
// mutation of a cash expense adjusts the sibling MonthlyBudget.
type CashExpense struct {
	gorm.Model
	UserID      string  `json:"userId" gorm:"size:36;index:idx_cash_period,priority:1;not null"`
	Year        int     `json:"year" gorm:"index:idx_cash_period,priority:2;not null"`
	Month       int     `json:"month" gorm:"index:idx_cash_period,priority:3;not null"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

// CreditCardExpense is tracked for reporting only and never touches the
// cash balance.
type CreditCardExpense struct {
	gorm.Model
	UserID         string  `json:"userId" gorm:"size:36;index:idx_card_period,priority:1;not null"`
	Year           int     `json:"year" gorm:"index:idx_card_period,priority:2;not null"`
	Month          int     `json:"month" gorm:"index:idx_card_period,priority:3;not null"`
	Amount         float64 `json:"amount"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	CardName       string  `json:"cardName"`
	LastFourDigits string  `json:"lastFourDigits" gorm:"size:4"`
	Installments   int     `json:"installments" gorm:"default:1"`
	IsOnline       bool    `json:"isOnline"`
	IsRecurring    bool    `json:"isRecurring"`
	Merchant       string  `json:"merchant"`
	AuthCode       string  `json:"authCode"`
	Currency       string  `json:"currency" gorm:"size:3;default:TWD"`
}
