package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/NaokiHung/BA.System-sub000/config"
	"github.com/NaokiHung/BA.System-sub000/internal/services"
)

// ExportHistoryHandler writes one period's expenses as an .xlsx download,
// cash and credit-card expenses on separate sheets.
func ExportHistoryHandler(c *gin.Context) {
	year, month, ok := parsePeriod(c)
	if !ok {
		return
	}
	userID := currentUserID(c)

	cash, err := services.ListCashExpenses(config.ExpenseDB, userID, year, month)
	if err != nil {
		failServer(c, err, "failed to list cash expenses for export")
		return
	}
	cards, err := services.ListCreditCardExpenses(config.ExpenseDB, userID, year, month)
	if err != nil {
		failServer(c, err, "failed to list credit card expenses for export")
		return
	}

	f := excelize.NewFile()

	cashSheet := "現金支出"
	index, err := f.NewSheet(cashSheet)
	if err != nil {
		failServer(c, err, "failed to create export sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	cashHeaders := []string{"日期", "金額", "說明", "分類"}
	for i, header := range cashHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(cashSheet, cell, header)
	}
	for i, e := range cash {
		row := i + 2
		f.SetCellValue(cashSheet, fmt.Sprintf("A%d", row), e.CreatedAt.Format("2006-01-02"))
		f.SetCellValue(cashSheet, fmt.Sprintf("B%d", row), e.Amount)
		f.SetCellValue(cashSheet, fmt.Sprintf("C%d", row), e.Description)
		f.SetCellValue(cashSheet, fmt.Sprintf("D%d", row), e.Category)
	}

	cardSheet := "信用卡支出"
	if _, err := f.NewSheet(cardSheet); err != nil {
		failServer(c, err, "failed to create export sheet")
		return
	}
	cardHeaders := []string{"日期", "金額", "說明", "分類", "卡片", "末四碼", "期數", "商家"}
	for i, header := range cardHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(cardSheet, cell, header)
	}
	for i, e := range cards {
		row := i + 2
		f.SetCellValue(cardSheet, fmt.Sprintf("A%d", row), e.CreatedAt.Format("2006-01-02"))
		f.SetCellValue(cardSheet, fmt.Sprintf("B%d", row), e.Amount)
		f.SetCellValue(cardSheet, fmt.Sprintf("C%d", row), e.Description)
		f.SetCellValue(cardSheet, fmt.Sprintf("D%d", row), e.Category)
		f.SetCellValue(cardSheet, fmt.Sprintf("E%d", row), e.CardName)
		f.SetCellValue(cardSheet, fmt.Sprintf("F%d", row), e.LastFourDigits)
		f.SetCellValue(cardSheet, fmt.Sprintf("G%d", row), e.Installments)
		f.SetCellValue(cardSheet, fmt.Sprintf("H%d", row), e.Merchant)
	}

	fileName := fmt.Sprintf("expenses_%d-%02d.xlsx", year, month)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "匯出失敗"})
	}
}
