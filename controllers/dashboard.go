package controllers

import (
	"time"

	"feesmanagement_go/database"
	"feesmanagement_go/middleware"
	"feesmanagement_go/models"
	"feesmanagement_go/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type DashboardController struct {
	fees *services.FeesService
}

func NewDashboardController() *DashboardController {
	return &DashboardController{fees: services.NewFeesService()}
}

// Dashboard renders the current-month collection summary: paid/unpaid counts,
// total collected, and the five most recent paid payments.
func (dc *DashboardController) Dashboard(c *fiber.Ctx) error {
	monthKey := services.MonthKey(time.Now())
	month, err := dc.fees.GetOrCreateMonth(monthKey)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load current month")
	}

	var paidCount int64
	if err := database.DB.Model(&models.Payment{}).
		Where("month_id = ? AND paid = ?", month.ID, true).
		Count(&paidCount).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count payments")
	}

	var totalStudents int64
	if err := database.DB.Model(&models.Student{}).Count(&totalStudents).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count students")
	}
	// Correct by the one-payment-per-student-per-month invariant: every paid
	// student has exactly one payment row for the month.
	unpaidCount := totalStudents - paidCount

	var totalCollected decimal.Decimal
	row := struct {
		Total decimal.Decimal
	}{}
	if err := database.DB.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("month_id = ? AND paid = ?", month.ID, true).
		Scan(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to sum payments")
	}
	totalCollected = row.Total

	var recentPayments []models.Payment
	if err := database.DB.Preload("Student").Preload("Month").
		Where("paid = ?", true).
		Order("payment_date DESC").
		Limit(5).
		Find(&recentPayments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch recent payments")
	}

	return c.Render("fees/dashboard", fiber.Map{
		"title":           "Dashboard",
		"paid_count":      paidCount,
		"unpaid_count":    unpaidCount,
		"total_collected": totalCollected,
		"current_month":   services.MonthDisplayName(month.Month),
		"recent_payments": recentPayments,
		"notice":          middleware.TakeFlash(c),
	})
}
