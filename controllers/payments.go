package controllers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"feesmanagement_go/database"
	"feesmanagement_go/middleware"
	"feesmanagement_go/models"
	"feesmanagement_go/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type PaymentController struct {
	fees *services.FeesService
}

func NewPaymentController() *PaymentController {
	return &PaymentController{fees: services.NewFeesService()}
}

// parsePaidFlag follows checkbox semantics: the value "on" means paid,
// anything else (including absence) means unpaid.
func parsePaidFlag(value string) bool {
	return value == "on"
}

// parseAmount validates a submitted decimal amount string.
func parseAmount(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(value))
}

// MarkPayment shows or processes the payment form for a student's current month.
// The Payment row is created on first visit, defaulting to the class fee.
func (pc *PaymentController) MarkPayment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	var student models.Student
	if err := database.DB.Preload("StudentClass").First(&student, uint(id)).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return err
	}

	month, err := pc.fees.GetOrCreateMonth(services.MonthKey(time.Now()))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load current month")
	}

	payment, err := pc.fees.GetOrCreatePayment(&student, &month, user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load payment")
	}

	if c.Method() == fiber.MethodPost {
		amount, perr := parseAmount(c.FormValue("amount"))
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).Render("fees/payment_form", fiber.Map{
				"title":   "Mark Payment",
				"student": student,
				"month":   services.MonthDisplayName(month.Month),
				"payment": payment,
				"error":   "Enter a valid amount",
			})
		}

		payment.Amount = amount
		payment.Paid = parsePaidFlag(c.FormValue("paid"))
		// Every edit re-attributes authorship to the acting user.
		payment.CreatedByID = &user.ID

		// The BeforeSave hook stamps or clears payment_date.
		if err := database.DB.Save(&payment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save payment")
		}

		middleware.LogActivity(c, "UPDATE", "payments", payment.ID, fiber.Map{
			"student": student.FullName(),
			"month":   month.Month,
			"amount":  payment.Amount.String(),
			"paid":    payment.Paid,
		})
		middleware.SetFlash(c, "Payment status updated for "+student.FullName())
		return c.Redirect("/fees/students/", fiber.StatusFound)
	}

	return c.Render("fees/payment_form", fiber.Map{
		"title":   "Mark Payment",
		"student": student,
		"month":   services.MonthDisplayName(month.Month),
		"payment": payment,
	})
}

// historyFilters are the applied payment-history filter values, echoed back
// to the page so the selectors keep their state.
type historyFilters struct {
	Month  string
	Status string
	Class  string
}

// historyQuery builds the filtered payment query. Filters compose with AND;
// an absent filter imposes no restriction.
func historyQuery(db *gorm.DB, filters historyFilters) *gorm.DB {
	query := db.Model(&models.Payment{}).
		Preload("Student").Preload("Student.StudentClass").Preload("Month")

	if filters.Month != "" {
		query = query.Joins("JOIN months ON months.id = payments.month_id").
			Where("months.month = ?", filters.Month)
	}
	switch filters.Status {
	case services.StatusPaid:
		query = query.Where("payments.paid = ?", true)
	case services.StatusUnpaid:
		query = query.Where("payments.paid = ?", false)
	}
	if filters.Class != "" {
		query = query.Joins("JOIN students ON students.id = payments.student_id").
			Where("students.student_class_id = ?", filters.Class)
	}
	return query
}

// PaymentHistory lists payments with optional month, status, and class filters.
func (pc *PaymentController) PaymentHistory(c *fiber.Ctx) error {
	filters := historyFilters{
		Month:  c.Query("month"),
		Status: c.Query("status"),
		Class:  c.Query("class"),
	}

	var payments []models.Payment
	if err := historyQuery(database.DB, filters).Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	var months []models.Month
	if err := database.DB.Order("month DESC").Find(&months).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch months")
	}

	var classes []models.StudentClass
	if err := database.DB.Find(&classes).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch classes")
	}

	return c.Render("fees/payment_history", fiber.Map{
		"title":           "Payment History",
		"payments":        payments,
		"months":          months,
		"classes":         classes,
		"current_filters": filters,
	})
}

// ExportPaymentHistory streams the filtered history as an .xlsx workbook.
func (pc *PaymentController) ExportPaymentHistory(c *fiber.Ctx) error {
	filters := historyFilters{
		Month:  c.Query("month"),
		Status: c.Query("status"),
		Class:  c.Query("class"),
	}

	var payments []models.Payment
	if err := historyQuery(database.DB, filters).Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Payments"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Student", "Class", "Month", "Amount", "Status", "Payment Date"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, p := range payments {
		status := services.StatusUnpaid
		if p.Paid {
			status = services.StatusPaid
		}
		paymentDate := ""
		if p.PaymentDate != nil {
			paymentDate = p.PaymentDate.Format("2006-01-02 15:04:05")
		}
		values := []interface{}{
			p.Student.FullName(),
			p.Student.StudentClass.Name,
			p.Month.Month,
			p.Amount.String(),
			status,
			paymentDate,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
	}

	filename := fmt.Sprintf("payment_history_%s.xlsx", time.Now().Format("20060102"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(buf.Bytes())
}
