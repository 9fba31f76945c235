package services

import (
	"errors"
	"strings"
	"time"

	"feesmanagement_go/database"
	"feesmanagement_go/models"

	"gorm.io/gorm"
)

const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

// MonthKey returns the canonical billing-period key for a point in time,
// four-digit year + "-" + zero-padded month, e.g. "2024-03".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthDisplayName maps a month key back to its display form, e.g. "March 2024".
// Keys that do not parse are returned unchanged.
func MonthDisplayName(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("January 2006")
}

// FeesService holds the fee-tracking domain operations shared by handlers.
type FeesService struct{}

func NewFeesService() *FeesService {
	return &FeesService{}
}

// GetOrCreateMonth fetches the Month row for key, inserting it when absent.
// A uniqueness violation means a concurrent request created the row first;
// the lookup is retried instead of surfacing the conflict.
func (fs *FeesService) GetOrCreateMonth(key string) (models.Month, error) {
	var month models.Month
	err := database.DB.Where("month = ?", key).First(&month).Error
	if err == nil {
		return month, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return month, err
	}

	month = models.Month{Month: key}
	if err := database.DB.Create(&month).Error; err != nil {
		if isDuplicateKeyError(err) {
			var existing models.Month
			if ferr := database.DB.Where("month = ?", key).First(&existing).Error; ferr == nil {
				return existing, nil
			}
		}
		return month, err
	}
	return month, nil
}

// GetOrCreatePayment fetches the Payment for (student, month), inserting one
// when absent with the student's class fee as the default amount and the
// acting user as the creator. Races are recovered via retry-on-conflict.
func (fs *FeesService) GetOrCreatePayment(student *models.Student, month *models.Month, actingUser *models.User) (models.Payment, error) {
	var payment models.Payment
	err := database.DB.Where("student_id = ? AND month_id = ?", student.ID, month.ID).First(&payment).Error
	if err == nil {
		return payment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return payment, err
	}

	payment = models.Payment{
		StudentID:   student.ID,
		MonthID:     month.ID,
		Amount:      student.StudentClass.FeeAmount,
		CreatedByID: &actingUser.ID,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		if isDuplicateKeyError(err) {
			var existing models.Payment
			if ferr := database.DB.Where("student_id = ? AND month_id = ?", student.ID, month.ID).First(&existing).Error; ferr == nil {
				return existing, nil
			}
		}
		return payment, err
	}
	return payment, nil
}

// CurrentMonthStatus classifies a student as paid or unpaid for the billing
// period containing now. Strictly read-only: an absent Month or Payment row
// means unpaid, nothing is created as a side effect.
func (fs *FeesService) CurrentMonthStatus(studentID uint, now time.Time) string {
	var month models.Month
	if err := database.DB.Where("month = ?", MonthKey(now)).First(&month).Error; err != nil {
		return StatusUnpaid
	}

	var payment models.Payment
	if err := database.DB.Where("student_id = ? AND month_id = ?", studentID, month.ID).First(&payment).Error; err != nil {
		return StatusUnpaid
	}
	if payment.Paid {
		return StatusPaid
	}
	return StatusUnpaid
}

// isDuplicateKeyError reports whether err is a uniqueness-constraint violation
// (MySQL error 1062).
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}
