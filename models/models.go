package models

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// User model for administrative staff accounts
type User struct {
	BaseModel
	Username string `json:"username" gorm:"size:100;not null;uniqueIndex"`
	Password string `json:"-" gorm:"size:255;not null"`
	Role     string `json:"role" gorm:"size:50;not null;default:'staff';type:enum('admin','staff')"` // admin, staff
	Active   bool   `json:"active" gorm:"default:true"`
}

// IsAdmin reports whether the user holds superuser-equivalent privilege.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// StudentClass model: a class with a fixed monthly fee
type StudentClass struct {
	BaseModel
	Name      string          `json:"name" gorm:"size:100;not null;uniqueIndex"`
	FeeAmount decimal.Decimal `json:"fee_amount" gorm:"type:decimal(10,2);not null"`

	// Relationships
	Students []Student `json:"students,omitempty" gorm:"foreignKey:StudentClassID;constraint:OnDelete:CASCADE"`
}

// Student model
type Student struct {
	BaseModel
	FirstName      string `json:"first_name" gorm:"size:100;not null"`
	LastName       string `json:"last_name" gorm:"size:100"`
	FatherName     string `json:"father_name" gorm:"size:100"`
	MotherName     string `json:"mother_name" gorm:"size:100"`
	Phone          string `json:"phone" gorm:"size:15"`
	StudentClassID uint   `json:"student_class_id" gorm:"not null"`

	// Relationships
	StudentClass StudentClass `json:"student_class,omitempty" gorm:"foreignKey:StudentClassID"`
	Payments     []Payment    `json:"payments,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

// FullName returns the student's display name. Value receiver so templates
// can call it on Student values held in context maps and ranged rows.
func (s Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// Month model: one row per billing period, keyed "YYYY-MM"
type Month struct {
	BaseModel
	Month string `json:"month" gorm:"size:7;not null;uniqueIndex"`

	// Relationships
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:MonthID;constraint:OnDelete:CASCADE"`
}

// Payment model: at most one row per (student, month)
type Payment struct {
	BaseModel
	StudentID   uint            `json:"student_id" gorm:"not null;uniqueIndex:idx_student_month"`
	MonthID     uint            `json:"month_id" gorm:"not null;uniqueIndex:idx_student_month"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Paid        bool            `json:"paid" gorm:"default:false"`
	PaymentDate *time.Time      `json:"payment_date"`
	CreatedByID *uint           `json:"created_by_id"`

	// Relationships
	Student   Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Month     Month   `json:"month,omitempty" gorm:"foreignKey:MonthID"`
	CreatedBy *User   `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
}

// NormalizePaymentDate enforces the paid/payment-date invariant: a paid payment
// carries the timestamp of when it was first marked paid, an unpaid payment
// carries none. Existing stamps are preserved, not refreshed.
func (p *Payment) NormalizePaymentDate(now time.Time) {
	if p.Paid && p.PaymentDate == nil {
		p.PaymentDate = &now
	} else if !p.Paid {
		p.PaymentDate = nil
	}
}

// BeforeSave applies the payment-date invariant on every save, not just creation.
func (p *Payment) BeforeSave(tx *gorm.DB) error {
	p.NormalizePaymentDate(time.Now())
	return nil
}

// Log model for activity tracking
type ActivityLog struct {
	BaseModel
	UserID     uint   `json:"user_id"`
	Action     string `json:"action" gorm:"size:100;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID uint   `json:"resource_id"`
	Details    JSON   `json:"details" gorm:"type:json"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
