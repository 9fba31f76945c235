package controllers

import (
	"strconv"
	"time"

	"feesmanagement_go/database"
	"feesmanagement_go/middleware"
	"feesmanagement_go/models"
	"feesmanagement_go/services"
	"feesmanagement_go/utils"

	"github.com/gofiber/fiber/v2"
)

type StudentController struct {
	fees *services.FeesService
}

func NewStudentController() *StudentController {
	return &StudentController{fees: services.NewFeesService()}
}

// studentRow pairs a student with their current-month payment status for rendering.
type studentRow struct {
	Student models.Student
	Status  string
}

// GetStudents lists all students with their class and current-month status.
func (sc *StudentController) GetStudents(c *fiber.Ctx) error {
	var students []models.Student
	if err := database.DB.Preload("StudentClass").Find(&students).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}

	now := time.Now()
	rows := make([]studentRow, 0, len(students))
	for _, student := range students {
		rows = append(rows, studentRow{
			Student: student,
			Status:  sc.fees.CurrentMonthStatus(student.ID, now),
		})
	}

	return c.Render("fees/student_list", fiber.Map{
		"title":         "Students",
		"students":      rows,
		"current_month": services.MonthKey(now),
		"notice":        middleware.TakeFlash(c),
	})
}

// GetStudent shows one student and their payment history, most recent month first.
func (sc *StudentController) GetStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	var student models.Student
	if err := database.DB.Preload("StudentClass").First(&student, uint(id)).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	var payments []models.Payment
	if err := database.DB.Preload("Month").
		Joins("JOIN months ON months.id = payments.month_id").
		Where("payments.student_id = ?", student.ID).
		Order("months.month DESC").
		Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	return c.Render("fees/student_detail", fiber.Map{
		"title":    student.FullName(),
		"student":  student,
		"payments": payments,
	})
}

// studentFromForm reads the student form fields; firstName and class are required.
func studentFromForm(c *fiber.Ctx) (models.Student, string) {
	student := models.Student{
		FirstName:  utils.SanitizeString(c.FormValue("first_name")),
		LastName:   utils.SanitizeString(c.FormValue("last_name")),
		FatherName: utils.SanitizeString(c.FormValue("father_name")),
		MotherName: utils.SanitizeString(c.FormValue("mother_name")),
		Phone:      utils.SanitizeString(c.FormValue("phone")),
	}
	if student.FirstName == "" {
		return student, "First name is required"
	}
	classID, err := strconv.ParseUint(c.FormValue("student_class"), 10, 32)
	if err != nil || classID == 0 {
		return student, "Class is required"
	}
	student.StudentClassID = uint(classID)

	var class models.StudentClass
	if err := database.DB.First(&class, student.StudentClassID).Error; err != nil {
		return student, "Unknown class"
	}
	return student, ""
}

// NewStudent renders the creation form, or creates the student on POST.
func (sc *StudentController) NewStudent(c *fiber.Ctx) error {
	var classes []models.StudentClass
	if err := database.DB.Find(&classes).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch classes")
	}

	if c.Method() == fiber.MethodPost {
		student, formErr := studentFromForm(c)
		if formErr != "" {
			return c.Status(fiber.StatusBadRequest).Render("fees/student_form", fiber.Map{
				"title":   "New Student",
				"student": student,
				"classes": classes,
				"error":   formErr,
			})
		}
		if err := database.DB.Create(&student).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
		}

		middleware.LogActivity(c, "CREATE", "students", student.ID, student)
		middleware.SetFlash(c, "Student "+student.FullName()+" created.")
		return c.Redirect("/fees/students/", fiber.StatusFound)
	}

	return c.Render("fees/student_form", fiber.Map{
		"title":   "New Student",
		"student": models.Student{},
		"classes": classes,
	})
}

// UpdateStudent renders the edit form, or applies it to an existing student on POST.
func (sc *StudentController) UpdateStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	var student models.Student
	if err := database.DB.First(&student, uint(id)).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	if c.Method() == fiber.MethodGet {
		var classes []models.StudentClass
		if err := database.DB.Find(&classes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch classes")
		}
		return c.Render("fees/student_form", fiber.Map{
			"title":   "Edit Student",
			"student": student,
			"classes": classes,
		})
	}

	updated, formErr := studentFromForm(c)
	if formErr != "" {
		var classes []models.StudentClass
		database.DB.Find(&classes)
		return c.Status(fiber.StatusBadRequest).Render("fees/student_form", fiber.Map{
			"title":   "Edit Student",
			"student": student,
			"classes": classes,
			"error":   formErr,
		})
	}

	student.FirstName = updated.FirstName
	student.LastName = updated.LastName
	student.FatherName = updated.FatherName
	student.MotherName = updated.MotherName
	student.Phone = updated.Phone
	student.StudentClassID = updated.StudentClassID

	if err := database.DB.Save(&student).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}

	middleware.LogActivity(c, "UPDATE", "students", student.ID, student)
	middleware.SetFlash(c, "Student "+student.FullName()+" updated.")
	return c.Redirect("/fees/students/", fiber.StatusFound)
}

// DeleteStudent removes a student; the payments cascade at the database level.
func (sc *StudentController) DeleteStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	var student models.Student
	if err := database.DB.First(&student, uint(id)).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	if err := database.DB.Delete(&student).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}

	middleware.LogActivity(c, "DELETE", "students", student.ID, student)
	middleware.SetFlash(c, "Student "+student.FullName()+" deleted.")
	return c.Redirect("/fees/students/", fiber.StatusFound)
}
