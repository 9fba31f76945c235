package controllers

import (
	"strconv"

	"feesmanagement_go/database"
	"feesmanagement_go/middleware"
	"feesmanagement_go/models"
	"feesmanagement_go/utils"

	"github.com/gofiber/fiber/v2"
)

type StudentClassController struct{}

// classFromForm reads the class form fields; both name and fee are required.
func classFromForm(c *fiber.Ctx) (models.StudentClass, string) {
	class := models.StudentClass{
		Name: utils.SanitizeString(c.FormValue("name")),
	}
	if class.Name == "" {
		return class, "Name is required"
	}
	fee, err := parseAmount(c.FormValue("fee_amount"))
	if err != nil {
		return class, "Enter a valid fee amount"
	}
	class.FeeAmount = fee
	return class, ""
}

// GetClasses lists all classes, or creates one on POST.
func (cc *StudentClassController) GetClasses(c *fiber.Ctx) error {
	renderList := func(status int, formErr string) error {
		var classes []models.StudentClass
		if err := database.DB.Find(&classes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch classes")
		}
		return c.Status(status).Render("fees/class_list", fiber.Map{
			"title":   "Classes",
			"classes": classes,
			"error":   formErr,
			"notice":  middleware.TakeFlash(c),
		})
	}

	if c.Method() == fiber.MethodPost {
		class, formErr := classFromForm(c)
		if formErr != "" {
			return renderList(fiber.StatusBadRequest, formErr)
		}
		if err := database.DB.Create(&class).Error; err != nil {
			return renderList(fiber.StatusBadRequest, "A class with that name already exists")
		}

		middleware.LogActivity(c, "CREATE", "student_classes", class.ID, class)
		middleware.SetFlash(c, "Class "+class.Name+" created.")
		return c.Redirect("/fees/classes/", fiber.StatusFound)
	}

	return renderList(fiber.StatusOK, "")
}

// UpdateClass applies the edit form to an existing class.
func (cc *StudentClassController) UpdateClass(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Class not found")
	}

	var class models.StudentClass
	if err := database.DB.First(&class, uint(id)).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Class not found")
	}

	updated, formErr := classFromForm(c)
	if formErr != "" {
		middleware.SetFlash(c, formErr)
		return c.Redirect("/fees/classes/", fiber.StatusFound)
	}

	class.Name = updated.Name
	class.FeeAmount = updated.FeeAmount
	if err := database.DB.Save(&class).Error; err != nil {
		middleware.SetFlash(c, "A class with that name already exists.")
		return c.Redirect("/fees/classes/", fiber.StatusFound)
	}

	middleware.LogActivity(c, "UPDATE", "student_classes", class.ID, class)
	middleware.SetFlash(c, "Class "+class.Name+" updated.")
	return c.Redirect("/fees/classes/", fiber.StatusFound)
}

// DeleteClass removes a class; its students and their payments cascade at the
// database level.
func (cc *StudentClassController) DeleteClass(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Class not found")
	}

	var class models.StudentClass
	if err := database.DB.First(&class, uint(id)).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Class not found")
	}

	if err := database.DB.Delete(&class).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete class")
	}

	middleware.LogActivity(c, "DELETE", "student_classes", class.ID, class)
	middleware.SetFlash(c, "Class "+class.Name+" deleted.")
	return c.Redirect("/fees/classes/", fiber.StatusFound)
}
