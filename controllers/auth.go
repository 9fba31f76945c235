package controllers

import (
	"strings"

	"feesmanagement_go/database"
	"feesmanagement_go/middleware"
	"feesmanagement_go/models"
	"feesmanagement_go/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct{}

// safeNext keeps the post-login redirect on this site. Anything that is not a
// local absolute path falls back to the dashboard.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/fees/"
}

// ShowLogin renders the login form. An already-authenticated user is sent
// straight to their destination.
func (ac *AuthController) ShowLogin(c *fiber.Ctx) error {
	next := safeNext(c.Query("next", "/fees/"))

	sess, err := middleware.Sessions().Get(c)
	if err == nil {
		if userID, ok := sess.Get("user_id").(uint); ok && userID > 0 {
			return c.Redirect(next, fiber.StatusFound)
		}
	}

	return c.Render("auth/login", fiber.Map{
		"title":  "Login",
		"next":   next,
		"notice": middleware.TakeFlash(c),
	})
}

// Login authenticates a user against the stored bcrypt hash and starts a session.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	next := safeNext(c.FormValue("next", c.Query("next", "/fees/")))

	renderError := func(message string) error {
		return c.Status(fiber.StatusUnauthorized).Render("auth/login", fiber.Map{
			"title":    "Login",
			"next":     next,
			"username": username,
			"error":    message,
		})
	}

	if username == "" || password == "" {
		return renderError("Username and password are required")
	}

	var user models.User
	if err := database.DB.Where("username = ? AND active = ?", username, true).First(&user).Error; err != nil {
		return renderError("Invalid credentials")
	}

	if err := utils.CheckPassword(password, user.Password); err != nil {
		return renderError("Invalid credentials")
	}

	sess, err := middleware.Sessions().Get(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to open session")
	}
	sess.Set("user_id", user.ID)
	if err := sess.Save(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save session")
	}

	c.Locals("user", &user)
	middleware.LogActivity(c, "LOGIN", "auth", user.ID, fiber.Map{
		"username": user.Username,
		"role":     user.Role,
	})

	return c.Redirect(next, fiber.StatusFound)
}

// Logout ends the session and sends the user back to login with a notice,
// pointing next at the dashboard.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	// This route is outside the privilege gate, so the user comes from the
	// session rather than locals.
	if sess, err := middleware.Sessions().Get(c); err == nil {
		if userID, ok := sess.Get("user_id").(uint); ok && userID > 0 {
			var user models.User
			if err := database.DB.First(&user, userID).Error; err == nil {
				c.Locals("user", &user)
				middleware.LogActivity(c, "LOGOUT", "auth", user.ID, fiber.Map{"username": user.Username})
			}
		}
		_ = sess.Destroy()
	}

	middleware.SetFlash(c, "You have been successfully logged out.")
	return c.Redirect(middleware.LoginRedirect("/fees/"), fiber.StatusFound)
}
