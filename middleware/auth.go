package middleware

import (
	"net/url"

	"feesmanagement_go/database"
	"feesmanagement_go/models"

	"github.com/gofiber/fiber/v2"
)

// LoginURL is the identity-provider endpoint unauthenticated users are sent to.
const LoginURL = "/admin/login/"

// LoginRedirect builds the login URL carrying the originally requested path
// so the user lands back there after authenticating.
func LoginRedirect(next string) string {
	return LoginURL + "?next=" + url.QueryEscape(next)
}

// RequireLogin redirects unauthenticated requests to the login page, encoding
// the original destination. On success the acting user is stored in locals so
// handlers never rely on ambient identity state.
func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessionStore.Get(c)
		if err != nil {
			return c.Redirect(LoginRedirect(c.OriginalURL()), fiber.StatusFound)
		}

		userID, ok := sess.Get("user_id").(uint)
		if !ok || userID == 0 {
			return c.Redirect(LoginRedirect(c.OriginalURL()), fiber.StatusFound)
		}

		// Verify user still exists and is active
		var user models.User
		if err := database.DB.Where("id = ? AND active = ?", userID, true).First(&user).Error; err != nil {
			_ = sess.Destroy()
			return c.Redirect(LoginRedirect(c.OriginalURL()), fiber.StatusFound)
		}

		c.Locals("user", &user)
		return c.Next()
	}
}

// RequireAdmin rejects authenticated users without administrator privilege.
// Applied together with RequireLogin on every business route so neither check
// can be bypassed in isolation.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := GetCurrentUser(c)
		if err != nil {
			return c.Redirect(LoginRedirect(c.OriginalURL()), fiber.StatusFound)
		}
		if !user.IsAdmin() {
			return fiber.NewError(fiber.StatusForbidden, "Administrator privilege required")
		}
		return c.Next()
	}
}

// GetCurrentUser returns the current authenticated user
func GetCurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User not found in context")
	}
	return user, nil
}
