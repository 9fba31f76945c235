package middleware

import (
	"feesmanagement_go/config"
	"feesmanagement_go/database"
	"feesmanagement_go/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

var sessionStore *session.Store

// InitSessionStore creates the session store, backed by Redis when available
// so sessions survive restarts, otherwise by fiber's in-memory storage.
func InitSessionStore() {
	cfg := session.Config{
		KeyLookup:      "cookie:" + config.AppConfig.SessionCookie,
		Expiration:     config.AppConfig.SessionExpiresIn,
		CookieHTTPOnly: true,
		CookieSecure:   config.AppConfig.AppEnv == "production",
		KeyGenerator:   uuid.NewString,
	}
	if rc := database.GetRedisClient(); rc != nil {
		cfg.Storage = storage.NewRedisStorage(rc)
	}
	sessionStore = session.New(cfg)
}

// Sessions returns the shared session store.
func Sessions() *session.Store {
	return sessionStore
}

// SetFlash stores a one-shot notice shown on the next rendered page.
func SetFlash(c *fiber.Ctx, message string) {
	sess, err := sessionStore.Get(c)
	if err != nil {
		return
	}
	sess.Set("flash", message)
	_ = sess.Save()
}

// TakeFlash returns the pending notice, if any, and clears it.
func TakeFlash(c *fiber.Ctx) string {
	sess, err := sessionStore.Get(c)
	if err != nil {
		return ""
	}
	msg, _ := sess.Get("flash").(string)
	if msg != "" {
		sess.Delete("flash")
		_ = sess.Save()
	}
	return msg
}
