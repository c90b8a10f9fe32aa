package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

const CtxUnlockTokenKey = "unlock_token"

// UnlockTokenMiddleware lifts an optional bearer token into the request
// locals. Validation happens in the reading service, which knows the reading
// the token must match; a missing token only means the locked view.
type UnlockTokenMiddleware struct{}

func NewUnlockTokenMiddleware() *UnlockTokenMiddleware {
	return &UnlockTokenMiddleware{}
}

func (m *UnlockTokenMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if token, ok := BearerToken(c.Get("Authorization")); ok {
			c.Locals(CtxUnlockTokenKey, token)
		}
		return c.Next()
	}
}

// UnlockToken returns the token stored by UnlockTokenMiddleware, if any.
func UnlockToken(c fiber.Ctx) string {
	v, _ := c.Locals(CtxUnlockTokenKey).(string)
	return v
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
