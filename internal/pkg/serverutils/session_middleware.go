// FILE: internal/pkg/serverutils/session_middleware.go
package serverutils

import (
	"news-rating-be/internal/entity"

	"github.com/gofiber/fiber/v2"
)

const authStateKey = "auth_state"

// SessionResolver is the part of the auth service the middleware needs.
type SessionResolver interface {
	Resolve(token string) entity.AuthState
	CookieName() string
}

// SessionMiddleware resolves the session cookie on every request and stores
// the resulting AuthState in ctx.Locals.
func SessionMiddleware(resolver SessionResolver) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		state := resolver.Resolve(ctx.Cookies(resolver.CookieName()))
		ctx.Locals(authStateKey, state)
		return ctx.Next()
	}
}

// AuthStateFrom returns the state set by SessionMiddleware, Unauthenticated
// when absent.
func AuthStateFrom(ctx *fiber.Ctx) entity.AuthState {
	if state, ok := ctx.Locals(authStateKey).(entity.AuthState); ok {
		return state
	}
	return entity.Unauthenticated()
}

// RequireSession rejects API requests without a valid session.
func RequireSession(ctx *fiber.Ctx) error {
	if !AuthStateFrom(ctx).Succeeded() {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}
	return ctx.Next()
}
