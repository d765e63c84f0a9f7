package controller

import (
	"context"

	"news-rating-be/internal/dto"
	"news-rating-be/internal/entity"
	"news-rating-be/internal/pkg/logger"
	"news-rating-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// loginFlow is shared by the page and the JSON API: authenticate, set the
// cookie and record exactly one audit row on success.
type loginFlow struct {
	authService  service.IAuthService
	auditService service.IAuditService
	logger       logger.ILogger
	secureCookie bool
}

func (f *loginFlow) login(ctx *fiber.Ctx, req *dto.LoginRequest) (entity.AuthState, error) {
	state, err := f.authService.Login(ctx.UserContext(), req)
	if err != nil {
		return state, err
	}
	if !state.Succeeded() {
		return state, nil
	}

	session := state.Session()
	ctx.Cookie(&fiber.Cookie{
		Name:     f.authService.CookieName(),
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(f.authService.SessionTTL().Seconds()),
		HTTPOnly: true,
		Secure:   f.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	f.recordLogin(ctx.UserContext(), session.Username)
	return state, nil
}

// recordLogin never fails the request; audit problems are only logged.
func (f *loginFlow) recordLogin(ctx context.Context, username string) {
	if err := f.auditService.RecordLogin(ctx, username); err != nil {
		f.logger.Warn("AUDIT", "Failed to record login", map[string]interface{}{
			"error":    err.Error(),
			"username": username,
		})
	}
}

func (f *loginFlow) logout(ctx *fiber.Ctx) error {
	name := f.authService.CookieName()
	err := f.authService.Logout(ctx.UserContext(), ctx.Cookies(name))
	ctx.ClearCookie(name)
	return err
}
