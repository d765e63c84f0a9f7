// FILE: internal/controller/auth_controller.go
package controller

import (
	"news-rating-be/internal/constant"
	"news-rating-be/internal/dto"
	"news-rating-be/internal/entity"
	"news-rating-be/internal/pkg/logger"
	"news-rating-be/internal/pkg/serverutils"
	"news-rating-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	flow *loginFlow
}

func NewAuthController(
	authService service.IAuthService,
	auditService service.IAuditService,
	sysLogger logger.ILogger,
	secureCookie bool,
) IAuthController {
	return &authController{
		flow: &loginFlow{
			authService:  authService,
			auditService: auditService,
			logger:       sysLogger,
			secureCookie: secureCookie,
		},
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Post("/logout", c.Logout)
	h.Get("/me", c.Me)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	state, err := c.flow.login(ctx, &req)
	if err != nil {
		return err
	}

	if !state.Succeeded() {
		code, message := fiber.StatusBadRequest, constant.MessageLoginPrompt
		if state.Status() == entity.AuthFailed {
			code, message = fiber.StatusUnauthorized, constant.MessageLoginFailed
		}
		return ctx.Status(code).JSON(serverutils.BaseResponse[dto.SessionResponse]{
			Success: false,
			Code:    code,
			Message: message,
			Data:    dto.SessionResponse{Status: state.Status().String()},
		})
	}

	session := state.Session()
	return ctx.JSON(serverutils.SuccessResponse("Login successful", dto.LoginResponse{
		Username:  session.Username,
		Name:      session.Name,
		ExpiresAt: session.ExpiresAt,
	}))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	if err := c.flow.logout(ctx); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Logged out successfully", nil))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	state := serverutils.AuthStateFrom(ctx)
	res := dto.SessionResponse{Status: state.Status().String()}
	if s := state.Session(); s != nil {
		res.Username = s.Username
		res.Name = s.Name
		res.ExpiresAt = &s.ExpiresAt
	}
	return ctx.JSON(serverutils.SuccessResponse("Session status", res))
}
