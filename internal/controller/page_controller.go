// FILE: internal/controller/page_controller.go
package controller

import (
	"errors"

	"news-rating-be/internal/constant"
	"news-rating-be/internal/dto"
	"news-rating-be/internal/entity"
	"news-rating-be/internal/pkg/logger"
	"news-rating-be/internal/pkg/serverutils"
	"news-rating-be/internal/service"
	"news-rating-be/internal/view"

	"github.com/gofiber/fiber/v2"
)

// IPageController serves the single HTML page: login, the story form and
// the prediction result.
type IPageController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Predict(ctx *fiber.Ctx) error
}

type pageController struct {
	flow              *loginFlow
	predictionService service.IPredictionService
	logger            logger.ILogger
}

func NewPageController(
	authService service.IAuthService,
	auditService service.IAuditService,
	predictionService service.IPredictionService,
	sysLogger logger.ILogger,
	secureCookie bool,
) IPageController {
	return &pageController{
		flow: &loginFlow{
			authService:  authService,
			auditService: auditService,
			logger:       sysLogger,
			secureCookie: secureCookie,
		},
		predictionService: predictionService,
		logger:            sysLogger,
	}
}

func (c *pageController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Index)
	r.Post("/login", c.Login)
	r.Post("/logout", c.Logout)
	r.Post("/predict", c.Predict)
}

// Index renders the page for the current cookie. Dropdown changes submit
// the form here with a GET; values outside the option lists fall back to the
// first option so the record table always matches the dropdowns.
func (c *pageController) Index(ctx *fiber.Ctx) error {
	var form dto.StoryForm
	if err := ctx.QueryParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.render(ctx, fiber.StatusOK, view.NewPage(serverutils.AuthStateFrom(ctx), form.WithValidOptions()))
}

func (c *pageController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	state, err := c.flow.login(ctx, &req)
	if err != nil {
		return err
	}

	switch state.Status() {
	case entity.AuthSucceeded:
		// Post/Redirect/Get: reloading the page never re-posts the login
		return ctx.Redirect("/", fiber.StatusSeeOther)
	case entity.AuthFailed:
		return c.render(ctx, fiber.StatusUnauthorized, view.NewPage(state, dto.StoryForm{}))
	default:
		return c.render(ctx, fiber.StatusOK, view.NewPage(state, dto.StoryForm{}))
	}
}

func (c *pageController) Logout(ctx *fiber.Ctx) error {
	if err := c.flow.logout(ctx); err != nil {
		return err
	}
	return ctx.Redirect("/", fiber.StatusSeeOther)
}

func (c *pageController) Predict(ctx *fiber.Ctx) error {
	state := serverutils.AuthStateFrom(ctx)
	if !state.Succeeded() {
		return ctx.Redirect("/", fiber.StatusSeeOther)
	}

	var form dto.StoryForm
	if err := ctx.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	form = form.WithDefaults()

	if err := serverutils.ValidateRequest(&form); err != nil {
		page := view.NewPage(state, form)
		page.PredictError = err.Error()
		return c.render(ctx, fiber.StatusBadRequest, page)
	}

	page := view.NewPage(state, form)

	res, err := c.predictionService.Predict(ctx.UserContext(), form.ToEntity())
	if err != nil {
		if !errors.Is(err, service.ErrPredictionFailed) {
			return err
		}
		page.PredictError = constant.MessagePredictError
		return c.render(ctx, fiber.StatusInternalServerError, page)
	}

	page.Prediction = res
	return c.render(ctx, fiber.StatusOK, page)
}

func (c *pageController) render(ctx *fiber.Ctx, status int, page view.Page) error {
	body, err := view.Render(page)
	if err != nil {
		c.logger.Error("VIEW", "Failed to render page", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.Status(status).Send(body)
}
