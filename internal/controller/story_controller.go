// FILE: internal/controller/story_controller.go
package controller

import (
	"news-rating-be/internal/dto"
	"news-rating-be/internal/pkg/serverutils"
	"news-rating-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStoryController interface {
	RegisterRoutes(r fiber.Router)
	Options(ctx *fiber.Ctx) error
	Predict(ctx *fiber.Ctx) error
}

type storyController struct {
	predictionService service.IPredictionService
}

func NewStoryController(predictionService service.IPredictionService) IStoryController {
	return &storyController{
		predictionService: predictionService,
	}
}

func (c *storyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/story", serverutils.RequireSession)
	h.Get("/options", c.Options)
	h.Post("/predict", c.Predict)
}

func (c *storyController) Options(ctx *fiber.Ctx) error {
	res := dto.StoryOptionsResponse{
		Fields: dto.StoryFields(dto.StoryForm{}.WithDefaults()),
	}
	return ctx.JSON(serverutils.SuccessResponse("Story options", res))
}

func (c *storyController) Predict(ctx *fiber.Ctx) error {
	var req dto.StoryForm
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.predictionService.Predict(ctx.UserContext(), req.ToEntity())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Prediction successful", res))
}
