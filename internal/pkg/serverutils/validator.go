package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"news-rating-be/internal/constant"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

// newValidator registers the story_option rule. Its param names the option
// set, e.g. `validate:"story_option=genre"`.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("story_option", isStoryOption); err != nil {
		panic(fmt.Sprintf("register story_option: %v", err))
	}
	return v
}

func isStoryOption(fl validator.FieldLevel) bool {
	return constant.IsStoryOption(fl.Param(), fl.Field().String())
}

// ValidateRequest checks validate tags and reports failures as a 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "story_option":
			parts = append(parts, fmt.Sprintf("%s: %q is not an allowed option", fe.Field(), fe.Value()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
