package dto

import (
	"testing"

	"news-rating-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestWithValidOptions(t *testing.T) {
	form := StoryForm{
		Genre:                 "GOSSIP",
		Geography:             "INDIAN",
		PersonalityPopularity: "l",
		PersonalityGenre:      "Cricketer",
		Logistics:             "",
		StoryFormat:           "<b>NEWS REPORT</b>",
	}.WithValidOptions()

	d := entity.DefaultStoryRecord()
	assert.Equal(t, d.Genre, form.Genre)
	assert.Equal(t, "INDIAN", form.Geography)
	assert.Equal(t, d.PersonalityPopularity, form.PersonalityPopularity)
	assert.Equal(t, "Cricketer", form.PersonalityGenre)
	assert.Equal(t, d.Logistics, form.Logistics)
	assert.Equal(t, d.StoryFormat, form.StoryFormat)
}

func TestWithValidOptionsKeepsValidForm(t *testing.T) {
	form := StoryForm{
		Genre:                 "SPORTS NEWS",
		Geography:             "INDIAN",
		PersonalityPopularity: "L",
		PersonalityGenre:      "Cricketer",
		Logistics:             "ON LOCATION",
		StoryFormat:           "NEWS REPORT",
	}
	assert.Equal(t, form, form.WithValidOptions())
}
