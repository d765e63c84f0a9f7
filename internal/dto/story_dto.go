// FILE: internal/dto/story_dto.go
package dto

import (
	"news-rating-be/internal/constant"
	"news-rating-be/internal/entity"
)

// StoryForm carries the six dropdown selections. The same struct binds the
// query string (dropdown changes), url-encoded posts (Predict) and JSON.
type StoryForm struct {
	Genre                 string `json:"genre" form:"genre" query:"genre" validate:"required,story_option=genre"`
	Geography             string `json:"geography" form:"geography" query:"geography" validate:"required,story_option=geography"`
	PersonalityPopularity string `json:"personality_popularity" form:"personality_popularity" query:"personality_popularity" validate:"required,story_option=personality_popularity"`
	PersonalityGenre      string `json:"personality_genre" form:"personality_genre" query:"personality_genre" validate:"required,story_option=personality_genre"`
	Logistics             string `json:"logistics" form:"logistics" query:"logistics" validate:"required,story_option=logistics"`
	StoryFormat           string `json:"story_format" form:"story_format" query:"story_format" validate:"required,story_option=story_format"`
}

// WithDefaults fills blank selections with the first option of each list.
func (f StoryForm) WithDefaults() StoryForm {
	d := entity.DefaultStoryRecord()
	if f.Genre == "" {
		f.Genre = d.Genre
	}
	if f.Geography == "" {
		f.Geography = d.Geography
	}
	if f.PersonalityPopularity == "" {
		f.PersonalityPopularity = d.PersonalityPopularity
	}
	if f.PersonalityGenre == "" {
		f.PersonalityGenre = d.PersonalityGenre
	}
	if f.Logistics == "" {
		f.Logistics = d.Logistics
	}
	if f.StoryFormat == "" {
		f.StoryFormat = d.StoryFormat
	}
	return f
}

// WithValidOptions replaces every selection outside its option list, blanks
// included, with the first option. Used where the form only drives display.
func (f StoryForm) WithValidOptions() StoryForm {
	d := entity.DefaultStoryRecord()
	pick := func(key, value, fallback string) string {
		if constant.IsStoryOption(key, value) {
			return value
		}
		return fallback
	}
	f.Genre = pick(constant.KeyGenre, f.Genre, d.Genre)
	f.Geography = pick(constant.KeyGeography, f.Geography, d.Geography)
	f.PersonalityPopularity = pick(constant.KeyPersonalityPopularity, f.PersonalityPopularity, d.PersonalityPopularity)
	f.PersonalityGenre = pick(constant.KeyPersonalityGenre, f.PersonalityGenre, d.PersonalityGenre)
	f.Logistics = pick(constant.KeyLogistics, f.Logistics, d.Logistics)
	f.StoryFormat = pick(constant.KeyStoryFormat, f.StoryFormat, d.StoryFormat)
	return f
}

func (f StoryForm) ToEntity() entity.StoryRecord {
	return entity.StoryRecord{
		Genre:                 f.Genre,
		Geography:             f.Geography,
		PersonalityPopularity: f.PersonalityPopularity,
		PersonalityGenre:      f.PersonalityGenre,
		Logistics:             f.Logistics,
		StoryFormat:           f.StoryFormat,
	}
}

type StoryField struct {
	Key      string   `json:"key"`
	Column   string   `json:"column"`
	Label    string   `json:"label"`
	Options  []string `json:"options"`
	Selected string   `json:"selected,omitempty"`
}

// StoryFields describes the form controls in display order, with the current
// selection marked.
func StoryFields(f StoryForm) []StoryField {
	return []StoryField{
		{Key: constant.KeyGenre, Column: constant.ColumnGenre, Label: constant.LabelGenre, Options: constant.GenreOptions, Selected: f.Genre},
		{Key: constant.KeyGeography, Column: constant.ColumnGeography, Label: constant.LabelGeography, Options: constant.GeographyOptions, Selected: f.Geography},
		{Key: constant.KeyPersonalityPopularity, Column: constant.ColumnPersonalityPopularity, Label: constant.LabelPersonalityPopularity, Options: constant.PersonalityPopularityOptions, Selected: f.PersonalityPopularity},
		{Key: constant.KeyPersonalityGenre, Column: constant.ColumnPersonalityGenre, Label: constant.LabelPersonalityGenre, Options: constant.PersonalityGenreOptions, Selected: f.PersonalityGenre},
		{Key: constant.KeyLogistics, Column: constant.ColumnLogistics, Label: constant.LabelLogistics, Options: constant.LogisticsOptions, Selected: f.Logistics},
		{Key: constant.KeyStoryFormat, Column: constant.ColumnStoryFormat, Label: constant.LabelStoryFormat, Options: constant.StoryFormatOptions, Selected: f.StoryFormat},
	}
}

type StoryOptionsResponse struct {
	Fields []StoryField `json:"fields"`
}

type TierNote struct {
	Intro string              `json:"intro"`
	Bands []constant.TierBand `json:"bands"`
}

type PredictionResponse struct {
	Tier   int                `json:"tier"`
	Label  string             `json:"label"`
	Record []entity.StoryCell `json:"record"`
	Note   TierNote           `json:"note"`
}
