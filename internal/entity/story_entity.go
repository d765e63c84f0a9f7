// FILE: internal/entity/story_entity.go
package entity

import "news-rating-be/internal/constant"

// StoryRecord is one news story described by its six categorical attributes.
// It is built per request and never persisted.
type StoryRecord struct {
	Genre                 string
	Geography             string
	PersonalityPopularity string
	PersonalityGenre      string
	Logistics             string
	StoryFormat           string
}

type StoryCell struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// DefaultStoryRecord selects the first option of every list, matching what a
// fresh form shows.
func DefaultStoryRecord() StoryRecord {
	return StoryRecord{
		Genre:                 constant.GenreOptions[0],
		Geography:             constant.GeographyOptions[0],
		PersonalityPopularity: constant.PersonalityPopularityOptions[0],
		PersonalityGenre:      constant.PersonalityGenreOptions[0],
		Logistics:             constant.LogisticsOptions[0],
		StoryFormat:           constant.StoryFormatOptions[0],
	}
}

// Row keys the record by training column name.
func (r StoryRecord) Row() map[string]string {
	return map[string]string{
		constant.ColumnGenre:                 r.Genre,
		constant.ColumnGeography:             r.Geography,
		constant.ColumnPersonalityPopularity: r.PersonalityPopularity,
		constant.ColumnPersonalityGenre:      r.PersonalityGenre,
		constant.ColumnLogistics:             r.Logistics,
		constant.ColumnStoryFormat:           r.StoryFormat,
	}
}

// Cells returns the record in display column order.
func (r StoryRecord) Cells() []StoryCell {
	row := r.Row()
	cells := make([]StoryCell, 0, len(constant.StoryColumns))
	for _, col := range constant.StoryColumns {
		cells = append(cells, StoryCell{Column: col, Value: row[col]})
	}
	return cells
}

// TierLabel maps a classifier class to its viewership label.
func TierLabel(tier int) string {
	if tier < 0 || tier >= len(constant.TierLabels) {
		return constant.TierInvalid
	}
	return constant.TierLabels[tier]
}
