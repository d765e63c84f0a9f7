package view

import (
	"bytes"
	"embed"
	"html/template"

	"news-rating-be/internal/constant"
	"news-rating-be/internal/dto"
	"news-rating-be/internal/entity"
)

//go:embed templates/page.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/page.html"))

// Page is everything one render of the single page needs. Form, record and
// prediction fields are only read when Authenticated is true.
type Page struct {
	Title         string
	Disclaimer    string
	Authenticated bool
	Name          string
	Warning       string
	Error         string

	Fields       []dto.StoryField
	Record       []entity.StoryCell
	Prediction   *dto.PredictionResponse
	PredictError string
}

// NewPage builds the page for an auth state. Story fields are filled only
// for a succeeded session, so a failed login can never show the form. The
// record table only ever shows values from the option lists.
func NewPage(state entity.AuthState, form dto.StoryForm) Page {
	p := Page{
		Title:      constant.PageTitle,
		Disclaimer: constant.Disclaimer,
	}

	switch state.Status() {
	case entity.AuthSucceeded:
		p.Authenticated = true
		p.Name = state.Session().Name
		form = form.WithValidOptions()
		p.Fields = dto.StoryFields(form)
		p.Record = form.ToEntity().Cells()
	case entity.AuthFailed:
		p.Error = constant.MessageLoginFailed
	default:
		p.Warning = constant.MessageLoginPrompt
	}
	return p
}

func Render(p Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
