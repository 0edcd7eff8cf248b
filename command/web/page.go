package web

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"lari-stats/domain/dashboard"
)

//go:embed templates/index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

type indexData struct {
	Title        string
	Logo         template.URL
	Months       []string
	FailureTypes []string
	DefaultMonth string
	Palette      dashboard.Palette
}

func (s *server) index(c echo.Context) error {
	data := indexData{
		Title:        s.page.Title,
		Logo:         template.URL(s.page.Logo),
		Months:       s.dash.Months(),
		FailureTypes: s.dash.FailureTypes(),
		DefaultMonth: s.page.DefaultMonth,
		Palette:      s.dash.Options().Palette,
	}
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
