package process

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"repage/config"
)

// Values is the context available to the output name template.
type Values struct {
	Title      string
	SourceFile string
	Pages      int
	Date       string
}

func newValues(title, src string, pages int) Values {
	return Values{
		Title:      title,
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		Pages:      pages,
		Date:       time.Now().Format("2006-01-02"),
	}
}

func expandTemplate(name config.TemplateFieldName, text string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return "", fmt.Errorf("bad template for %s: %w", name, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, values); err != nil {
		return "", fmt.Errorf("unable to expand %s: %w", name, err)
	}
	return sb.String(), nil
}
