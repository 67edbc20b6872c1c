// Package prompts holds the guidance prompt plugins. Each prompt renders one
// embedded text/template per language and echoes its bound arguments as
// metadata.
package prompts

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"calcmcp/internal/domain"
	"calcmcp/internal/schema"
)

const (
	languageChinese = "zh"
	languageEnglish = "en"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("prompts").Funcs(template.FuncMap{
	"num": formatNumber,
	"add": func(a, b int64) int64 { return a + b },
}).ParseFS(templateFS, "templates/*.tmpl"))

type renderFunc func(in schema.Input) (data any, err error)

type prompt struct {
	name        string
	description string
	schema      schema.Schema
	check       func(in schema.Input) error
	render      renderFunc
}

func (p *prompt) Name() string { return p.name }

func (p *prompt) Description() string { return p.description }

func (p *prompt) ArgumentsSchema() schema.Schema { return p.schema }

func (p *prompt) ValidateArguments(in schema.Input) bool {
	if p.check == nil {
		return true
	}
	return p.check(in) == nil
}

func (p *prompt) Generate(ctx context.Context, in schema.Input) (res domain.PromptResult) {
	defer func() {
		if r := recover(); r != nil {
			res = domain.PromptFailed(p.name, fmt.Errorf("generating %s failed: %v", p.name, r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return domain.PromptFailed(p.name, domain.Canceled(p.name, err))
	}
	if p.check != nil {
		if err := p.check(in); err != nil {
			return domain.PromptFailed(p.name, err)
		}
	}
	data, err := p.render(in)
	if err != nil {
		return domain.PromptFailed(p.name, err)
	}

	var buf bytes.Buffer
	tmpl := templateName(p.name, in.String("language"))
	if err := templates.ExecuteTemplate(&buf, tmpl, data); err != nil {
		return domain.PromptFailed(p.name, fmt.Errorf("render %s: %w", tmpl, err))
	}
	return domain.PromptSucceeded(p.name, strings.TrimSpace(buf.String()), in.Values())
}

func templateName(prompt, language string) string {
	if language != languageEnglish {
		language = languageChinese
	}
	return prompt + "." + language + ".tmpl"
}

func languageField() schema.Field {
	return schema.String("language", "Output language: zh (Chinese) or en (English)").
		Optional(languageChinese).
		OneOf(languageChinese, languageEnglish)
}

func formatNumber(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(n, 10)
	case int:
		return strconv.Itoa(n)
	case *float64:
		if n != nil {
			return formatNumber(*n)
		}
	case *int64:
		if n != nil {
			return formatNumber(*n)
		}
	}
	return fmt.Sprint(v)
}
