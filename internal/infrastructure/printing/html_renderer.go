package printing

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// HTMLRenderer executes the built-in layout, or an owner's custom print
// template, against a composed Document.
type HTMLRenderer struct {
	builtin *template.Template
}

// NewHTMLRenderer parses the built-in layout once at construction
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tpl, err := template.New("quote").Funcs(templateFuncs()).Parse(defaultQuoteTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse built-in quote template: %w", err)
	}
	return &HTMLRenderer{builtin: tpl}, nil
}

// Render executes the built-in layout
func (r *HTMLRenderer) Render(doc *Document) (string, error) {
	var b strings.Builder
	if err := r.builtin.Execute(&b, doc); err != nil {
		return "", fmt.Errorf("render quote document: %w", err)
	}
	return b.String(), nil
}

// RenderCustom executes a custom template body against the document.
// The body is parsed per call; custom templates change rarely and are
// small, so there is no parse cache.
func (r *HTMLRenderer) RenderCustom(content string, doc *Document) (string, error) {
	tpl, err := template.New("custom").Funcs(templateFuncs()).Parse(content)
	if err != nil {
		return "", fmt.Errorf("parse custom template: %w", err)
	}
	var b strings.Builder
	if err := tpl.Execute(&b, doc); err != nil {
		return "", fmt.Errorf("render custom template: %w", err)
	}
	return b.String(), nil
}

// templateFuncs exposes the formatting helpers to custom templates
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money":    FormatMoney,
		"moneyVND": FormatMoneyVND,
		"measure":  FormatMeasure,
		"date":     FormatDate,
		"roman":    RomanNumeral,
		"upper":    strings.ToUpper,
		"now":      time.Now,
		"decimal":  decimal.RequireFromString,
	}
}
