package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/clip"
)

//go:embed *.md
var templates embed.FS

// RenderPortfolio renders the Portfolio struct to a markdown string.
func RenderPortfolio(p *Portfolio) string {
	partials := map[string]string{
		"portfolio_title":   "portfolio_title.md",
		"portfolio_tickers": "portfolio_tickers.md",
	}
	return renderTemplate("portfolio", "portfolio.md", partials, p)
}

// RenderTicker renders the Ticker struct to a markdown string.
func RenderTicker(t *Ticker) string {
	partials := map[string]string{
		"ticker_positions": "ticker_positions.md",
	}
	return renderTemplate("ticker", "ticker.md", partials, t)
}

// PortfolioMarkdown renders the panel of all tickers in p.
func PortfolioMarkdown(p *clip.Portfolio) string { return RenderPortfolio(NewPortfolio(p)) }

// TickerMarkdown renders a single ledger with its position history.
func TickerMarkdown(t *clip.Ticker) string { return RenderTicker(NewTicker(t)) }

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
