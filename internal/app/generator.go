package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/animals-site/internal/config"
	"github.com/heartmarshall/animals-site/internal/domain"
	"github.com/heartmarshall/animals-site/internal/site"
	"github.com/heartmarshall/animals-site/pkg/ctxutil"
)

// AnimalFetcher looks up animal records by name.
type AnimalFetcher interface {
	FetchAnimals(ctx context.Context, name string) ([]domain.Animal, error)
}

// Page is a fully generated HTML document.
type Page struct {
	Query   string
	HTML    string
	Records int
	// FetchErr is set when the lookup failed and HTML carries the error card.
	FetchErr error
}

// Result summarizes one Generate run.
type Result struct {
	Query      string
	OutputPath string
	Records    int
	// FetchErrorKind is empty on a successful lookup.
	FetchErrorKind domain.FetchErrorKind
}

// Generator runs the fetch, render and write pipeline.
type Generator struct {
	fetcher AnimalFetcher
	site    config.SiteConfig
	log     *slog.Logger
}

// NewGenerator creates a Generator. SiteConfig supplies the template path,
// the output path and the default animal name.
func NewGenerator(fetcher AnimalFetcher, cfg config.SiteConfig, logger *slog.Logger) *Generator {
	return &Generator{
		fetcher: fetcher,
		site:    cfg,
		log:     logger.With("component", "generator"),
	}
}

// BuildPage fetches query and substitutes the rendered cards into the template.
// A blank query falls back to the default animal.
//
// Fetch failures do not abort: the page carries an error card and
// Page.FetchErr is set. Only template errors are returned.
func (g *Generator) BuildPage(ctx context.Context, query string) (Page, error) {
	ctx, runID := ctxutil.EnsureRequestID(ctx)
	query = domain.QueryOrDefault(query, g.site.DefaultAnimal)

	tmpl, err := site.LoadTemplate(g.site.TemplatePath)
	if err != nil {
		return Page{}, fmt.Errorf("build page: %w", err)
	}

	page := Page{Query: query}
	var fragment string

	animals, err := g.fetcher.FetchAnimals(ctx, query)
	if err != nil {
		kind, _ := domain.FetchErrorKindOf(err)
		g.log.ErrorContext(ctx, "fetch animals failed",
			slog.String("run_id", runID),
			slog.String("query", query),
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
		page.FetchErr = err
		fragment = site.RenderError(domain.UserMessage(err), query)
	} else {
		page.Records = len(animals)
		fragment = site.RenderCards(animals, query)
	}

	html, err := site.Substitute(tmpl, fragment)
	if err != nil {
		return Page{}, fmt.Errorf("build page: %w", err)
	}
	page.HTML = html

	g.log.DebugContext(ctx, "page built",
		slog.String("run_id", runID),
		slog.String("query", query),
		slog.Int("records", page.Records),
	)
	return page, nil
}

// Generate builds the page for query and writes it to the configured output path.
func (g *Generator) Generate(ctx context.Context, query string) (Result, error) {
	ctx, runID := ctxutil.EnsureRequestID(ctx)

	page, err := g.BuildPage(ctx, query)
	if err != nil {
		return Result{}, err
	}

	if err := site.WritePage(g.site.OutputPath, page.HTML); err != nil {
		return Result{}, fmt.Errorf("generate: %w", err)
	}

	res := Result{
		Query:      page.Query,
		OutputPath: g.site.OutputPath,
		Records:    page.Records,
	}
	if page.FetchErr != nil {
		res.FetchErrorKind, _ = domain.FetchErrorKindOf(page.FetchErr)
	}

	g.log.InfoContext(ctx, "page generated",
		slog.String("run_id", runID),
		slog.String("query", res.Query),
		slog.String("output", res.OutputPath),
		slog.Int("records", res.Records),
	)
	return res, nil
}
