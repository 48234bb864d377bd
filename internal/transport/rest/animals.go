package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/animals-site/internal/app"
	"github.com/heartmarshall/animals-site/internal/domain"
)

// FetchErrorHeader names the fetch failure kind on a degraded page.
const FetchErrorHeader = "X-Fetch-Error"

type pageBuilder interface {
	BuildPage(ctx context.Context, query string) (app.Page, error)
}

// AnimalsHandler serves generated animal pages.
type AnimalsHandler struct {
	pages pageBuilder
	log   *slog.Logger
}

// NewAnimalsHandler creates an AnimalsHandler.
func NewAnimalsHandler(pages pageBuilder, logger *slog.Logger) *AnimalsHandler {
	return &AnimalsHandler{pages: pages, log: logger.With("handler", "animals")}
}

// Page handles GET /animals?name=NAME. A missing name selects the default animal.
//
// A failed lookup still yields a complete page with an error card, served as
// 200 with FetchErrorHeader set. Only template failures return 500.
func (h *AnimalsHandler) Page(w http.ResponseWriter, r *http.Request) {
	page, err := h.pages.BuildPage(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.log.ErrorContext(r.Context(), "build page failed", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if page.FetchErr != nil {
		kind, _ := domain.FetchErrorKindOf(page.FetchErr)
		w.Header().Set(FetchErrorHeader, string(kind))
	}
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, page.HTML) //nolint:errcheck
}

// NewRouter registers the page and health routes.
func NewRouter(animals *AnimalsHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /animals", animals.Page)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /health", health.Health)
	return mux
}
