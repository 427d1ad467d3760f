package webui

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dgnsrekt/strategy_studio/internal/flow"
	"github.com/go-chi/chi/v5"
)

// handleLibrary renders the saved-strategies page. ?q= filters locally,
// ?format=json returns the raw list for programmatic use; errors on that
// variant stay JSON.
func (s *server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	lib := flow.NewLibrary(s.backend)

	if r.URL.Query().Get("format") == "json" {
		w.Header().Set("Content-Type", "application/json")
		if err := lib.Load(r.Context()); err != nil {
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		if err := json.NewEncoder(w).Encode(lib.Strategies()); err != nil {
			slog.Debug("library json encode failed", "error", err)
		}
		return
	}

	view := libraryView{Query: r.URL.Query().Get("q")}
	switch r.URL.Query().Get("notice") {
	case "saved":
		view.Notice = "Strategy saved to your library"
	case "deleted":
		view.Notice = "Strategy deleted"
	}
	if msg := r.URL.Query().Get("err"); msg != "" {
		view.Error = msg
	}

	if err := lib.Load(r.Context()); err != nil {
		view.Error = err.Error()
		renderPage(w, "library.html", view)
		return
	}

	view.Cards = buildLibraryCards(lib.Filter(view.Query))
	view.Count, view.LastSaved = lib.Stats()
	renderPage(w, "library.html", view)
}

// handleDelete removes a saved strategy and lands back on the library page.
func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res := s.backend.DeleteStrategy(r.Context(), id)
	if !res.OK {
		msg := errOr(res.Err, "Failed to delete strategy")
		http.Redirect(w, r, "/library?err="+url.QueryEscape(msg), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/library?notice=deleted", http.StatusSeeOther)
}
