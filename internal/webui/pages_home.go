package webui

import (
	"net/http"
	"strings"
)

func errOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	view := homeView{Stage: "input"}
	if st, ok := s.sessions.State(sessionID(r)); ok {
		view.Prompt = st.Prompt
		view.Intent = st.Intent
		switch {
		case len(st.Strategies) > 0:
			view.Stage = "strategies"
			view.Strategies = buildStrategyCards(st.Strategies)
		case st.Intent != nil:
			view.Stage = "parsed"
		}
	}
	renderPage(w, "home.html", view)
}

// handlePromptSubmit runs the two-step pipeline. A blank prompt never reaches
// the backend; a parse failure re-renders the input stage; a generate failure
// renders the parsed stage with the intent intact.
func (s *server) handlePromptSubmit(w http.ResponseWriter, r *http.Request) {
	prompt := strings.TrimSpace(r.FormValue("prompt"))
	if prompt == "" {
		renderPage(w, "home.html", homeView{
			Stage: "input",
			Error: "Please enter a trading strategy prompt.",
		})
		return
	}

	parsed := s.backend.ParseIntent(r.Context(), prompt)
	if !parsed.OK {
		renderPage(w, "home.html", homeView{
			Stage:  "input",
			Prompt: prompt,
			Error:  errOr(parsed.Err, "Failed to parse your request"),
		})
		return
	}

	generated := s.backend.GenerateStrategies(r.Context(), parsed.Data)
	if !generated.OK {
		intent := parsed.Data
		renderPage(w, "home.html", homeView{
			Stage:  "parsed",
			Prompt: prompt,
			Intent: &intent,
			Error:  errOr(generated.Err, "Failed to generate strategies"),
		})
		return
	}

	s.sessions.Remember(sessionID(r), prompt, parsed.Data, generated.Data)

	intent := parsed.Data
	renderPage(w, "home.html", homeView{
		Stage:      "strategies",
		Prompt:     prompt,
		Intent:     &intent,
		Strategies: buildStrategyCards(generated.Data),
	})
}

// handleReset is the edit-prompt action: back to input, parsed and generated
// data discarded.
func (s *server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(sessionID(r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
