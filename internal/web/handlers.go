package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/slabworks/lister/internal/card"
	"github.com/slabworks/lister/internal/logging"
)

// handleHealth reports liveness and when the record set was last built.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":    "ok",
		"loaded_at": s.session.LoadedAt().Format(time.RFC3339),
	})
}

// handleListCards returns the cards matching the query-string filter.
func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	f := parseFilter(r)
	cards := s.session.Filter(f)

	writeJSON(w, map[string]interface{}{
		"count": len(cards),
		"cards": cards,
	})
}

// handleGetCard returns one card by identity key.
func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing card key")
		return
	}

	c, ok := s.session.Find(key)
	if !ok {
		writeError(w, http.StatusNotFound, "card not found")
		return
	}

	writeJSON(w, c)
}

// handleFacets returns the distinct filterable values.
func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.session.Facets())
}

// exportRequest selects which cards to export. With no keys, the
// query-string filter decides.
type exportRequest struct {
	Keys []string `json:"keys"`
}

// handleExport maps the selected cards into the listing template and
// streams the resulting CSV as a download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid export request body")
			return
		}
	}

	exportID := uuid.NewString()
	blob, added := s.session.Export(req.Keys, parseFilter(r))

	logging.FromContext(r.Context()).Info("listing export",
		"export_id", exportID,
		"requested", len(req.Keys),
		"rows_added", added,
	)

	filename := fmt.Sprintf("listing_upload_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("X-Export-ID", exportID)
	w.Header().Set("X-Rows-Added", strconv.Itoa(added))

	if _, err := w.Write([]byte(blob)); err != nil {
		logging.FromContext(r.Context()).Error("export write failed", "error", err)
	}
}

// handleReload rebuilds the record set from the source files.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Reload(); err != nil {
		logging.FromContext(r.Context()).Error("reload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "reload failed")
		return
	}

	writeJSON(w, map[string]interface{}{
		"status": "reloaded",
		"count":  len(s.session.Cards()),
	})
}

// parseFilter builds the filter predicate from query parameters.
func parseFilter(r *http.Request) card.Filter {
	q := r.URL.Query()
	return card.Filter{
		Query:        q.Get("q"),
		Set:          q.Get("set"),
		Team:         q.Get("team"),
		League:       q.Get("league"),
		AutoOnly:     boolParam(q.Get("auto")),
		NumberedOnly: boolParam(q.Get("numbered")),
		UnlistedOnly: boolParam(q.Get("unlisted")),
	}
}

func boolParam(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
