package api

import (
	"net/http"

	"github.com/codewithboateng/rulebench/internal/model"
	"github.com/codewithboateng/rulebench/internal/rulepacks"
)

func (s *Server) handleRulePacks(w http.ResponseWriter, r *http.Request) {
	if std := r.URL.Query().Get("standard"); std != "" {
		sel := model.Standard(std)
		if !model.KnownStandard(sel) {
			s.err(w, http.StatusBadRequest, "unknown standard")
			return
		}
		items := rulepacks.ByStandard(sel)
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
		return
	}
	items := rulepacks.List()
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}
