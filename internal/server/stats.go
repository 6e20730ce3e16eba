package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/repticare/internal/present"
	"github.com/mesh-intelligence/repticare/internal/stats"
)

type statsResponse struct {
	Summary stats.Summary       `json:"summary"`
	Display present.SummaryView `json:"display"`
}

func (a *api) getStats(w http.ResponseWriter, r *http.Request) {
	p, err := a.repo.Profile(chi.URLParam(r, "profileID"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	s := stats.Compute(p, a.repo.EntriesForProfile(p.ID), a.now())
	writeJSON(w, http.StatusOK, statsResponse{Summary: s, Display: present.RenderSummary(p, s)})
}
