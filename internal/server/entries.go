package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/repticare/internal/forms"
	"github.com/mesh-intelligence/repticare/internal/present"
	"github.com/mesh-intelligence/repticare/pkg/types"
)

type entryResponse struct {
	types.Entry
	TypeLabel string `json:"typeLabel"`
	DateLabel string `json:"dateLabel"`
}

func toEntryResponse(e types.Entry) entryResponse {
	return entryResponse{
		Entry:     e,
		TypeLabel: present.EntryTypeLabel(e.Type),
		DateLabel: present.FormatDate(e.Date),
	}
}

// listEntries returns the profile's entries newest first.
func (a *api) listEntries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "profileID")
	if _, err := a.repo.Profile(id); err != nil {
		a.writeError(w, err)
		return
	}

	entries := present.SortByDateDesc(a.repo.EntriesForProfile(id))
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

// createEntry logs an entry against the profile in the URL. Unlike the
// repository, the API refuses entries for profiles that do not exist.
func (a *api) createEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "profileID")
	if _, err := a.repo.Profile(id); err != nil {
		a.writeError(w, err)
		return
	}

	var form forms.EntryForm
	if err := decodeJSON(r, &form); err != nil {
		a.writeError(w, err)
		return
	}
	form.ProfileID = id

	in, err := form.Validate(a.now())
	if err != nil {
		a.writeError(w, err)
		return
	}

	e, err := a.repo.CreateEntry(in)
	if err != nil && !a.savedInMemoryOnly(err, "create entry") {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryResponse(e))
}

func (a *api) deleteEntry(w http.ResponseWriter, r *http.Request) {
	err := a.repo.DeleteEntry(chi.URLParam(r, "entryID"))
	if err != nil && !a.savedInMemoryOnly(err, "delete entry") {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type entryTypeResponse struct {
	Type   types.EntryType `json:"type"`
	Label  string          `json:"label"`
	Fields []present.Field `json:"fields"`
}

// listEntryTypes tells a form which optional fields to show for each type.
func (a *api) listEntryTypes(w http.ResponseWriter, _ *http.Request) {
	out := make([]entryTypeResponse, 0, len(types.EntryTypes))
	for _, t := range types.EntryTypes {
		out = append(out, entryTypeResponse{
			Type:   t,
			Label:  present.EntryTypeLabel(t),
			Fields: present.ApplicableFields(t),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
