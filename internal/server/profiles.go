package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/repticare/internal/forms"
	"github.com/mesh-intelligence/repticare/internal/present"
	"github.com/mesh-intelligence/repticare/pkg/types"
)

type profileResponse struct {
	types.Profile
	GenderLabel string `json:"genderLabel"`
	Selected    bool   `json:"selected"`
}

func (a *api) toProfileResponse(p types.Profile) profileResponse {
	return profileResponse{
		Profile:     p,
		GenderLabel: present.GenderLabel(p.Gender),
		Selected:    p.ID == a.repo.SelectedID(),
	}
}

func (a *api) listProfiles(w http.ResponseWriter, _ *http.Request) {
	profiles := a.repo.Profiles()
	out := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, a.toProfileResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *api) createProfile(w http.ResponseWriter, r *http.Request) {
	var form forms.ProfileForm
	if err := decodeJSON(r, &form); err != nil {
		a.writeError(w, err)
		return
	}

	in, err := form.Validate(a.now())
	if err != nil {
		a.writeError(w, err)
		return
	}

	p, err := a.repo.CreateProfile(in)
	if err != nil && !a.savedInMemoryOnly(err, "create profile") {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a.toProfileResponse(p))
}

func (a *api) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := a.repo.Profile(chi.URLParam(r, "profileID"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.toProfileResponse(p))
}

func (a *api) deleteProfile(w http.ResponseWriter, r *http.Request) {
	err := a.repo.DeleteProfile(chi.URLParam(r, "profileID"))
	if err != nil && !a.savedInMemoryOnly(err, "delete profile") {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type selectionResponse struct {
	SelectedID string           `json:"selectedId"`
	Profile    *profileResponse `json:"profile,omitempty"`
}

type selectionRequest struct {
	ID string `json:"id"`
}

func (a *api) getSelection(w http.ResponseWriter, _ *http.Request) {
	a.writeSelection(w)
}

// putSelection selects a profile; an empty id clears the selection.
func (a *api) putSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	if req.ID == "" {
		a.repo.ClearSelection()
	} else if err := a.repo.Select(req.ID); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeSelection(w)
}

func (a *api) writeSelection(w http.ResponseWriter) {
	resp := selectionResponse{}
	if p, ok := a.repo.Selected(); ok {
		pr := a.toProfileResponse(p)
		resp.SelectedID = p.ID
		resp.Profile = &pr
	}
	writeJSON(w, http.StatusOK, resp)
}
