package repository

import (
	"fmt"

	"github.com/mesh-intelligence/repticare/pkg/types"
)

// Selected returns the currently selected profile. ok is false when nothing
// is selected.
func (r *Repository) Selected() (p types.Profile, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.selected == "" {
		return types.Profile{}, false
	}
	idx := r.indexOfProfile(r.selected)
	if idx < 0 {
		return types.Profile{}, false
	}
	return r.profiles[idx], true
}

// SelectedID returns the selected profile id or "".
func (r *Repository) SelectedID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selected
}

// Select makes id the selected profile.
// Returns ErrNotFound if no profile has that id; the selection is unchanged.
func (r *Repository) Select(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOfProfile(id) < 0 {
		return fmt.Errorf("select %s: %w", id, types.ErrNotFound)
	}
	r.selected = id
	return nil
}

// ClearSelection deselects any profile.
func (r *Repository) ClearSelection() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = ""
}
