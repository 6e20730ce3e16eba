// Package repository owns the in-memory profile and entry collections,
// mirrors them into a Store after every mutation, and tracks which profile is
// currently selected.
package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/repticare/pkg/types"
)

// Repository holds both collections and the selection. Every mutation
// updates memory first and then writes the whole affected collection to the
// store. If the write fails the in-memory change stands and the error wraps
// types.ErrPersist.
type Repository struct {
	mu       sync.RWMutex
	store    types.Store
	log      *zap.Logger
	now      func() time.Time
	newID    func() string
	profiles []types.Profile
	entries  []types.Entry
	selected string
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Repository) { r.log = l }
}

// WithClock overrides the source of CreatedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(gen func() string) Option {
	return func(r *Repository) { r.newID = gen }
}

// New returns an empty Repository backed by store. Call Load to read
// previously persisted collections.
func New(store types.Store, opts ...Option) *Repository {
	r := &Repository{
		store:    store,
		log:      zap.NewNop(),
		now:      time.Now,
		newID:    generateUUID,
		profiles: []types.Profile{},
		entries:  []types.Entry{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load replaces the in-memory collections with what the store holds.
// Missing keys, read failures and malformed JSON all yield an empty
// collection. After loading, the first profile (if any) is selected.
func (r *Repository) Load() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles = loadCollection[types.Profile](r, types.KeyProfiles)
	r.entries = loadCollection[types.Entry](r, types.KeyEntries)

	r.selected = ""
	if len(r.profiles) > 0 {
		r.selected = r.profiles[0].ID
	}

	r.log.Debug("repository loaded",
		zap.Int("profiles", len(r.profiles)),
		zap.Int("entries", len(r.entries)))
}

// loadCollection reads and decodes one key. The caller must hold r.mu.
func loadCollection[T any](r *Repository, key string) []T {
	data, err := r.store.Get(key)
	if errors.Is(err, types.ErrKeyNotFound) {
		return []T{}
	}
	if err != nil {
		r.log.Warn("reading collection failed, starting empty", zap.String("key", key), zap.Error(err))
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		r.log.Warn("malformed collection, starting empty", zap.String("key", key), zap.Error(err))
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// CreateProfile appends a new profile, persists the collection and selects
// the new profile.
func (r *Repository) CreateProfile(in types.ProfileInput) (types.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	gender := in.Gender
	if gender == "" {
		gender = types.GenderUnknown
	}

	p := types.Profile{
		ID:        r.newID(),
		Name:      in.Name,
		Species:   in.Species,
		BirthDate: in.BirthDate,
		Gender:    gender,
		CreatedAt: r.now(),
	}
	r.profiles = append(r.profiles, p)
	r.selected = p.ID

	r.log.Debug("profile created", zap.String("id", p.ID), zap.String("name", p.Name))
	return p, r.persistProfiles()
}

// CreateEntry appends a new entry and persists the collection. The profile
// reference is not checked; an entry for a missing profile is kept until
// PruneOrphans removes it.
func (r *Repository) CreateEntry(in types.EntryInput) (types.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := types.Entry{
		ID:          r.newID(),
		ProfileID:   in.ProfileID,
		Date:        in.Date,
		Type:        in.Type,
		Weight:      in.Weight,
		Temperature: in.Temperature,
		Humidity:    in.Humidity,
		Feeding:     in.Feeding,
		Notes:       in.Notes,
		CreatedAt:   r.now(),
	}
	r.entries = append(r.entries, e)

	if r.indexOfProfile(in.ProfileID) < 0 {
		r.log.Warn("entry references unknown profile", zap.String("entry", e.ID), zap.String("profile", in.ProfileID))
	}
	r.log.Debug("entry created", zap.String("id", e.ID), zap.String("profile", e.ProfileID), zap.String("type", string(e.Type)))
	return e, r.persistEntries()
}

// DeleteProfile removes the profile and every entry that references it, then
// selects the first remaining profile or nothing.
// Returns ErrNotFound if no profile has that id.
func (r *Repository) DeleteProfile(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOfProfile(id)
	if idx < 0 {
		return fmt.Errorf("delete profile %s: %w", id, types.ErrNotFound)
	}

	r.profiles = slices.Delete(r.profiles, idx, idx+1)
	before := len(r.entries)
	r.entries = slices.DeleteFunc(r.entries, func(e types.Entry) bool {
		return e.ProfileID == id
	})

	r.selected = ""
	if len(r.profiles) > 0 {
		r.selected = r.profiles[0].ID
	}

	r.log.Debug("profile deleted", zap.String("id", id), zap.Int("cascaded_entries", before-len(r.entries)))
	return errors.Join(r.persistProfiles(), r.persistEntries())
}

// DeleteEntry removes one entry.
// Returns ErrNotFound if no entry has that id.
func (r *Repository) DeleteEntry(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.entries, func(e types.Entry) bool { return e.ID == id })
	if idx < 0 {
		return fmt.Errorf("delete entry %s: %w", id, types.ErrNotFound)
	}
	r.entries = slices.Delete(r.entries, idx, idx+1)

	r.log.Debug("entry deleted", zap.String("id", id))
	return r.persistEntries()
}

// PruneOrphans removes entries whose profile no longer exists and returns how
// many were dropped. The store is written only when something changed.
func (r *Repository) PruneOrphans() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	known := make(map[string]struct{}, len(r.profiles))
	for _, p := range r.profiles {
		known[p.ID] = struct{}{}
	}

	before := len(r.entries)
	r.entries = slices.DeleteFunc(r.entries, func(e types.Entry) bool {
		_, ok := known[e.ProfileID]
		return !ok
	})
	removed := before - len(r.entries)
	if removed == 0 {
		return 0, nil
	}

	r.log.Info("pruned orphaned entries", zap.Int("removed", removed))
	return removed, r.persistEntries()
}

// Profiles returns a copy of all profiles in insertion order.
func (r *Repository) Profiles() []types.Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.profiles)
}

// Entries returns a copy of all entries in insertion order.
func (r *Repository) Entries() []types.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.entries)
}

// Profile returns the profile with the given id.
// Returns ErrNotFound if there is none.
func (r *Repository) Profile(id string) (types.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOfProfile(id)
	if idx < 0 {
		return types.Profile{}, fmt.Errorf("profile %s: %w", id, types.ErrNotFound)
	}
	return r.profiles[idx], nil
}

// EntriesForProfile returns the entries that reference profileID, in stored
// order. Sorting for display is left to the caller.
func (r *Repository) EntriesForProfile(profileID string) []types.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.Entry, 0)
	for _, e := range r.entries {
		if e.ProfileID == profileID {
			out = append(out, e)
		}
	}
	return out
}

// indexOfProfile returns the slice index of id or -1. The caller must hold r.mu.
func (r *Repository) indexOfProfile(id string) int {
	return slices.IndexFunc(r.profiles, func(p types.Profile) bool { return p.ID == id })
}

// persistProfiles writes the profile collection. The caller must hold r.mu.
func (r *Repository) persistProfiles() error {
	return r.persist(types.KeyProfiles, r.profiles)
}

// persistEntries writes the entry collection. The caller must hold r.mu.
func (r *Repository) persistEntries() error {
	return r.persist(types.KeyEntries, r.entries)
}

func (r *Repository) persist(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		r.log.Error("encoding collection failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: encode %s: %v", types.ErrPersist, key, err)
	}
	if err := r.store.Set(key, data); err != nil {
		r.log.Error("writing collection failed, memory and store diverge", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: write %s: %w", types.ErrPersist, key, err)
	}
	return nil
}

// generateUUID generates a new UUID v7 for record IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
