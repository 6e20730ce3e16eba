package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/repticare/internal/store"
	"github.com/mesh-intelligence/repticare/pkg/types"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T, s types.Store) *Repository {
	t.Helper()
	if s == nil {
		s = store.NewMemory()
	}
	r := New(s, WithClock(func() time.Time { return fixedNow }))
	r.Load()
	return r
}

func mustProfile(t *testing.T, r *Repository, name string) types.Profile {
	t.Helper()
	p, err := r.CreateProfile(types.ProfileInput{Name: name, Species: "Pogona vitticeps", Gender: types.GenderFemale})
	require.NoError(t, err)
	return p
}

func mustEntry(t *testing.T, r *Repository, profileID string, day int) types.Entry {
	t.Helper()
	e, err := r.CreateEntry(types.EntryInput{
		ProfileID: profileID,
		Date:      time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC),
		Type:      types.EntryCheckup,
		Notes:     fmt.Sprintf("day %d", day),
	})
	require.NoError(t, err)
	return e
}

func TestCreateProfileAssignsIDAndCreatedAt(t *testing.T) {
	r := newTestRepo(t, nil)

	p := mustProfile(t, r, "Spike")
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, fixedNow, p.CreatedAt)
	assert.Equal(t, types.GenderFemale, p.Gender)

	got, err := r.Profile(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestCreateProfileDefaultsGender(t *testing.T) {
	r := newTestRepo(t, nil)

	p, err := r.CreateProfile(types.ProfileInput{Name: "Noodle", Species: "Corn snake"})
	require.NoError(t, err)
	assert.Equal(t, types.GenderUnknown, p.Gender)
}

func TestCreateProfileSelectsIt(t *testing.T) {
	r := newTestRepo(t, nil)

	mustProfile(t, r, "A")
	b := mustProfile(t, r, "B")

	sel, ok := r.Selected()
	require.True(t, ok)
	assert.Equal(t, b.ID, sel.ID)
}

func TestIDsAreUnique(t *testing.T) {
	r := newTestRepo(t, nil)

	const k = 50
	seen := make(map[string]bool)
	for i := 0; i < k; i++ {
		p := mustProfile(t, r, fmt.Sprintf("p%d", i))
		assert.False(t, seen[p.ID], "duplicate profile id %s", p.ID)
		seen[p.ID] = true

		e := mustEntry(t, r, p.ID, 1)
		assert.False(t, seen[e.ID], "duplicate entry id %s", e.ID)
		seen[e.ID] = true
	}
	assert.Len(t, seen, 2*k)
}

func TestDeleteProfileCascades(t *testing.T) {
	s := store.NewMemory()
	r := newTestRepo(t, s)

	keep := mustProfile(t, r, "Keep")
	drop := mustProfile(t, r, "Drop")
	for day := 1; day <= 5; day++ {
		mustEntry(t, r, drop.ID, day)
	}
	kept := mustEntry(t, r, keep.ID, 3)

	require.NoError(t, r.DeleteProfile(drop.ID))

	assert.Empty(t, r.EntriesForProfile(drop.ID))
	_, err := r.Profile(drop.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, []types.Entry{kept}, r.Entries())

	// The store reflects the cascade too.
	reloaded := newTestRepo(t, s)
	assert.Len(t, reloaded.Profiles(), 1)
	assert.Empty(t, reloaded.EntriesForProfile(drop.ID))
	assert.Len(t, reloaded.Entries(), 1)
}

func TestDeleteProfileReselects(t *testing.T) {
	r := newTestRepo(t, nil)

	a := mustProfile(t, r, "A")
	b := mustProfile(t, r, "B")
	c := mustProfile(t, r, "C")
	assert.Equal(t, c.ID, r.SelectedID())

	require.NoError(t, r.DeleteProfile(c.ID))
	assert.Equal(t, a.ID, r.SelectedID())

	// Deleting a non-selected profile also re-derives to the first remaining.
	require.NoError(t, r.Select(b.ID))
	require.NoError(t, r.DeleteProfile(a.ID))
	assert.Equal(t, b.ID, r.SelectedID())

	require.NoError(t, r.DeleteProfile(b.ID))
	_, ok := r.Selected()
	assert.False(t, ok)
	assert.Empty(t, r.SelectedID())
}

func TestDeleteUnknownIDs(t *testing.T) {
	r := newTestRepo(t, nil)
	mustProfile(t, r, "A")

	assert.ErrorIs(t, r.DeleteProfile("nope"), types.ErrNotFound)
	assert.ErrorIs(t, r.DeleteEntry("nope"), types.ErrNotFound)
	assert.Len(t, r.Profiles(), 1)
}

func TestDeleteEntry(t *testing.T) {
	r := newTestRepo(t, nil)
	p := mustProfile(t, r, "A")
	e1 := mustEntry(t, r, p.ID, 1)
	e2 := mustEntry(t, r, p.ID, 2)

	require.NoError(t, r.DeleteEntry(e1.ID))
	assert.Equal(t, []types.Entry{e2}, r.EntriesForProfile(p.ID))
}

func TestEntriesForProfileKeepsStoredOrder(t *testing.T) {
	r := newTestRepo(t, nil)
	a := mustProfile(t, r, "A")
	b := mustProfile(t, r, "B")

	e5 := mustEntry(t, r, a.ID, 5)
	mustEntry(t, r, b.ID, 4)
	e1 := mustEntry(t, r, a.ID, 1)

	assert.Equal(t, []types.Entry{e5, e1}, r.EntriesForProfile(a.ID))
	assert.NotNil(t, r.EntriesForProfile("missing"))
	assert.Empty(t, r.EntriesForProfile("missing"))
}

func TestCreateEntryForMissingProfileIsAccepted(t *testing.T) {
	r := newTestRepo(t, nil)

	e := mustEntry(t, r, "ghost", 1)
	assert.Equal(t, []types.Entry{e}, r.EntriesForProfile("ghost"))

	removed, err := r.PruneOrphans()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Empty(t, r.Entries())
}

func TestPruneOrphansWithNothingToDoSkipsWrite(t *testing.T) {
	s := &countingStore{Store: store.NewMemory()}
	r := newTestRepo(t, s)
	p := mustProfile(t, r, "A")
	mustEntry(t, r, p.ID, 1)

	writes := s.sets
	removed, err := r.PruneOrphans()
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Equal(t, writes, s.sets)
}

func TestRoundTripPersistence(t *testing.T) {
	s := store.NewMemory()
	r := newTestRepo(t, s)

	birth := time.Date(2021, 4, 10, 0, 0, 0, 0, time.UTC)
	p, err := r.CreateProfile(types.ProfileInput{
		Name: "Kaa", Species: "Python regius", BirthDate: &birth, Gender: types.GenderMale,
	})
	require.NoError(t, err)
	_, err = r.CreateEntry(types.EntryInput{
		ProfileID:   p.ID,
		Date:        time.Date(2024, 5, 20, 9, 30, 0, 0, time.UTC),
		Type:        types.EntryEnvironment,
		Temperature: "31",
		Humidity:    "55",
		Notes:       "basking spot",
	})
	require.NoError(t, err)

	reloaded := newTestRepo(t, s)

	if diff := cmp.Diff(r.Profiles(), reloaded.Profiles()); diff != "" {
		t.Errorf("profiles mismatch after reload (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(r.Entries(), reloaded.Entries()); diff != "" {
		t.Errorf("entries mismatch after reload (-want +got):\n%s", diff)
	}
}

func TestLoadSelectsFirstProfile(t *testing.T) {
	s := store.NewMemory()
	r := newTestRepo(t, s)
	a := mustProfile(t, r, "A")
	mustProfile(t, r, "B")

	reloaded := newTestRepo(t, s)
	assert.Equal(t, a.ID, reloaded.SelectedID())
}

func TestLoadTreatsBadDataAsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		profiles string
		entries  string
	}{
		{name: "malformed json", profiles: `{not json`, entries: `[{"id":`},
		{name: "wrong shape", profiles: `{"id":"x"}`, entries: `"entries"`},
		{name: "null arrays", profiles: `null`, entries: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemory()
			require.NoError(t, s.Set(types.KeyProfiles, []byte(tt.profiles)))
			require.NoError(t, s.Set(types.KeyEntries, []byte(tt.entries)))

			r := newTestRepo(t, s)
			assert.NotNil(t, r.Profiles())
			assert.Empty(t, r.Profiles())
			assert.Empty(t, r.Entries())
			assert.Empty(t, r.SelectedID())
		})
	}
}

func TestLoadTreatsReadErrorsAsEmpty(t *testing.T) {
	s := &failingStore{getErr: errors.New("disk gone")}
	r := newTestRepo(t, s)
	assert.Empty(t, r.Profiles())
	assert.Empty(t, r.Entries())
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	s := &failingStore{getErr: types.ErrKeyNotFound, setErr: errors.New("read-only filesystem")}
	r := newTestRepo(t, s)

	p, err := r.CreateProfile(types.ProfileInput{Name: "A", Species: "Gecko"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrPersist)

	got, err := r.Profile(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	err = r.DeleteProfile(p.ID)
	assert.ErrorIs(t, err, types.ErrPersist)
	assert.Empty(t, r.Profiles())
}

func TestSelect(t *testing.T) {
	r := newTestRepo(t, nil)
	a := mustProfile(t, r, "A")
	mustProfile(t, r, "B")

	require.NoError(t, r.Select(a.ID))
	sel, ok := r.Selected()
	require.True(t, ok)
	assert.Equal(t, a.ID, sel.ID)

	assert.ErrorIs(t, r.Select("missing"), types.ErrNotFound)
	assert.Equal(t, a.ID, r.SelectedID(), "failed select must not change selection")

	r.ClearSelection()
	_, ok = r.Selected()
	assert.False(t, ok)
}

func TestAccessorsReturnCopies(t *testing.T) {
	r := newTestRepo(t, nil)
	p := mustProfile(t, r, "A")

	profiles := r.Profiles()
	profiles[0].Name = "mutated"

	got, err := r.Profile(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
}

// failingStore returns fixed errors from Get and Set.
type failingStore struct {
	getErr error
	setErr error
}

func (f *failingStore) Get(string) ([]byte, error) { return nil, f.getErr }
func (f *failingStore) Set(string, []byte) error   { return f.setErr }
func (f *failingStore) Close() error               { return nil }

// countingStore counts Set calls.
type countingStore struct {
	types.Store
	sets int
}

func (c *countingStore) Set(key string, value []byte) error {
	c.sets++
	return c.Store.Set(key, value)
}

func TestStoredJSONUsesGeneratedIDs(t *testing.T) {
	s := store.NewMemory()
	n := 0
	r := New(s,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }))
	r.Load()

	p := mustProfile(t, r, "Spike")
	e := mustEntry(t, r, p.ID, 2)
	assert.Equal(t, "id-1", p.ID)
	assert.Equal(t, "id-2", e.ID)

	data, err := s.Get(types.KeyEntries)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id": "id-2",
		"reptileId": "id-1",
		"date": "2024-05-02T00:00:00Z",
		"type": "checkup",
		"notes": "day 2",
		"createdAt": "2024-06-01T12:00:00Z"
	}]`, string(data))
}
