package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/repticare/pkg/types"
)

// envPostgresDSN enables the Postgres contract run.
const envPostgresDSN = "REPTICARE_TEST_POSTGRES_DSN"

// storeFactories returns every backend that can run in this environment.
func storeFactories(t *testing.T) map[string]func(t *testing.T) types.Store {
	factories := map[string]func(t *testing.T) types.Store{
		"memory": func(t *testing.T) types.Store { return NewMemory() },
		"file": func(t *testing.T) types.Store {
			s, err := OpenFile(t.TempDir())
			require.NoError(t, err)
			return s
		},
		"sqlite": func(t *testing.T) types.Store {
			s, err := OpenSQLite(t.TempDir())
			require.NoError(t, err)
			return s
		},
	}
	if dsn := os.Getenv(envPostgresDSN); dsn != "" {
		factories["postgres"] = func(t *testing.T) types.Store {
			s, err := OpenPostgres(dsn)
			require.NoError(t, err)
			_, err = s.db.Exec(`DELETE FROM blobs`)
			require.NoError(t, err)
			return s
		}
	}
	return factories
}

func TestStoreContract(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("missing key returns ErrKeyNotFound", func(t *testing.T) {
				s := open(t)
				defer s.Close()

				_, err := s.Get(types.KeyProfiles)
				assert.ErrorIs(t, err, types.ErrKeyNotFound)
			})

			t.Run("set then get returns the value", func(t *testing.T) {
				s := open(t)
				defer s.Close()

				require.NoError(t, s.Set(types.KeyProfiles, []byte(`[{"id":"a"}]`)))
				got, err := s.Get(types.KeyProfiles)
				require.NoError(t, err)
				assert.JSONEq(t, `[{"id":"a"}]`, string(got))
			})

			t.Run("set overwrites", func(t *testing.T) {
				s := open(t)
				defer s.Close()

				require.NoError(t, s.Set(types.KeyEntries, []byte(`[1]`)))
				require.NoError(t, s.Set(types.KeyEntries, []byte(`[]`)))
				got, err := s.Get(types.KeyEntries)
				require.NoError(t, err)
				assert.Equal(t, `[]`, string(got))
			})

			t.Run("keys are independent", func(t *testing.T) {
				s := open(t)
				defer s.Close()

				require.NoError(t, s.Set(types.KeyProfiles, []byte(`["p"]`)))
				require.NoError(t, s.Set(types.KeyEntries, []byte(`["e"]`)))

				p, err := s.Get(types.KeyProfiles)
				require.NoError(t, err)
				e, err := s.Get(types.KeyEntries)
				require.NoError(t, err)
				assert.Equal(t, `["p"]`, string(p))
				assert.Equal(t, `["e"]`, string(e))
			})

			t.Run("closed store rejects operations", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.Close())
				require.NoError(t, s.Close(), "Close must be idempotent")

				_, err := s.Get(types.KeyProfiles)
				assert.ErrorIs(t, err, types.ErrStoreClosed)
				assert.ErrorIs(t, s.Set(types.KeyProfiles, []byte(`[]`)), types.ErrStoreClosed)
			})
		})
	}
}

func TestFileStoreWritesOneFilePerKey(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFile(dir)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(types.KeyProfiles, []byte(`[]`)))
	require.NoError(t, s.Set(types.KeyEntries, []byte(`[]`)))

	for _, name := range []string{"reptiles.json", "entries.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected %s to exist", name)
	}

	// No temp files left behind after successful writes.
	matches, err := filepath.Glob(filepath.Join(dir, ".blob-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFileStoreCreatesNestedDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	s, err := OpenFile(dir)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(types.KeyEntries, []byte(`[]`)))
	assert.FileExists(t, filepath.Join(dir, "entries.json"))
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenSQLite(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(types.KeyProfiles, []byte(`[{"id":"x"}]`)))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(dir)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(types.KeyProfiles)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"x"}]`, string(got))
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemory()
	buf := []byte(`[1]`)
	require.NoError(t, s.Set(types.KeyEntries, buf))
	buf[1] = '2'

	got, err := s.Get(types.KeyEntries)
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))
}

func TestOpen(t *testing.T) {
	t.Run("rejects invalid config", func(t *testing.T) {
		_, err := Open(types.Config{Backend: "redis"})
		assert.ErrorIs(t, err, types.ErrBackendUnknown)
	})

	t.Run("file backend", func(t *testing.T) {
		s, err := Open(types.Config{Backend: types.BackendFile, DataDir: t.TempDir()})
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &File{}, s)
	})

	t.Run("sqlite backend", func(t *testing.T) {
		s, err := Open(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &SQL{}, s)
	})

	t.Run("memory backend", func(t *testing.T) {
		s, err := Open(types.Config{Backend: types.BackendMemory})
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &Memory{}, s)
	})
}
