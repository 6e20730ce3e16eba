package types

// Keys under which the two collections are persisted.
const (
	KeyProfiles = "reptiles"
	KeyEntries  = "entries"
)

// Store is a synchronous key-value blob store. Values are opaque bytes; the
// repository writes whole JSON arrays under KeyProfiles and KeyEntries.
type Store interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if nothing was ever written for key.
	Get(key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(key string, value []byte) error

	// Close releases backend resources. Idempotent.
	Close() error
}
