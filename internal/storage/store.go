// Package storage provides the key-value persistence adapter the trackers
// write through after every mutation. Values are opaque JSON blobs.
package storage

// Well-known persistence keys.
const (
	KeyTransactions = "transactions"
	KeyBudgets      = "budgets"
)

// Store is a synchronous string-keyed, string-valued store. Implementations
// are not required to be safe for concurrent use; the trackers assume a
// single caller.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set writes the value for key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}
