package storage

// MemoryStore is a map-backed Store for tests and ephemeral runs.
type MemoryStore struct {
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value for key.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

// Set writes the value for key.
func (s *MemoryStore) Set(key, value string) error {
	s.values[key] = value
	return nil
}

// Delete removes key.
func (s *MemoryStore) Delete(key string) error {
	delete(s.values, key)
	return nil
}
