package data

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// Store is the durable per-deployment key-value medium. Keys form a flat
// string namespace; values are opaque JSON. Get reports absence with a bool
// rather than an error, so callers cannot tell "never written" from
// "unreadable" — both look empty one level up, which is exactly the contract
// the list helpers in this package expose.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
}

// MemoryStore keeps values in a map. Used by tests.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string][]byte{}}
}

func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// FileStore persists the whole namespace as one JSON file, rewritten on every
// Set/Delete with a tmp-file + rename so a crash mid-write never corrupts the
// previous snapshot. The mutex serializes writers within this process only;
// two processes sharing the file race exactly like two browser tabs sharing
// local storage: last writer wins.
type FileStore struct {
	path   string
	mu     sync.Mutex
	values map[string]json.RawMessage
}

// NewFileStore loads the snapshot at path. A missing file starts empty; so
// does an unreadable snapshot, mirroring how an unreadable collection decodes
// to an empty list instead of an error.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, values: map[string]json.RawMessage{}}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.values); err != nil {
		s.values = map[string]json.RawMessage{}
	}
	return s, nil
}

func (s *FileStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

func (s *FileStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append(json.RawMessage(nil), value...)
	return s.persist()
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return s.persist()
}

func (s *FileStore) persist() error {
	raw, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
