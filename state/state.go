//go:generate go run go.uber.org/mock/mockgen -source=state.go -destination=mocks/mock_backend.go -package=mocks
package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dhcgn/msg-ledger/model"
)

// Collection names. Each names an independent storage resource.
const (
	Active  = "messages"
	Deleted = "deleted_messages"
)

var (
	ErrCorrupt       = errors.New("stored collection is corrupt")
	ErrEmptyResource = errors.New("resource name is empty")
)

// Backend loads and saves whole collections. Save always overwrites the
// previous content of the named resource; a resource that was never saved
// loads as an empty collection.
type Backend interface {
	Load(name string) ([]model.Message, error)
	Save(name string, messages []model.Message) error
	Close() error
}

// PersistenceError reports a failed load or save of one resource.
type PersistenceError struct {
	Op       string
	Resource string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func loadError(name string, err error) error {
	return &PersistenceError{Op: "load", Resource: name, Err: err}
}

func saveError(name string, err error) error {
	return &PersistenceError{Op: "save", Resource: name, Err: err}
}

// decode parses a stored document, tagging shape failures with ErrCorrupt.
func decode(name string, data []byte) ([]model.Message, error) {
	messages, err := model.ParseMessages(data)
	if err != nil {
		return nil, loadError(name, fmt.Errorf("%w: %w", ErrCorrupt, err))
	}
	return messages, nil
}

// MemoryBackend keeps encoded collections in memory. Documents go through the
// same encode/parse path as the on-disk backends.
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

func (m *MemoryBackend) Load(name string) ([]model.Message, error) {
	if name == "" {
		return nil, loadError(name, ErrEmptyResource)
	}

	m.mu.RLock()
	data, ok := m.docs[name]
	m.mu.RUnlock()
	if !ok {
		return []model.Message{}, nil
	}
	return decode(name, data)
}

func (m *MemoryBackend) Save(name string, messages []model.Message) error {
	if name == "" {
		return saveError(name, ErrEmptyResource)
	}

	data, err := model.EncodeMessages(messages)
	if err != nil {
		return saveError(name, err)
	}

	m.mu.Lock()
	m.docs[name] = data
	m.mu.Unlock()
	return nil
}

// Put stores a raw document, bypassing encoding.
func (m *MemoryBackend) Put(name string, data []byte) {
	m.mu.Lock()
	m.docs[name] = append([]byte(nil), data...)
	m.mu.Unlock()
}

func (m *MemoryBackend) Close() error {
	return nil
}
