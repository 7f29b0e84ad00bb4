// Package store owns the active and deleted message collections. Every
// mutation is written back to the backend, both collections, before the
// call returns.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dhcgn/msg-ledger/model"
	"github.com/dhcgn/msg-ledger/state"
)

// Store holds the in-memory collections. Lookups by id are linear scans over
// active; the collections are a personal message log and stay small.
type Store struct {
	backend state.Backend
	logger  *slog.Logger

	mu            sync.Mutex
	active        []model.Message
	deleted       []model.Message
	lastRecipient string
}

func New(backend state.Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: backend,
		logger:  logger.With("component", "store"),
		active:  []model.Message{},
		deleted: []model.Message{},
	}
}

// Initialize loads both collections. A collection that fails to load starts
// empty; the failures are logged and returned joined, and the store stays usable.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error

	active, err := s.backend.Load(state.Active)
	if err != nil {
		s.logger.Error("load active messages", "err", err)
		errs = append(errs, err)
		active = []model.Message{}
	}

	deleted, err := s.backend.Load(state.Deleted)
	if err != nil {
		s.logger.Error("load deleted messages", "err", err)
		errs = append(errs, err)
		deleted = []model.Message{}
	}

	s.active = active
	s.deleted = deleted
	s.logger.Debug("collections loaded", "active", len(active), "deleted", len(deleted))

	return errors.Join(errs...)
}

// Send creates a message and appends it to active. On a persistence failure
// the message is still returned and stays in memory; storage catches up on the
// next successful save.
func (s *Store) Send(sender, recipient, body string) (model.Message, error) {
	msg, err := model.NewMessage(sender, recipient, body)
	if err != nil {
		return model.Message{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = append(s.active, msg)
	s.lastRecipient = recipient
	s.logger.Debug("message sent", "id", msg.ID, "recipient", recipient)

	if err := s.persist(); err != nil {
		return msg, fmt.Errorf("send %s: %w", msg.ID, err)
	}
	return msg, nil
}

// DeleteByID moves the first active message with the given id to deleted.
// A miss returns false and writes nothing.
func (s *Store) DeleteByID(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	msg := s.active[idx]
	s.active = slices.Delete(s.active, idx, idx+1)
	s.deleted = append(s.deleted, msg)
	s.logger.Debug("message deleted", "id", id)

	if err := s.persist(); err != nil {
		return true, fmt.Errorf("delete %s: %w", id, err)
	}
	return true, nil
}

// ClearAll moves every active message to deleted, keeping their order, and
// returns how many were moved.
func (s *Store) ClearAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.active)
	s.deleted = append(s.deleted, s.active...)
	s.active = []model.Message{}
	s.logger.Debug("active messages cleared", "count", count)

	if err := s.persist(); err != nil {
		return count, fmt.Errorf("clear: %w", err)
	}
	return count, nil
}

// ListFor returns the active messages sent or received by identity.
func (s *Store) ListFor(identity string) []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Message{}
	for _, msg := range s.active {
		if msg.Sender == identity || msg.Recipient == identity {
			out = append(out, msg)
		}
	}
	return out
}

func (s *Store) ListDeleted() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.deleted)
}

// Active returns a copy of the active collection.
func (s *Store) Active() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.active)
}

// LastRecipient is the recipient of the latest Send in this process, or "".
func (s *Store) LastRecipient() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRecipient
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.active, func(m model.Message) bool {
		return m.ID == id
	})
}

// persist writes active then deleted. Both writes are attempted; there is no
// rollback, so a failure in between leaves the two resources out of step on disk.
func (s *Store) persist() error {
	var errs []error
	if err := s.backend.Save(state.Active, s.active); err != nil {
		s.logger.Error("save active messages", "err", err)
		errs = append(errs, err)
	}
	if err := s.backend.Save(state.Deleted, s.deleted); err != nil {
		s.logger.Error("save deleted messages", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
