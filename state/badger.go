package state

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/dhcgn/msg-ledger/model"
)

const collectionKeyPrefix = "collection:"

// BadgerBackend keeps every collection under a single key "collection:{name}",
// so a save replaces the whole collection in one transaction.
type BadgerBackend struct {
	db *badger.DB
}

// OpenBadgerBackend opens (or creates) a Badger database in dir.
func OpenBadgerBackend(dir string) (*BadgerBackend, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return NewBadgerBackend(db), nil
}

func NewBadgerBackend(db *badger.DB) *BadgerBackend {
	return &BadgerBackend{db: db}
}

func collectionKey(name string) []byte {
	return []byte(collectionKeyPrefix + name)
}

func (b *BadgerBackend) Load(name string) ([]model.Message, error) {
	if name == "" {
		return nil, loadError(name, ErrEmptyResource)
	}

	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(collectionKey(name))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []model.Message{}, nil
	}
	if err != nil {
		return nil, loadError(name, err)
	}

	return decode(name, data)
}

func (b *BadgerBackend) Save(name string, messages []model.Message) error {
	if name == "" {
		return saveError(name, ErrEmptyResource)
	}

	data, err := model.EncodeMessages(messages)
	if err != nil {
		return saveError(name, fmt.Errorf("encode: %w", err))
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(collectionKey(name), data)
	})
	if err != nil {
		return saveError(name, err)
	}
	return nil
}

func (b *BadgerBackend) Close() error {
	return b.db.Close()
}
