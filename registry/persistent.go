package registry

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// PersistentRegistry wraps a Registry with a badger-backed key/value store
// persisting user-defined aliases across process restarts. This is
// additive to Registry, which stays an in-process map per spec §9's design
// note against global state — PersistentRegistry is an opt-in host
// convenience, not something the core pattern-query path ever touches.
// Grounded on the teacher's storage.BadgerStore (datalog/storage/badger_store.go):
// same "open with tuned options, wrap every access in a transaction,
// wrap errors with fmt.Errorf %w" shape.
type PersistentRegistry struct {
	*Registry
	db *badger.DB
}

var aliasBucket = []byte("alias:")

// NewPersistentRegistry opens (or creates) a badger database at path and
// loads any previously persisted aliases into a fresh in-memory Registry.
func NewPersistentRegistry(path string) (*PersistentRegistry, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: failed to open badger store: %w", err)
	}

	pr := &PersistentRegistry{Registry: New(), db: db}
	if err := pr.loadAliases(); err != nil {
		db.Close()
		return nil, err
	}
	return pr, nil
}

// Close releases the underlying badger database.
func (pr *PersistentRegistry) Close() error {
	return pr.db.Close()
}

// PersistAlias records from->to both in the in-memory Registry and in the
// badger store, so it survives a restart.
func (pr *PersistentRegistry) PersistAlias(from, to string) error {
	pr.Registry.Alias(from, to)
	return pr.db.Update(func(txn *badger.Txn) error {
		key := append(append([]byte{}, aliasBucket...), from...)
		if err := txn.Set(key, []byte(to)); err != nil {
			return fmt.Errorf("registry: failed to persist alias %q: %w", from, err)
		}
		return nil
	})
}

func (pr *PersistentRegistry) loadAliases() error {
	return pr.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = aliasBucket
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(aliasBucket); it.ValidForPrefix(aliasBucket); it.Next() {
			item := it.Item()
			from := string(item.KeyCopy(nil)[len(aliasBucket):])
			err := item.Value(func(val []byte) error {
				pr.Registry.Alias(from, string(val))
				return nil
			})
			if err != nil {
				return fmt.Errorf("registry: failed to read alias %q: %w", from, err)
			}
		}
		return nil
	})
}
