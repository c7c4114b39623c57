package memorydb

import (
	"container/list"
	"sync"

	animadb "github.com/celer-network/go-animaverse/db"
)

func NewDB() *DB {
	return &DB{
		db: make(map[string][]byte),
	}
}

// Enforce database and transaction implements interfaces
var _ animadb.DB = (*DB)(nil)

type DB struct {
	lock sync.Mutex
	db   map[string][]byte
}

func (db *DB) Type() string {
	return "memorydb"
}

func (db *DB) Set(namespace []byte, key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	key = animadb.PrependNamespace(namespace, key)
	db.db[string(key)] = copyBytes(value)
	return nil
}

func (db *DB) Delete(namespace []byte, key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	key = animadb.PrependNamespace(namespace, key)
	delete(db.db, string(key))
	return nil
}

func (db *DB) Get(namespace []byte, key []byte) ([]byte, bool, error) {
	db.lock.Lock()
	defer db.lock.Unlock()

	return db.get(animadb.PrependNamespace(namespace, key))
}

func (db *DB) get(fullKey []byte) ([]byte, bool, error) {
	value, exists := db.db[string(fullKey)]
	if !exists {
		return nil, false, nil
	}
	return copyBytes(value), true, nil
}

func (db *DB) Exist(namespace []byte, key []byte) (bool, error) {
	db.lock.Lock()
	defer db.lock.Unlock()

	key = animadb.PrependNamespace(namespace, key)
	_, ok := db.db[string(key)]
	return ok, nil
}

func (db *DB) Close() error {
	return nil
}

func (db *DB) NewTx() animadb.Transaction {
	return &Transaction{
		db:     db,
		opList: list.New(),
	}
}

// apply writes ops in order while holding the db lock.
func (db *DB) apply(opList *list.List) {
	db.lock.Lock()
	defer db.lock.Unlock()

	for e := opList.Front(); e != nil; e = e.Next() {
		op := e.Value.(*txOp)
		if op.isSet {
			db.db[string(op.key)] = op.value
		} else {
			delete(db.db, string(op.key))
		}
	}
}

func copyBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
