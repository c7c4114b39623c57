package memorydb

import (
	"bytes"
	"sort"

	"github.com/celer-network/go-animaverse/db"
)

type Iterator struct {
	keys   []string
	cursor int
	db     *DB
}

func isKeyInRange(key []byte, start []byte, end []byte, reverse bool) bool {
	if reverse {
		if start != nil && bytes.Compare(start, key) < 0 {
			return false
		}
		if end != nil && bytes.Compare(key, end) <= 0 {
			return false
		}
		return true
	}

	if bytes.Compare(key, start) < 0 {
		return false
	}
	if end != nil && bytes.Compare(end, key) <= 0 {
		return false
	}
	return true
}

// Iterator snapshots the keys in range. If start sorts after end the keys are
// visited in descending order.
func (mdb *DB) Iterator(start []byte, end []byte) db.Iterator {
	mdb.lock.Lock()
	defer mdb.lock.Unlock()

	reverse := end != nil && bytes.Compare(start, end) == 1

	var keys sort.StringSlice
	for key := range mdb.db {
		if isKeyInRange([]byte(key), start, end, reverse) {
			keys = append(keys, key)
		}
	}
	if reverse {
		sort.Sort(sort.Reverse(keys))
	} else {
		sort.Strings(keys)
	}

	return &Iterator{
		keys: keys,
		db:   mdb,
	}
}

func (iter *Iterator) Next() error {
	if !iter.Valid() {
		return db.ErrInvalidIterator
	}
	iter.cursor++
	return nil
}

func (iter *Iterator) Valid() bool {
	return 0 <= iter.cursor && iter.cursor < len(iter.keys)
}

func (iter *Iterator) Key() ([]byte, error) {
	if !iter.Valid() {
		return nil, db.ErrInvalidIterator
	}
	return []byte(iter.keys[iter.cursor]), nil
}

func (iter *Iterator) Value() ([]byte, error) {
	if !iter.Valid() {
		return nil, db.ErrInvalidIterator
	}

	value, exists, err := iter.db.Get(nil, []byte(iter.keys[iter.cursor]))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return value, nil
}

func (iter *Iterator) Close() {}

// txIterator walks a snapshot of committed keys merged with a transaction's
// pending ops.
type txIterator struct {
	Iterator
	values map[string][]byte
}

// Iterator visits the keys in range as the transaction sees them, pending
// sets and deletes included.
func (transaction *Transaction) Iterator(start []byte, end []byte) db.Iterator {
	transaction.txLock.Lock()
	defer transaction.txLock.Unlock()

	reverse := end != nil && bytes.Compare(start, end) == 1

	values := make(map[string][]byte)
	transaction.db.lock.Lock()
	for key, value := range transaction.db.db {
		if isKeyInRange([]byte(key), start, end, reverse) {
			values[key] = copyBytes(value)
		}
	}
	transaction.db.lock.Unlock()

	for e := transaction.opList.Front(); e != nil; e = e.Next() {
		op := e.Value.(*txOp)
		if !isKeyInRange(op.key, start, end, reverse) {
			continue
		}
		if op.isSet {
			values[string(op.key)] = copyBytes(op.value)
		} else {
			delete(values, string(op.key))
		}
	}

	keys := make(sort.StringSlice, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	if reverse {
		sort.Sort(sort.Reverse(keys))
	} else {
		sort.Strings(keys)
	}

	return &txIterator{
		Iterator: Iterator{keys: keys},
		values:   values,
	}
}

func (iter *txIterator) Value() ([]byte, error) {
	if !iter.Valid() {
		return nil, db.ErrInvalidIterator
	}
	return copyBytes(iter.values[iter.keys[iter.cursor]]), nil
}
