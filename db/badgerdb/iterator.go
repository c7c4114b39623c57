package badgerdb

import (
	"bytes"

	"github.com/celer-network/go-animaverse/db"
	"github.com/dgraph-io/badger/v2"
)

type Iterator struct {
	end     []byte
	reverse bool
	txn     *badger.Txn
	ownTxn  bool
	iter    *badger.Iterator
}

// Iterator walks [start, end). If start sorts after end the walk is reversed.
func (bdb *DB) Iterator(start, end []byte) db.Iterator {
	return newIterator(bdb.db.NewTransaction(false), true, start, end)
}

// Iterator walks [start, end) inside the transaction, pending writes included.
// Badger allows one open iterator per read-write transaction.
func (transaction *Transaction) Iterator(start, end []byte) db.Iterator {
	return newIterator(transaction.tx, false, start, end)
}

func newIterator(txn *badger.Txn, ownTxn bool, start, end []byte) *Iterator {
	reverse := end != nil && bytes.Compare(start, end) == 1

	opt := badger.DefaultIteratorOptions
	opt.PrefetchValues = false
	opt.Reverse = reverse

	badgerIter := txn.NewIterator(opt)
	badgerIter.Seek(start)

	return &Iterator{
		end:     end,
		reverse: reverse,
		txn:     txn,
		ownTxn:  ownTxn,
		iter:    badgerIter,
	}
}

func (iter *Iterator) Next() error {
	if !iter.Valid() {
		return db.ErrInvalidIterator
	}
	iter.iter.Next()
	return nil
}

func (iter *Iterator) Valid() bool {
	if !iter.iter.Valid() {
		return false
	}

	if iter.end != nil {
		key := iter.iter.Item().Key()
		if !iter.reverse {
			if bytes.Compare(iter.end, key) <= 0 {
				return false
			}
		} else {
			if bytes.Compare(key, iter.end) <= 0 {
				return false
			}
		}
	}

	return true
}

func (iter *Iterator) Key() ([]byte, error) {
	if !iter.Valid() {
		return nil, db.ErrInvalidIterator
	}
	return iter.iter.Item().KeyCopy(nil), nil
}

func (iter *Iterator) Value() ([]byte, error) {
	if !iter.Valid() {
		return nil, db.ErrInvalidIterator
	}
	return iter.iter.Item().ValueCopy(nil)
}

// Close releases the iterator, and the read transaction if it opened one.
func (iter *Iterator) Close() {
	iter.iter.Close()
	if iter.ownTxn {
		iter.txn.Discard()
	}
}
