package memorydb

import (
	"container/list"
	"sync"

	"github.com/celer-network/go-animaverse/db"
)

type Transaction struct {
	txLock    sync.Mutex
	db        *DB
	opList    *list.List
	isDiscard bool
	isCommit  bool
}

type txOp struct {
	isSet bool
	key   []byte
	value []byte
}

// Get looks up the latest pending op for the key before falling back to the
// committed state.
func (transaction *Transaction) Get(namespace []byte, key []byte) ([]byte, bool, error) {
	transaction.txLock.Lock()
	defer transaction.txLock.Unlock()

	fullKey := string(db.PrependNamespace(namespace, key))
	for e := transaction.opList.Back(); e != nil; e = e.Prev() {
		op := e.Value.(*txOp)
		if string(op.key) != fullKey {
			continue
		}
		if !op.isSet {
			return nil, false, nil
		}
		return copyBytes(op.value), true, nil
	}
	return transaction.db.Get(nil, []byte(fullKey))
}

func (transaction *Transaction) Set(namespace []byte, key []byte, value []byte) error {
	transaction.txLock.Lock()
	defer transaction.txLock.Unlock()

	key = db.PrependNamespace(namespace, key)
	transaction.opList.PushBack(&txOp{true, key, copyBytes(value)})
	return nil
}

func (transaction *Transaction) Delete(namespace []byte, key []byte) error {
	transaction.txLock.Lock()
	defer transaction.txLock.Unlock()

	key = db.PrependNamespace(namespace, key)
	transaction.opList.PushBack(&txOp{false, key, nil})
	return nil
}

func (transaction *Transaction) Commit() error {
	transaction.txLock.Lock()
	defer transaction.txLock.Unlock()

	if transaction.isDiscard {
		return db.ErrCommitAfterDiscard
	} else if transaction.isCommit {
		return db.ErrDoubleCommit
	}

	transaction.db.apply(transaction.opList)
	transaction.isCommit = true
	return nil
}

// Discard drops pending ops. Discarding a committed transaction is a no-op.
func (transaction *Transaction) Discard() {
	transaction.txLock.Lock()
	defer transaction.txLock.Unlock()

	if transaction.isCommit {
		return
	}
	transaction.isDiscard = true
	transaction.opList.Init()
}
