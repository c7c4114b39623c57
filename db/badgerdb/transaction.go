package badgerdb

import (
	"time"

	animadb "github.com/celer-network/go-animaverse/db"
	"github.com/celer-network/go-animaverse/log"
	"github.com/dgraph-io/badger/v2"
)

type Transaction struct {
	db        *DB
	tx        *badger.Txn
	createT   time.Time
	setCount  uint
	delCount  uint
	keySize   uint64
	valueSize uint64
}

func (transaction *Transaction) Get(namespace []byte, key []byte) ([]byte, bool, error) {
	key = animadb.PrependNamespace(namespace, key)

	val, err := getValue(transaction.tx, key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

func (transaction *Transaction) Set(namespace []byte, key []byte, value []byte) error {
	key = animadb.PrependNamespace(namespace, key)
	value = animadb.ConvNilToBytes(value)

	// badger keeps the slices until commit
	k := make([]byte, len(key))
	copy(k, key)
	v := make([]byte, len(value))
	copy(v, value)

	if err := transaction.tx.Set(k, v); err != nil {
		return err
	}

	transaction.setCount++
	transaction.keySize += uint64(len(k))
	transaction.valueSize += uint64(len(v))
	return nil
}

func (transaction *Transaction) Delete(namespace []byte, key []byte) error {
	key = animadb.PrependNamespace(namespace, key)

	if err := transaction.tx.Delete(key); err != nil {
		return err
	}

	transaction.delCount++
	return nil
}

func (transaction *Transaction) Commit() error {
	writeStartT := time.Now()
	err := transaction.tx.Commit()
	writeEndT := time.Now()

	if writeEndT.Sub(writeStartT) > time.Millisecond*100 {
		// write warn log when write tx take too long time (100ms)
		logger.Warn().Str("name", transaction.db.name).Str("callstack1", log.SkipCaller(2)).Str("callstack2", log.SkipCaller(3)).
			Dur("prepareTime", writeStartT.Sub(transaction.createT)).
			Dur("takenTime", writeEndT.Sub(writeStartT)).
			Uint("delCount", transaction.delCount).Uint("setCount", transaction.setCount).
			Uint64("setKeySize", transaction.keySize).Uint64("setValueSize", transaction.valueSize).
			Msg("commit takes long time")
	}

	return err
}

func (transaction *Transaction) Discard() {
	transaction.tx.Discard()
}
