package db

// DB is an general interface to access at storage data
type DB interface {
	Type() string
	Set(namespace []byte, key []byte, value []byte) error
	Delete(namespace []byte, key []byte) error
	Get(namespace []byte, key []byte) ([]byte, bool, error)
	Exist(namespace []byte, key []byte) (bool, error)
	Iterator(start []byte, end []byte) Iterator
	NewTx() Transaction
	Close() error
}

// Transaction groups reads and writes that become visible together on Commit.
// Reads through a transaction observe its own pending writes.
type Transaction interface {
	Get(namespace []byte, key []byte) ([]byte, bool, error)
	Set(namespace []byte, key []byte, value []byte) error
	Delete(namespace []byte, key []byte) error
	Iterator(start []byte, end []byte) Iterator
	Commit() error
	Discard()
}

// Iterator is used to navigate specific key ranges
type Iterator interface {
	Next() error
	Valid() bool
	Key() ([]byte, error)
	Value() ([]byte, error)
	Close()
}
