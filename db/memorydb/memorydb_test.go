package memorydb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celer-network/go-animaverse/db"
)

var testNamespace = []byte("t")

func TestTransactionReadsOwnWrites(t *testing.T) {
	mdb := NewDB()
	require.NoError(t, mdb.Set(testNamespace, []byte("a"), []byte("1")))

	tx := mdb.NewTx()
	require.NoError(t, tx.Set(testNamespace, []byte("a"), []byte("2")))
	require.NoError(t, tx.Set(testNamespace, []byte("b"), []byte("3")))
	require.NoError(t, tx.Delete(testNamespace, []byte("b")))

	value, exists, err := tx.Get(testNamespace, []byte("a"))
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []byte("2"), value)
	_, exists, err = tx.Get(testNamespace, []byte("b"))
	require.NoError(t, err)
	assert.False(t, exists)

	value, _, err = mdb.Get(testNamespace, []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)

	require.NoError(t, tx.Commit())
	value, _, err = mdb.Get(testNamespace, []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), value)
	assert.Equal(t, db.ErrDoubleCommit, tx.Commit())
}

func TestDiscard(t *testing.T) {
	mdb := NewDB()
	tx := mdb.NewTx()
	require.NoError(t, tx.Set(testNamespace, []byte("a"), []byte("1")))
	tx.Discard()
	assert.Equal(t, db.ErrCommitAfterDiscard, tx.Commit())

	exists, err := mdb.Exist(testNamespace, []byte("a"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestValuesAreCopied(t *testing.T) {
	mdb := NewDB()
	value := []byte("abc")
	require.NoError(t, mdb.Set(testNamespace, []byte("k"), value))
	value[0] = 'x'
	stored, _, err := mdb.Get(testNamespace, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), stored)
}

func TestIterator(t *testing.T) {
	mdb := NewDB()
	for _, k := range []string{"c", "a", "b"} {
		require.NoError(t, mdb.Set(testNamespace, []byte(k), []byte(k)))
	}
	require.NoError(t, mdb.Set([]byte("u"), []byte("z"), []byte("z")))

	start, end := db.NamespaceRange(testNamespace)
	iter := mdb.Iterator(start, end)
	defer iter.Close()
	var keys []string
	for ; iter.Valid(); iter.Next() {
		key, err := iter.Key()
		require.NoError(t, err)
		keys = append(keys, string(db.StripNamespace(testNamespace, key)))
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Equal(t, db.ErrInvalidIterator, iter.Next())

	reverse := mdb.Iterator(end, start)
	key, err := reverse.Key()
	require.NoError(t, err)
	assert.Equal(t, "c", string(db.StripNamespace(testNamespace, key)))
}

func TestTransactionIterator(t *testing.T) {
	mdb := NewDB()
	for _, k := range []string{"a", "b", "d"} {
		require.NoError(t, mdb.Set(testNamespace, []byte(k), []byte(k)))
	}

	tx := mdb.NewTx()
	require.NoError(t, tx.Set(testNamespace, []byte("c"), []byte("c")))
	require.NoError(t, tx.Set(testNamespace, []byte("a"), []byte("A")))
	require.NoError(t, tx.Delete(testNamespace, []byte("b")))
	require.NoError(t, tx.Set([]byte("u"), []byte("z"), []byte("z")))

	start, end := db.NamespaceRange(testNamespace)
	iter := tx.Iterator(start, end)
	defer iter.Close()
	var values []string
	for ; iter.Valid(); iter.Next() {
		value, err := iter.Value()
		require.NoError(t, err)
		values = append(values, string(value))
	}
	assert.Equal(t, []string{"A", "c", "d"}, values)

	// the snapshot keeps the committed view outside the transaction
	committed := mdb.Iterator(start, end)
	defer committed.Close()
	value, err := committed.Value()
	require.NoError(t, err)
	assert.Equal(t, "a", string(value))

	tx.Discard()
	discarded := mdb.NewTx().Iterator(db.PrependNamespace(testNamespace, []byte("c")), end)
	key, err := discarded.Key()
	require.NoError(t, err)
	assert.Equal(t, "d", string(db.StripNamespace(testNamespace, key)))
}
