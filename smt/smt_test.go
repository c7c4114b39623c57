package smt

import (
	"math/big"
	"testing"

	"github.com/celer-network/go-animaverse/db/memorydb"
	"github.com/minio/sha256-simd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

var namespaceTestTrie = []byte("tt")

func TestSMTNumericalKey(t *testing.T) {
	db := memorydb.NewDB()
	smt, err := NewSparseMerkleTree(db, namespaceTestTrie, sha3.NewLegacyKeccak256(), nil, 4, false)
	require.NoError(t, err)

	value, err := smt.Get(big.NewInt(3).Bytes())
	require.NoError(t, err)
	assert.Nil(t, value)

	h := sha3.NewLegacyKeccak256()
	zero := make([]byte, 32)
	empty := zero
	for i := 0; i < 4; i++ {
		empty = digest(h, empty, empty)
	}
	assert.Equal(t, empty, smt.Root())
	assert.Equal(t, empty, smt.EmptyRoot())

	newRoot, err := smt.Update(big.NewInt(0).Bytes(), []byte("asdf"))
	require.NoError(t, err)

	// key 0 is the leftmost leaf, every sibling is an empty subtree
	expected := digest(h, []byte("asdf"))
	sibling := zero
	for i := 0; i < 4; i++ {
		expected = digest(h, expected, sibling)
		sibling = digest(h, sibling, sibling)
	}
	assert.Equal(t, expected, newRoot)

	value, err = smt.Get(big.NewInt(0).Bytes())
	require.NoError(t, err)
	assert.Equal(t, []byte("asdf"), value)

	_, err = smt.Update(big.NewInt(16).Bytes(), []byte("asdf"))
	assert.Equal(t, ErrKeyTooLong, err)
}

func TestSparseMerkleTree(t *testing.T) {
	db := memorydb.NewDB()
	smt, err := NewSparseMerkleTree(db, namespaceTestTrie, sha256.New(), nil, 256, true)
	require.NoError(t, err)

	value, err := smt.Get([]byte("testKey"))
	require.NoError(t, err)
	assert.Nil(t, value)

	_, err = smt.Update([]byte("testKey"), []byte("testValue"))
	require.NoError(t, err)
	value, err = smt.Get([]byte("testKey"))
	require.NoError(t, err)
	assert.Equal(t, []byte("testValue"), value)

	_, err = smt.Update([]byte("testKey"), []byte("testValue2"))
	require.NoError(t, err)
	value, err = smt.Get([]byte("testKey"))
	require.NoError(t, err)
	assert.Equal(t, []byte("testValue2"), value)

	_, err = smt.Update([]byte("testKey2"), []byte("testValue"))
	require.NoError(t, err)
	value, err = smt.Get([]byte("testKey2"))
	require.NoError(t, err)
	assert.Equal(t, []byte("testValue"), value)
	value, err = smt.Get([]byte("testKey"))
	require.NoError(t, err)
	assert.Equal(t, []byte("testValue2"), value)

	// restore from an existing root
	smt2, err := NewSparseMerkleTree(db, namespaceTestTrie, sha256.New(), smt.Root(), 256, true)
	require.NoError(t, err)
	value, err = smt2.Get([]byte("testKey"))
	require.NoError(t, err)
	assert.Equal(t, []byte("testValue2"), value)

	// old roots stay readable
	h, err := NewHasher(HasherSHA256)
	require.NoError(t, err)
	smt3, err := NewSparseMerkleTree(db, namespaceTestTrie, h, nil, 256, true)
	require.NoError(t, err)
	value, err = smt3.Get([]byte("testKey"))
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestClearRestoresRoot(t *testing.T) {
	db := memorydb.NewDB()
	smt, err := NewSparseMerkleTree(db, namespaceTestTrie, sha3.NewLegacyKeccak256(), nil, 64, false)
	require.NoError(t, err)

	root, err := smt.Update(big.NewInt(7).Bytes(), []byte("a"))
	require.NoError(t, err)
	_, err = smt.Update(big.NewInt(9).Bytes(), []byte("b"))
	require.NoError(t, err)
	_, err = smt.Update(big.NewInt(9).Bytes(), nil)
	require.NoError(t, err)
	assert.Equal(t, root, smt.Root())

	_, err = smt.Update(big.NewInt(7).Bytes(), nil)
	require.NoError(t, err)
	assert.Equal(t, smt.EmptyRoot(), smt.Root())
}

func TestUpdateThroughTransaction(t *testing.T) {
	db := memorydb.NewDB()
	tx := db.NewTx()
	smt, err := NewSparseMerkleTree(tx, namespaceTestTrie, sha3.NewLegacyKeccak256(), nil, 64, false)
	require.NoError(t, err)
	root, err := smt.Update(big.NewInt(42).Bytes(), []byte("owner"))
	require.NoError(t, err)
	tx.Discard()

	restored, err := NewSparseMerkleTree(db, namespaceTestTrie, sha3.NewLegacyKeccak256(), root, 64, false)
	require.NoError(t, err)
	_, err = restored.Get(big.NewInt(42).Bytes())
	assert.Equal(t, ErrCorruptDB, err)

	tx = db.NewTx()
	smt, err = NewSparseMerkleTree(tx, namespaceTestTrie, sha3.NewLegacyKeccak256(), nil, 64, false)
	require.NoError(t, err)
	root, err = smt.Update(big.NewInt(42).Bytes(), []byte("owner"))
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	restored, err = NewSparseMerkleTree(db, namespaceTestTrie, sha3.NewLegacyKeccak256(), root, 64, false)
	require.NoError(t, err)
	value, err := restored.Get(big.NewInt(42).Bytes())
	require.NoError(t, err)
	assert.Equal(t, []byte("owner"), value)
}

func TestNewHasher(t *testing.T) {
	for _, name := range []string{"", HasherKeccak256, HasherSHA256} {
		h, err := NewHasher(name)
		require.NoError(t, err, name)
		assert.Equal(t, 32, h.Size())
	}
	_, err := NewHasher("md5")
	assert.Error(t, err)
}

func TestBadDepth(t *testing.T) {
	db := memorydb.NewDB()
	_, err := NewSparseMerkleTree(db, namespaceTestTrie, sha3.NewLegacyKeccak256(), nil, 0, false)
	assert.Equal(t, ErrBadDepth, err)
	_, err = NewSparseMerkleTree(db, namespaceTestTrie, sha3.NewLegacyKeccak256(), nil, 257, false)
	assert.Equal(t, ErrBadDepth, err)
}
