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

func TestProofs(t *testing.T) {
	db := memorydb.NewDB()
	smt, err := NewSparseMerkleTree(db, namespaceTestTrie, sha256.New(), nil, 256, true)
	require.NoError(t, err)
	verify := func(proof [][]byte, key, value []byte) bool {
		return VerifyProof(proof, smt.Root(), key, value, sha256.New(), 256, true)
	}

	// exclusion proof on the empty tree
	proof, err := smt.Prove([]byte("testKey"))
	require.NoError(t, err)
	assert.True(t, verify(proof, []byte("testKey"), nil))
	assert.False(t, verify(proof, []byte("testKey"), []byte("badValue")))

	_, err = smt.Update([]byte("testKey"), []byte("testValue"))
	require.NoError(t, err)

	proof, err = smt.Prove([]byte("testKey"))
	require.NoError(t, err)
	assert.True(t, verify(proof, []byte("testKey"), []byte("testValue")))
	assert.False(t, verify(proof, []byte("testKey"), []byte("badValue")))

	_, err = smt.Update([]byte("testKey2"), []byte("testValue"))
	require.NoError(t, err)

	proof, err = smt.Prove([]byte("testKey"))
	require.NoError(t, err)
	assert.True(t, verify(proof, []byte("testKey"), []byte("testValue")))
	assert.False(t, verify(proof, []byte("testKey"), []byte("badValue")))
	assert.False(t, verify(proof[:len(proof)-1], []byte("testKey"), []byte("testValue")))

	badProof := make([][]byte, len(proof))
	copy(badProof, proof)
	badProof[0] = make([]byte, 32)
	badProof[0][0] = 1
	assert.False(t, verify(badProof, []byte("testKey"), []byte("testValue")))

	compactProof, err := smt.CompactProof(proof)
	require.NoError(t, err)
	assert.True(t, len(compactProof) < len(proof))
	decompactedProof, err := DecompactProof(compactProof, sha256.New(), 256)
	require.NoError(t, err)
	assert.Equal(t, proof, decompactedProof)
	assert.True(t, VerifyCompactProof(compactProof, smt.Root(), []byte("testKey"), []byte("testValue"), sha256.New(), 256, true))
	assert.False(t, VerifyCompactProof(compactProof, smt.Root(), []byte("testKey"), []byte("badValue"), sha256.New(), 256, true))

	_, err = DecompactProof(compactProof[1:], sha256.New(), 256)
	assert.Equal(t, ErrBadProofSize, err)
}

func TestNumericalProofs(t *testing.T) {
	db := memorydb.NewDB()
	h := sha3.NewLegacyKeccak256()
	smt, err := NewSparseMerkleTree(db, namespaceTestTrie, h, nil, 64, false)
	require.NoError(t, err)

	for i := int64(1); i <= 20; i++ {
		_, err := smt.Update(big.NewInt(i).Bytes(), big.NewInt(i*100).Bytes())
		require.NoError(t, err)
	}
	root := smt.Root()
	for i := int64(1); i <= 20; i++ {
		key := big.NewInt(i).Bytes()
		proof, err := smt.ProveCompact(key)
		require.NoError(t, err)
		assert.True(t, VerifyCompactProof(proof, root, key, big.NewInt(i*100).Bytes(), sha3.NewLegacyKeccak256(), 64, false), i)
		assert.False(t, VerifyCompactProof(proof, root, key, big.NewInt(i*100+1).Bytes(), sha3.NewLegacyKeccak256(), 64, false), i)
	}

	proof, err := smt.Prove(big.NewInt(21).Bytes())
	require.NoError(t, err)
	assert.True(t, VerifyProof(proof, root, big.NewInt(21).Bytes(), nil, sha3.NewLegacyKeccak256(), 64, false))
}
