// Package merkle verifies inclusion proofs against published allowlist and
// game-result roots, and builds the matching trees off-ledger.
//
// Trees are keccak256 binary trees whose internal nodes hash the sorted pair of
// children, so a proof is just the list of siblings from leaf to root and
// carries no left/right flags. This matches merkletreejs with sortPairs and
// OpenZeppelin's MerkleProof.
package merkle

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Verify reports whether leaf is committed to by root via proof. An empty
// proof is valid only when leaf equals root.
func Verify(root common.Hash, leaf common.Hash, proof []common.Hash) bool {
	return ComputeRoot(leaf, proof) == root
}

// ComputeRoot folds proof into leaf.
func ComputeRoot(leaf common.Hash, proof []common.Hash) common.Hash {
	computed := leaf
	for _, sibling := range proof {
		computed = hashPair(computed, sibling)
	}
	return computed
}

func hashPair(a, b common.Hash) common.Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return crypto.Keccak256Hash(a[:], b[:])
}
