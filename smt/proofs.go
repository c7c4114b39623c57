package smt

import (
	"bytes"
	"errors"
	"hash"
)

var ErrBadProofSize = errors.New("smt: bad proof size")

func (smt *SparseMerkleTree) CompactProof(proof [][]byte) ([][]byte, error) {
	return CompactProof(proof, smt.hasher, smt.depth)
}

// VerifyProof verifies a Merkle proof. A nil value proves the key is unset.
func VerifyProof(proof [][]byte, root []byte, key []byte, value []byte, hasher hash.Hash, depth int, hashKey bool) bool {
	if len(proof) != depth {
		return false
	}
	path, err := pathFor(hasher, key, depth, hashKey)
	if err != nil {
		return false
	}

	var current []byte
	if len(value) == 0 {
		current = make([]byte, hasher.Size())
	} else {
		current = digest(hasher, value)
	}

	for i, sibling := range proof {
		if len(sibling) != hasher.Size() {
			return false
		}
		level := depth - 1 - i
		if isRight(path, level, depth) {
			current = digest(hasher, sibling, current)
		} else {
			current = digest(hasher, current, sibling)
		}
	}

	return bytes.Equal(current, root)
}

// VerifyCompactProof verifies a compacted Merkle proof.
func VerifyCompactProof(proof [][]byte, root []byte, key []byte, value []byte, hasher hash.Hash, depth int, hashKey bool) bool {
	decompactedProof, err := DecompactProof(proof, hasher, depth)
	if err != nil {
		return false
	}
	return VerifyProof(decompactedProof, root, key, value, hasher, depth, hashKey)
}

// CompactProof drops siblings equal to the empty-subtree hash of their height
// and prepends a bitmap marking which ones were dropped.
func CompactProof(proof [][]byte, hasher hash.Hash, depth int) ([][]byte, error) {
	if len(proof) != depth {
		return nil, ErrBadProofSize
	}

	defaults := defaultNodes(hasher, depth)
	bits := emptyBytes(hasher.Size())
	var compactProof [][]byte
	for i := 0; i < depth; i++ {
		if bytes.Equal(proof[i], defaults[i]) {
			setBit(bits, i)
		} else {
			compactProof = append(compactProof, proof[i])
		}
	}
	return append([][]byte{bits}, compactProof...), nil
}

// DecompactProof decompacts a proof, so that it can be used for VerifyProof.
func DecompactProof(proof [][]byte, hasher hash.Hash, depth int) ([][]byte, error) {
	if len(proof) == 0 ||
		len(proof[0]) != hasher.Size() ||
		len(proof) != (depth-countSetBits(proof[0]))+1 {
		return nil, ErrBadProofSize
	}

	defaults := defaultNodes(hasher, depth)
	decompactedProof := make([][]byte, depth)
	bits := proof[0]
	compactProof := proof[1:]
	position := 0
	for i := 0; i < depth; i++ {
		if hasBit(bits, i) == 1 {
			decompactedProof[i] = defaults[i]
		} else {
			decompactedProof[i] = compactProof[position]
			position++
		}
	}
	return decompactedProof, nil
}

func reverseProof(proof [][]byte) [][]byte {
	for i := len(proof)/2 - 1; i >= 0; i-- {
		opp := len(proof) - 1 - i
		proof[i], proof[opp] = proof[opp], proof[i]
	}
	return proof
}
