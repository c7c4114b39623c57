package merkle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	ErrEmptyTree   = errors.New("merkle: tree has no leaves")
	ErrLeafMissing = errors.New("merkle: leaf not in tree")
	ErrBadHash     = errors.New("merkle: malformed hash")
)

// Tree keeps every layer so proofs can be read back. layers[0] holds the
// leaves in insertion order; the last layer holds the root.
type Tree struct {
	layers [][]common.Hash
	index  map[common.Hash]int
}

// NewTree builds a tree over leaves. A node without a sibling is carried up to
// the next layer unchanged.
func NewTree(leaves []common.Hash) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyTree
	}

	layer := make([]common.Hash, len(leaves))
	copy(layer, leaves)
	index := make(map[common.Hash]int, len(leaves))
	for i, leaf := range layer {
		if _, seen := index[leaf]; !seen {
			index[leaf] = i
		}
	}

	layers := [][]common.Hash{layer}
	for len(layer) > 1 {
		next := make([]common.Hash, 0, (len(layer)+1)/2)
		for i := 0; i < len(layer); i += 2 {
			if i+1 == len(layer) {
				next = append(next, layer[i])
				continue
			}
			next = append(next, hashPair(layer[i], layer[i+1]))
		}
		layers = append(layers, next)
		layer = next
	}

	return &Tree{layers: layers, index: index}, nil
}

func (t *Tree) Root() common.Hash {
	return t.layers[len(t.layers)-1][0]
}

func (t *Tree) Leaves() []common.Hash {
	out := make([]common.Hash, len(t.layers[0]))
	copy(out, t.layers[0])
	return out
}

func (t *Tree) Depth() int {
	return len(t.layers) - 1
}

// Proof returns the siblings of leaf from the bottom layer up. Duplicate
// leaves share the proof of their first occurrence.
func (t *Tree) Proof(leaf common.Hash) ([]common.Hash, error) {
	i, ok := t.index[leaf]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLeafMissing, leaf.Hex())
	}

	var proof []common.Hash
	for _, layer := range t.layers[:len(t.layers)-1] {
		pair := i ^ 1
		if pair < len(layer) {
			proof = append(proof, layer[pair])
		}
		i /= 2
	}
	return proof, nil
}

// ParseHash decodes a 0x-prefixed 32-byte hex string.
func ParseHash(s string) (common.Hash, error) {
	s = strings.TrimSpace(s)
	b, err := hexutil.Decode(s)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("%w: %q", ErrBadHash, s)
	}
	return common.BytesToHash(b), nil
}

// ParseProof decodes a list of hex hashes.
func ParseProof(items []string) ([]common.Hash, error) {
	proof := make([]common.Hash, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		h, err := ParseHash(item)
		if err != nil {
			return nil, err
		}
		proof = append(proof, h)
	}
	return proof, nil
}

// FormatProof encodes proof as hex strings, the form merkletreejs getHexProof
// returns.
func FormatProof(proof []common.Hash) []string {
	out := make([]string, len(proof))
	for i, h := range proof {
		out[i] = h.Hex()
	}
	return out
}
