// Package smt implements a Sparse Merkle tree.
//
// Nodes are content addressed: an internal node is stored under the hash of
// left||right, a leaf under the hash of its value. The empty leaf hashes to
// the zero digest and every empty subtree of height h has a fixed default
// hash, so an empty tree of any depth needs only depth+1 stored nodes.
package smt

import (
	"bytes"
	"errors"
	"hash"
	"math/big"
	"strconv"
)

var (
	ErrCorruptDB  = errors.New("smt: corrupt db")
	ErrKeyTooLong = errors.New("smt: key too long")
	ErrBadDepth   = errors.New("smt: depth out of range")
)

var initMarker = []byte("init")

// NodeStore is the storage a tree reads and writes nodes through. Both a db.DB
// and a db.Transaction satisfy it, so tree updates can join an enclosing
// transaction.
type NodeStore interface {
	Get(namespace []byte, key []byte) ([]byte, bool, error)
	Set(namespace []byte, key []byte, value []byte) error
}

// SparseMerkleTree is a Sparse Merkle tree.
type SparseMerkleTree struct {
	hasher    hash.Hash
	store     NodeStore
	namespace []byte
	root      []byte
	depth     int
	hashKey   bool
	defaults  [][]byte
}

// NewSparseMerkleTree creates or restores a tree of the given depth. A nil root
// selects the empty tree. With hashKey the path is the digest of the key,
// otherwise the key is read as a big-endian integer of at most depth bits.
func NewSparseMerkleTree(store NodeStore, namespace []byte, hasher hash.Hash, root []byte, depth int, hashKey bool) (*SparseMerkleTree, error) {
	if depth < 1 || depth > hasher.Size()*8 {
		return nil, ErrBadDepth
	}
	smt := &SparseMerkleTree{
		hasher:    hasher,
		store:     store,
		namespace: namespace,
		depth:     depth,
		hashKey:   hashKey,
	}
	smt.defaults = defaultNodes(hasher, depth)

	marker := append(append([]byte{}, initMarker...), []byte(strconv.Itoa(depth))...)
	_, exists, err := store.Get(namespace, marker)
	if err != nil {
		return nil, err
	}
	if !exists {
		for h := 1; h <= depth; h++ {
			child := smt.defaults[h-1]
			if err := store.Set(namespace, smt.defaults[h], concat(child, child)); err != nil {
				return nil, err
			}
		}
		if err := store.Set(namespace, marker, []byte{}); err != nil {
			return nil, err
		}
	}

	if root != nil {
		smt.SetRoot(root)
	} else {
		smt.SetRoot(smt.defaults[depth])
	}
	return smt, nil
}

// Root gets the root of the tree.
func (smt *SparseMerkleTree) Root() []byte {
	return smt.root
}

// SetRoot sets the root of the tree.
func (smt *SparseMerkleTree) SetRoot(root []byte) {
	smt.root = root
}

func (smt *SparseMerkleTree) Depth() int {
	return smt.depth
}

// EmptyRoot is the root of a tree with no leaves set.
func (smt *SparseMerkleTree) EmptyRoot() []byte {
	return smt.defaults[smt.depth]
}

func (smt *SparseMerkleTree) keySize() int {
	return smt.hasher.Size()
}

func (smt *SparseMerkleTree) digest(data ...[]byte) []byte {
	return digest(smt.hasher, data...)
}

func (smt *SparseMerkleTree) leafHash(value []byte) []byte {
	if len(value) == 0 {
		return smt.defaults[0]
	}
	return smt.digest(value)
}

func (smt *SparseMerkleTree) children(node []byte) ([]byte, []byte, error) {
	value, exists, err := smt.store.Get(smt.namespace, node)
	if err != nil {
		return nil, nil, err
	}
	if !exists || len(value) != 2*smt.keySize() {
		return nil, nil, ErrCorruptDB
	}
	return value[:smt.keySize()], value[smt.keySize():], nil
}

// Get gets a key from the tree. An unset key returns nil.
func (smt *SparseMerkleTree) Get(key []byte) ([]byte, error) {
	return smt.GetForRoot(key, smt.Root())
}

// GetForRoot gets a key from the tree at a specific root.
func (smt *SparseMerkleTree) GetForRoot(key []byte, root []byte) ([]byte, error) {
	path, err := smt.getPath(key)
	if err != nil {
		return nil, err
	}

	current := root
	for level := 0; level < smt.depth; level++ {
		if bytes.Equal(current, smt.defaults[smt.depth-level]) {
			return nil, nil
		}
		left, right, err := smt.children(current)
		if err != nil {
			return nil, err
		}
		if isRight(path, level, smt.depth) {
			current = right
		} else {
			current = left
		}
	}

	if bytes.Equal(current, smt.defaults[0]) {
		return nil, nil
	}
	value, exists, err := smt.store.Get(smt.namespace, current)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCorruptDB
	}
	return value, nil
}

// Update sets a new value for a key in the tree, returns the new root, and sets the new current root of the tree.
// A nil value clears the key.
func (smt *SparseMerkleTree) Update(key []byte, value []byte) ([]byte, error) {
	newRoot, err := smt.UpdateForRoot(key, value, smt.Root())
	if err == nil {
		smt.SetRoot(newRoot)
	}
	return newRoot, err
}

// UpdateForRoot sets a new value for a key in the tree at a specific root, and returns the new root.
func (smt *SparseMerkleTree) UpdateForRoot(key []byte, value []byte, root []byte) ([]byte, error) {
	path, err := smt.getPath(key)
	if err != nil {
		return nil, err
	}
	sideNodes, err := smt.sideNodesForRoot(path, root)
	if err != nil {
		return nil, err
	}
	return smt.updateWithSideNodes(path, value, sideNodes)
}

func (smt *SparseMerkleTree) updateWithSideNodes(path []byte, value []byte, sideNodes [][]byte) ([]byte, error) {
	current := smt.leafHash(value)
	if len(value) > 0 {
		if err := smt.store.Set(smt.namespace, current, value); err != nil {
			return nil, err
		}
	}

	for level := smt.depth - 1; level >= 0; level-- {
		var node []byte
		if isRight(path, level, smt.depth) {
			node = concat(sideNodes[level], current)
		} else {
			node = concat(current, sideNodes[level])
		}
		current = smt.digest(node)
		if err := smt.store.Set(smt.namespace, current, node); err != nil {
			return nil, err
		}
	}
	return current, nil
}

// sideNodesForRoot returns the sibling at every level, root first.
func (smt *SparseMerkleTree) sideNodesForRoot(path []byte, root []byte) ([][]byte, error) {
	sideNodes := make([][]byte, smt.depth)
	current := root
	for level := 0; level < smt.depth; level++ {
		left, right, err := smt.children(current)
		if err != nil {
			return nil, err
		}
		if isRight(path, level, smt.depth) {
			sideNodes[level] = left
			current = right
		} else {
			sideNodes[level] = right
			current = left
		}
	}
	return sideNodes, nil
}

// Prove generates a Merkle proof for a key.
func (smt *SparseMerkleTree) Prove(key []byte) ([][]byte, error) {
	return smt.ProveForRoot(key, smt.Root())
}

// ProveForRoot generates a Merkle proof for a key, at a specific root. The
// proof lists siblings from the leaf up.
func (smt *SparseMerkleTree) ProveForRoot(key []byte, root []byte) ([][]byte, error) {
	path, err := smt.getPath(key)
	if err != nil {
		return nil, err
	}
	sideNodes, err := smt.sideNodesForRoot(path, root)
	if err != nil {
		return nil, err
	}
	return reverseProof(sideNodes), nil
}

// ProveCompact generates a compacted Merkle proof for a key.
func (smt *SparseMerkleTree) ProveCompact(key []byte) ([][]byte, error) {
	proof, err := smt.Prove(key)
	if err != nil {
		return nil, err
	}
	return smt.CompactProof(proof)
}

func (smt *SparseMerkleTree) getPath(key []byte) ([]byte, error) {
	return pathFor(smt.hasher, key, smt.depth, smt.hashKey)
}

func pathFor(hasher hash.Hash, key []byte, depth int, hashKey bool) ([]byte, error) {
	if hashKey {
		return digest(hasher, key), nil
	}
	if new(big.Int).SetBytes(key).BitLen() > depth {
		return nil, ErrKeyTooLong
	}
	size := hasher.Size()
	if len(key) > size {
		key = key[len(key)-size:]
	}
	padded := make([]byte, size)
	copy(padded[size-len(key):], key)
	return padded, nil
}

func digest(hasher hash.Hash, data ...[]byte) []byte {
	hasher.Reset()
	for _, d := range data {
		hasher.Write(d)
	}
	sum := hasher.Sum(nil)
	hasher.Reset()
	return sum
}

// defaultNodes returns the root hash of an empty subtree for every height
// from 0 (the empty leaf) to depth.
func defaultNodes(hasher hash.Hash, depth int) [][]byte {
	nodes := make([][]byte, depth+1)
	nodes[0] = make([]byte, hasher.Size())
	for h := 1; h <= depth; h++ {
		nodes[h] = digest(hasher, nodes[h-1], nodes[h-1])
	}
	return nodes
}

func concat(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
