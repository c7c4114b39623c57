package smt

import (
	"fmt"
	"hash"

	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/sha3"
)

const (
	HasherKeccak256 = "keccak256"
	HasherSHA256    = "sha256"
)

// NewHasher returns a fresh hash.Hash by name. An empty name selects keccak256.
func NewHasher(name string) (hash.Hash, error) {
	switch name {
	case "", HasherKeccak256:
		return sha3.NewLegacyKeccak256(), nil
	case HasherSHA256:
		return sha256.New(), nil
	}
	return nil, fmt.Errorf("smt: unknown hasher %q", name)
}

func hasBit(data []byte, position int) int {
	if int(data[position/8])&(1<<(uint(position)%8)) > 0 {
		return 1
	}
	return 0
}

// isRight reports whether the path turns right at level, counting from the
// root. Only the low depth bits of the path are used, most significant first.
func isRight(path []byte, level int, depth int) bool {
	n := depth - 1 - level
	b := path[len(path)-1-n/8]
	return b&(1<<(uint(n)%8)) != 0
}

func setBit(data []byte, position int) {
	n := int(data[position/8])
	n |= (1 << (uint(position) % 8))
	data[position/8] = byte(n)
}

func countSetBits(data []byte) int {
	count := 0
	for i := 0; i < len(data)*8; i++ {
		if hasBit(data, i) == 1 {
			count++
		}
	}
	return count
}

func emptyBytes(length int) []byte {
	return make([]byte, length)
}
