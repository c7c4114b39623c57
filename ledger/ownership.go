package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/celer-network/go-animaverse/db"
	"github.com/celer-network/go-animaverse/smt"
)

// OwnershipTreeDepth covers every uint64 token id.
const OwnershipTreeDepth = 64

// OwnershipKey is the tree key of tokenID.
func OwnershipKey(tokenID uint64) []byte {
	return new(big.Int).SetUint64(tokenID).Bytes()
}

func (l *Ledger) ownershipTree() (*smt.SparseMerkleTree, error) {
	if l.tree != nil {
		return l.tree, nil
	}
	hasher, err := smt.NewHasher(l.genesis.OwnershipHasher)
	if err != nil {
		return nil, err
	}
	root, err := l.st.OwnershipRoot()
	if err != nil {
		return nil, err
	}
	tree, err := smt.NewSparseMerkleTree(l.st.Tx(), db.NamespaceOwnershipTrie, hasher, root, OwnershipTreeDepth, false)
	if err != nil {
		return nil, err
	}
	l.tree = tree
	return tree, nil
}

func (l *Ledger) commitOwner(tokenID uint64, owner common.Address) error {
	tree, err := l.ownershipTree()
	if err != nil {
		return err
	}
	root, err := tree.Update(OwnershipKey(tokenID), owner.Bytes())
	if err != nil {
		return err
	}
	return l.st.SetOwnershipRoot(root)
}

// OwnershipRoot commits to the owner of every issued token.
func (l *Ledger) OwnershipRoot() ([]byte, error) {
	tree, err := l.ownershipTree()
	if err != nil {
		return nil, err
	}
	return tree.Root(), nil
}

// ProveOwnership returns the compacted leaf-to-root siblings for tokenID. The
// proof checks against OwnershipRoot with smt.VerifyCompactProof, the owner
// address bytes as value and OwnershipTreeDepth. An unissued id gets an
// exclusion proof.
func (l *Ledger) ProveOwnership(tokenID uint64) ([][]byte, error) {
	tree, err := l.ownershipTree()
	if err != nil {
		return nil, err
	}
	return tree.ProveCompact(OwnershipKey(tokenID))
}
