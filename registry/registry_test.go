package registry

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celer-network/go-animaverse/access"
	"github.com/celer-network/go-animaverse/db/memorydb"
	"github.com/celer-network/go-animaverse/merkle"
	"github.com/celer-network/go-animaverse/state"
	"github.com/celer-network/go-animaverse/types"
)

var (
	owner = common.HexToAddress("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	alice = common.HexToAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	bob   = common.HexToAddress("0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc")
)

type issued struct {
	owner   common.Address
	tokenID uint64
}

type fakeIssuer struct {
	issued []issued
	err    error
}

func (f *fakeIssuer) IssueWinnerToken(owner common.Address, tokenID uint64) error {
	if f.err != nil {
		return f.err
	}
	f.issued = append(f.issued, issued{owner, tokenID})
	return nil
}

type game struct {
	index, score, seed int64
}

func (g game) leaf() common.Hash {
	return merkle.GameLeaf(big.NewInt(g.index), big.NewInt(g.score), big.NewInt(g.seed))
}

var games = []game{{0, 10, 111}, {1, 20, 222}, {2, 30, 333}, {150, 5, 9}}

func newTestRegistry(t *testing.T, mintOnClaim bool) (*Registry, *fakeIssuer, *merkle.Tree) {
	serializer, err := types.NewSerializer()
	require.NoError(t, err)
	st := state.New(memorydb.NewDB().NewTx(), serializer)
	require.NoError(t, access.Init(st, owner))
	require.NoError(t, st.SetGenesis(&types.Genesis{
		WhitelistMintPrice: big.NewInt(1),
		GameSlots:          100,
		MintOnClaim:        mintOnClaim,
	}))
	issuer := &fakeIssuer{}
	r, err := New(st, issuer)
	require.NoError(t, err)

	leaves := make([]common.Hash, len(games))
	for i, g := range games {
		leaves[i] = g.leaf()
	}
	tree, err := merkle.NewTree(leaves)
	require.NoError(t, err)
	require.NoError(t, r.SetGamesRoot(owner, tree.Root()))
	return r, issuer, tree
}

func submit(t *testing.T, r *Registry, tree *merkle.Tree, caller common.Address, g game) error {
	proof, err := tree.Proof(g.leaf())
	require.NoError(t, err)
	return r.SubmitGameScore(caller, uint64(g.index), big.NewInt(g.score), big.NewInt(g.seed), proof)
}

func TestSubmitGameScore(t *testing.T) {
	r, issuer, tree := newTestRegistry(t, false)

	require.NoError(t, submit(t, r, tree, alice, games[0]))
	slot, err := r.GameSlot(0)
	require.NoError(t, err)
	assert.True(t, slot.Claimed)
	assert.False(t, slot.Redeemed)
	assert.Equal(t, alice, slot.ClaimedBy)
	assert.Equal(t, int64(10), slot.Score.Int64())
	assert.Empty(t, issuer.issued)

	// a claimed slot is final, even for a valid proof from someone else
	assert.ErrorIs(t, submit(t, r, tree, bob, games[0]), types.ErrAlreadyClaimed)
	slot, err = r.GameSlot(0)
	require.NoError(t, err)
	assert.Equal(t, alice, slot.ClaimedBy)
}

func TestSubmitGameScoreRejectsBadProofs(t *testing.T) {
	r, _, tree := newTestRegistry(t, false)
	proof, err := tree.Proof(games[1].leaf())
	require.NoError(t, err)

	// wrong score, wrong index, proof of another leaf
	assert.ErrorIs(t, r.SubmitGameScore(alice, 1, big.NewInt(21), big.NewInt(222), proof), types.ErrInvalidProof)
	assert.ErrorIs(t, r.SubmitGameScore(alice, 2, big.NewInt(20), big.NewInt(222), proof), types.ErrInvalidProof)
	assert.ErrorIs(t, r.SubmitGameScore(alice, 1, nil, big.NewInt(222), proof), types.ErrInvalidProof)
	assert.ErrorIs(t, r.SubmitGameScore(alice, 1, big.NewInt(20), big.NewInt(222), nil), types.ErrInvalidProof)

	// in the tree but outside the slot universe
	assert.ErrorIs(t, submit(t, r, tree, alice, games[3]), types.ErrInvalidProof)

	slot, err := r.GameSlot(1)
	require.NoError(t, err)
	assert.False(t, slot.Claimed)
}

func TestSubmitGameScoreMintsOnClaim(t *testing.T) {
	r, issuer, tree := newTestRegistry(t, true)

	require.NoError(t, submit(t, r, tree, bob, games[2]))
	assert.Equal(t, []issued{{bob, 2}}, issuer.issued)
	slot, err := r.GameSlot(2)
	require.NoError(t, err)
	assert.True(t, slot.Redeemed)

	errIssue := errors.New("issue failed")
	issuer.err = errIssue
	assert.Equal(t, errIssue, submit(t, r, tree, bob, games[1]))
}

func TestSubmitGameScorePaused(t *testing.T) {
	r, _, tree := newTestRegistry(t, false)
	require.NoError(t, access.SetPaused(r.st, owner, true))
	assert.ErrorIs(t, submit(t, r, tree, alice, games[0]), types.ErrPaused)
}

func TestSetGamesRoot(t *testing.T) {
	r, _, tree := newTestRegistry(t, false)
	require.NoError(t, submit(t, r, tree, alice, games[0]))

	assert.ErrorIs(t, r.SetGamesRoot(alice, common.Hash{}), types.ErrUnauthorized)

	replacement, err := merkle.NewTree([]common.Hash{games[0].leaf()})
	require.NoError(t, err)
	require.NoError(t, r.SetGamesRoot(owner, replacement.Root()))
	root, err := r.GamesRoot()
	require.NoError(t, err)
	assert.Equal(t, replacement.Root(), root)

	slot, err := r.GameSlot(0)
	require.NoError(t, err)
	assert.True(t, slot.Claimed)
	assert.ErrorIs(t, submit(t, r, replacement, bob, games[0]), types.ErrAlreadyClaimed)
}
