package statemachine

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celer-network/go-animaverse/db/badgerdb"
	"github.com/celer-network/go-animaverse/types"
)

func TestStateSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	bdb, err := badgerdb.NewDB(dir)
	require.NoError(t, err)
	sm, err := NewStateMachine(bdb, testGenesis())
	require.NoError(t, err)

	tree := publishGames(t, sm, game0, game1)
	proof1, err := tree.Proof(game1.leaf())
	require.NoError(t, err)
	require.NoError(t, submit(sm, alice, game1, proof1))
	require.NoError(t, sm.SetNewRound(owner, big.NewInt(1e16), 5002, 3, 1))
	_, err = sm.Mint(bob, 1, big.NewInt(1e16))
	require.NoError(t, err)
	_, err = sm.Mint(bob, 1, big.NewInt(1e16))
	require.ErrorIs(t, err, types.ErrRoundCapacityExceeded)
	root, err := sm.OwnershipRoot()
	require.NoError(t, err)
	require.NoError(t, bdb.Close())

	bdb, err = badgerdb.NewDB(dir)
	require.NoError(t, err)
	defer bdb.Close()
	sm, err = NewStateMachine(bdb, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), sm.ChainID())

	err = submit(sm, bob, game1, proof1)
	assert.ErrorIs(t, err, types.ErrAlreadyClaimed)
	tokenOwner, err := sm.OwnerOf(5002)
	require.NoError(t, err)
	assert.Equal(t, bob, tokenOwner)
	held, err := sm.HeldBalance(types.NativeAsset)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1e16), held)

	reopenedRoot, err := sm.OwnershipRoot()
	require.NoError(t, err)
	assert.Equal(t, root, reopenedRoot)

	tokens, err := sm.Tokens()
	require.NoError(t, err)
	assert.Len(t, tokens, 2)
}
