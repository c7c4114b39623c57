package statemachine

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celer-network/go-animaverse/db/memorydb"
	"github.com/celer-network/go-animaverse/merkle"
	"github.com/celer-network/go-animaverse/types"
	"github.com/celer-network/go-animaverse/utils"
)

type selfDestructTransaction struct{}

func (*selfDestructTransaction) GetTransactionType() types.TransactionType {
	return types.TransactionType(99)
}

func TestApplyTransaction(t *testing.T) {
	ownerKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	userKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	ownerAddr := crypto.PubkeyToAddress(ownerKey.PublicKey)
	userAddr := crypto.PubkeyToAddress(userKey.PublicKey)

	g := testGenesis()
	g.Owner = ownerAddr
	sm, err := NewStateMachine(memorydb.NewDB(), g)
	require.NoError(t, err)

	price := big.NewInt(1e16)
	newRound, err := utils.SignTransaction(ownerKey, &types.SetNewRoundTransaction{
		Price:         price,
		StartTokenID:  5002,
		MaxPerAddress: 3,
		CountInRound:  1,
	}, sm.ChainID(), 0)
	require.NoError(t, err)
	result, err := sm.ApplyTransaction(newRound)
	require.NoError(t, err)
	assert.Equal(t, ownerAddr, result.Sender)
	assert.Equal(t, types.TransactionTypeSetNewRound, result.Type)

	_, err = sm.ApplyTransaction(newRound)
	assert.ErrorIs(t, err, types.ErrInvalidNonce)

	nonce, err := sm.Nonce(ownerAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), nonce)

	// a rejected operation keeps the nonce
	underpaid, err := utils.SignTransaction(userKey, &types.MintTransaction{Quantity: 1, Value: big.NewInt(1)}, sm.ChainID(), 0)
	require.NoError(t, err)
	_, err = sm.ApplyTransaction(underpaid)
	assert.ErrorIs(t, err, types.ErrInsufficientPayment)
	nonce, err = sm.Nonce(userAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), nonce)

	mint, err := utils.SignTransaction(userKey, &types.MintTransaction{Quantity: 1, Value: price}, sm.ChainID(), 0)
	require.NoError(t, err)
	result, err = sm.ApplyTransaction(mint)
	require.NoError(t, err)
	require.NotNil(t, result.Receipt)
	assert.Equal(t, []uint64{5002}, result.Receipt.TokenIDs)

	tokenOwner, err := sm.OwnerOf(5002)
	require.NoError(t, err)
	assert.Equal(t, userAddr, tokenOwner)

	withdraw, err := utils.SignTransaction(ownerKey, &types.WithdrawTransaction{Amount: price}, sm.ChainID(), 1)
	require.NoError(t, err)
	result, err = sm.ApplyTransaction(withdraw)
	require.NoError(t, err)
	require.NotNil(t, result.Split)
	assert.Equal(t, big.NewInt(2e15), result.Split.CommunityShare)
}

func TestApplyGameClaimTransaction(t *testing.T) {
	ownerKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	userKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	g := testGenesis()
	g.Owner = crypto.PubkeyToAddress(ownerKey.PublicKey)
	sm, err := NewStateMachine(memorydb.NewDB(), g)
	require.NoError(t, err)

	tree, err := merkle.NewTree([]common.Hash{game0.leaf(), game1.leaf()})
	require.NoError(t, err)
	setRoot, err := utils.SignTransaction(ownerKey, &types.SetGamesRootTransaction{Root: tree.Root()}, sm.ChainID(), 0)
	require.NoError(t, err)
	_, err = sm.ApplyTransaction(setRoot)
	require.NoError(t, err)

	proof, err := tree.Proof(game1.leaf())
	require.NoError(t, err)
	claim, err := utils.SignTransaction(userKey, &types.SubmitGameScoreTransaction{
		Index: 1,
		Score: big.NewInt(game1.score),
		Seed:  big.NewInt(game1.seed),
		Proof: proof,
	}, sm.ChainID(), 0)
	require.NoError(t, err)
	_, err = sm.ApplyTransaction(claim)
	require.NoError(t, err)

	tokenOwner, err := sm.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(userKey.PublicKey), tokenOwner)
}

func TestApplyRejectsBadEnvelopes(t *testing.T) {
	ownerKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	g := testGenesis()
	g.Owner = crypto.PubkeyToAddress(ownerKey.PublicKey)
	sm, err := NewStateMachine(memorydb.NewDB(), g)
	require.NoError(t, err)

	_, err = sm.ApplyTransaction(nil)
	assert.ErrorIs(t, err, types.ErrUnknownTransaction)

	stx, err := utils.SignTransaction(ownerKey, &types.SetPausedTransaction{Paused: true}, sm.ChainID(), 0)
	require.NoError(t, err)
	stx.Signature = stx.Signature[:10]
	_, err = sm.ApplyTransaction(stx)
	assert.ErrorIs(t, err, types.ErrInvalidSignature)

	// a tampered payload recovers to some other account, which is not the owner
	stx, err = utils.SignTransaction(ownerKey, &types.SetPausedTransaction{Paused: true}, sm.ChainID(), 0)
	require.NoError(t, err)
	stx.Transaction = &types.SetPausedTransaction{Paused: false}
	_, err = sm.ApplyTransaction(stx)
	assert.Error(t, err)
	admin, err := sm.Admin()
	require.NoError(t, err)
	assert.False(t, admin.Paused)

	// a signature for another chain does not replay here
	stx, err = utils.SignTransaction(ownerKey, &types.SetPausedTransaction{Paused: true}, 1, 0)
	require.NoError(t, err)
	_, err = sm.ApplyTransaction(stx)
	assert.ErrorIs(t, err, types.ErrInvalidSignature)
	stx.ChainID = sm.ChainID()
	_, err = sm.ApplyTransaction(stx)
	assert.Error(t, err)
	admin, err = sm.Admin()
	require.NoError(t, err)
	assert.False(t, admin.Paused)

	unknown, err := utils.SignTransaction(ownerKey, &selfDestructTransaction{}, sm.ChainID(), 0)
	require.NoError(t, err)
	_, err = sm.ApplyTransaction(unknown)
	assert.ErrorIs(t, err, types.ErrUnknownTransaction)
}
