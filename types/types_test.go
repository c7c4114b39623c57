package types

import (
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRecords(t *testing.T) {
	s, err := NewSerializer()
	require.NoError(t, err)

	round := &Round{
		Price:         big.NewInt(1e16),
		StartTokenID:  5002,
		MaxPerAddress: 3,
		CountInRound:  1,
	}
	data, err := s.SerializeRound(round)
	require.NoError(t, err)
	decodedRound, err := s.DeserializeRound(data)
	require.NoError(t, err)
	assert.Equal(t, round, decodedRound)

	slot := &GameSlot{
		Index:     1,
		Claimed:   true,
		ClaimedBy: common.HexToAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8"),
		Score:     big.NewInt(5),
		Seed:      big.NewInt(123456),
	}
	data, err = s.SerializeGameSlot(slot)
	require.NoError(t, err)
	decodedSlot, err := s.DeserializeGameSlot(data)
	require.NoError(t, err)
	assert.Equal(t, slot, decodedSlot)

	collection := &CollectionState{
		BaseURI:            "ipfs://base/",
		NotRevealedURI:     "ipfs://hidden.json",
		GameWinnersMinting: true,
		TotalSupply:        7,
	}
	data, err = s.SerializeCollectionState(collection)
	require.NoError(t, err)
	decodedCollection, err := s.DeserializeCollectionState(data)
	require.NoError(t, err)
	assert.Equal(t, collection, decodedCollection)

	genesis := &Genesis{
		ChainID:               31337,
		WhitelistMintPrice:    big.NewInt(5e16),
		MaxWhitelistMint:      2,
		WhitelistStartTokenID: 1000,
		GameSlots:             1000,
		MintOnClaim:           true,
		OwnershipHasher:       "sha256",
	}
	data, err = s.SerializeGenesis(genesis)
	require.NoError(t, err)
	decodedGenesis, err := s.DeserializeGenesis(data)
	require.NoError(t, err)
	assert.Equal(t, genesis, decodedGenesis)
}

func TestSerializeNilAmounts(t *testing.T) {
	s, err := NewSerializer()
	require.NoError(t, err)

	data, err := s.SerializeGameSlot(&GameSlot{Index: 9})
	require.NoError(t, err)
	slot, err := s.DeserializeGameSlot(data)
	require.NoError(t, err)
	assert.Equal(t, 0, slot.Score.Sign())
	assert.Equal(t, 0, slot.Seed.Sign())
	assert.False(t, slot.Claimed)
}

func TestDeserializeGarbage(t *testing.T) {
	s, err := NewSerializer()
	require.NoError(t, err)
	_, err = s.DeserializeToken([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestSigningPayload(t *testing.T) {
	tx := &MintTransaction{Quantity: 2, Value: big.NewInt(2e16)}

	first, err := SigningPayload(tx, 31337, 0)
	require.NoError(t, err)
	again, err := SigningPayload(tx, 31337, 0)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	next, err := SigningPayload(tx, 31337, 1)
	require.NoError(t, err)
	assert.NotEqual(t, first, next)

	otherChain, err := SigningPayload(tx, 1, 0)
	require.NoError(t, err)
	assert.NotEqual(t, first, otherChain)

	stx := &SignedTransaction{ChainID: 31337, Nonce: 1, Transaction: tx}
	payload, err := stx.SigningPayload()
	require.NoError(t, err)
	assert.Equal(t, next, payload)
}

func TestTransactionTypeNames(t *testing.T) {
	for typ, name := range transactionTypeNames {
		resolved, ok := TransactionTypeByName(name)
		require.True(t, ok, name)
		assert.Equal(t, typ, resolved)
		assert.Equal(t, name, typ.String())
	}
	_, ok := TransactionTypeByName("selfdestruct")
	assert.False(t, ok)
}

func TestNewTransaction(t *testing.T) {
	for typ := range transactionTypeNames {
		tx, err := NewTransaction(typ)
		require.NoError(t, err)
		assert.Equal(t, typ, tx.GetTransactionType())
	}
	_, err := NewTransaction(TransactionType(99))
	assert.Equal(t, ErrUnknownTransaction, err)
}

func TestReceipt(t *testing.T) {
	r := NewReceipt([]uint64{1}, big.NewInt(100), big.NewInt(150))
	assert.Equal(t, big.NewInt(50), r.Excess)

	g := &Genesis{WhitelistStartTokenID: 10}
	assert.Equal(t, uint64(math.MaxUint64), g.WhitelistEndTokenID())
	g.WhitelistSupply = 5
	assert.Equal(t, uint64(15), g.WhitelistEndTokenID())
}

func TestGenesisValidate(t *testing.T) {
	valid := func() *Genesis {
		return &Genesis{
			ChainID:               31337,
			WhitelistMintPrice:    big.NewInt(5e16),
			WhitelistStartTokenID: 1000,
			WhitelistSupply:       1000,
			GameSlots:             1000,
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(g *Genesis)
		err    error
	}{
		{"no chain id", func(g *Genesis) { g.ChainID = 0 }, ErrInvalidGenesis},
		{"no price", func(g *Genesis) { g.WhitelistMintPrice = nil }, ErrInvalidQuantity},
		{"negative price", func(g *Genesis) { g.WhitelistMintPrice = big.NewInt(-1) }, ErrInvalidQuantity},
		{"unbounded game window", func(g *Genesis) { g.GameSlots = 0 }, ErrOverlappingRoundRange},
		{"unbounded game and allowlist windows", func(g *Genesis) {
			g.GameSlots = 0
			g.WhitelistSupply = 0
		}, ErrOverlappingRoundRange},
		{"allowlist inside game window", func(g *Genesis) { g.WhitelistStartTokenID = 999 }, ErrOverlappingRoundRange},
		{"unbounded allowlist inside game window", func(g *Genesis) {
			g.WhitelistStartTokenID = 1
			g.WhitelistSupply = 0
		}, ErrOverlappingRoundRange},
		{"allowlist overflows", func(g *Genesis) { g.WhitelistStartTokenID = ^uint64(0) }, ErrInvalidGenesis},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := valid()
			tt.mutate(g)
			assert.ErrorIs(t, g.Validate(), tt.err)
		})
	}

	// adjacent windows and an unbounded allowlist above a bounded game window
	g := valid()
	g.WhitelistSupply = 0
	assert.NoError(t, g.Validate())
}
