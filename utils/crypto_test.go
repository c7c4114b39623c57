package utils

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celer-network/go-animaverse/types"
)

func TestSignAndRecover(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := crypto.PubkeyToAddress(key.PublicKey)

	data := []byte("animaverse")
	sig, err := SignData(key, data)
	require.NoError(t, err)

	recovered, err := RecoverSigner(data, sig)
	require.NoError(t, err)
	assert.Equal(t, signer, recovered)
	assert.True(t, SigIsValid(signer, data, sig))
	assert.False(t, SigIsValid(signer, []byte("other"), sig))

	_, err = RecoverSigner(data, sig[:64])
	assert.Error(t, err)
}

func TestSignTransaction(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	stx, err := SignTransaction(key, &types.MintTransaction{Quantity: 1, Value: big.NewInt(1)}, 31337, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), stx.Nonce)
	assert.Equal(t, uint64(31337), stx.ChainID)

	payload, err := stx.SigningPayload()
	require.NoError(t, err)
	assert.True(t, SigIsValid(crypto.PubkeyToAddress(key.PublicKey), payload, stx.Signature))

	// the nonce is covered by the signature
	stx.Nonce = 8
	payload, err = stx.SigningPayload()
	require.NoError(t, err)
	assert.False(t, SigIsValid(crypto.PubkeyToAddress(key.PublicKey), payload, stx.Signature))

	// so is the chain id
	stx.Nonce = 7
	stx.ChainID = 1
	payload, err = stx.SigningPayload()
	require.NoError(t, err)
	assert.False(t, SigIsValid(crypto.PubkeyToAddress(key.PublicKey), payload, stx.Signature))
}
