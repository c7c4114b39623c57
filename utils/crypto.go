package utils

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io/ioutil"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/celer-network/go-animaverse/types"
)

var errBadSignatureLength = errors.New("signature must be 65 bytes")

func SigIsValid(signer common.Address, data []byte, sig []byte) bool {
	recoveredAddr, err := RecoverSigner(data, sig)
	return err == nil && recoveredAddr == signer
}

// RecoverSigner returns the address that produced sig over SignData(data).
func RecoverSigner(data []byte, sig []byte) (common.Address, error) {
	if len(sig) != 65 {
		return common.Address{}, errBadSignatureLength
	}
	pubKey, err := crypto.SigToPub(generatePrefixedHash(data), sig)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pubKey), nil
}

func GetPrivateKeyFromKeystore(path string, password string) (*ecdsa.PrivateKey, error) {
	ksBytes, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key, err := keystore.DecryptKey(ksBytes, password)
	if err != nil {
		return nil, err
	}
	return key.PrivateKey, nil
}

// SignData is an Ethereum personal-sign over keccak256(data...).
func SignData(privateKey *ecdsa.PrivateKey, data ...[]byte) ([]byte, error) {
	hash := crypto.Keccak256Hash(data...)
	prefixedHash := crypto.Keccak256Hash(
		[]byte(fmt.Sprintf("\x19Ethereum Signed Message:\n%v", len(hash))),
		hash.Bytes(),
	)
	return crypto.Sign(prefixedHash.Bytes(), privateKey)
}

// SignTransaction wraps tx in an envelope for chainID signed by privateKey at
// nonce.
func SignTransaction(privateKey *ecdsa.PrivateKey, tx types.Transaction, chainID uint64, nonce uint64) (*types.SignedTransaction, error) {
	payload, err := types.SigningPayload(tx, chainID, nonce)
	if err != nil {
		return nil, err
	}
	sig, err := SignData(privateKey, payload)
	if err != nil {
		return nil, err
	}
	return &types.SignedTransaction{
		ChainID:     chainID,
		Nonce:       nonce,
		Transaction: tx,
		Signature:   sig,
	}, nil
}

func generatePrefixedHash(data []byte) []byte {
	return crypto.Keccak256([]byte("\x19Ethereum Signed Message:\n32"), crypto.Keccak256(data))
}
