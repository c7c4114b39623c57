package merkle

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	solsha3 "github.com/miguelmota/go-solidity-sha3"
)

// GameLeaf is soliditySha3(uint256 index, uint256 score, uint256 seed).
func GameLeaf(index, score, seed *big.Int) common.Hash {
	return common.BytesToHash(solsha3.SoliditySHA3(
		solsha3.Uint256(index),
		solsha3.Uint256(score),
		solsha3.Uint256(seed),
	))
}

// AddressLeaf is keccak256 over the 20 address bytes.
func AddressLeaf(addr common.Address) common.Hash {
	return crypto.Keccak256Hash(addr.Bytes())
}
