package state

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/celer-network/go-animaverse/db"
	"github.com/celer-network/go-animaverse/types"
)

// HeldBalance is the amount of asset the contract holds and has not paid out.
func (s *State) HeldBalance(asset common.Address) (*big.Int, error) {
	return s.getAmount(db.NamespaceHeldBalance, asset.Bytes())
}

func (s *State) AddHeldBalance(asset common.Address, amount *big.Int) error {
	balance, err := s.HeldBalance(asset)
	if err != nil {
		return err
	}
	return s.setAmount(db.NamespaceHeldBalance, asset.Bytes(), balance.Add(balance, amount))
}

func (s *State) SubHeldBalance(asset common.Address, amount *big.Int) error {
	balance, err := s.HeldBalance(asset)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) == -1 {
		return fmt.Errorf("asset %s: held %s, requested %s: %w", asset.Hex(), balance, amount, types.ErrInsufficientBalance)
	}
	return s.setAmount(db.NamespaceHeldBalance, asset.Bytes(), balance.Sub(balance, amount))
}

// AssetBalance is what the contract has paid out to account in asset.
func (s *State) AssetBalance(asset common.Address, account common.Address) (*big.Int, error) {
	return s.getAmount(db.NamespaceAssetBalance, joinKey(asset.Bytes(), account.Bytes()))
}

func (s *State) AddAssetBalance(asset common.Address, account common.Address, amount *big.Int) error {
	key := joinKey(asset.Bytes(), account.Bytes())
	balance, err := s.getAmount(db.NamespaceAssetBalance, key)
	if err != nil {
		return err
	}
	return s.setAmount(db.NamespaceAssetBalance, key, balance.Add(balance, amount))
}
