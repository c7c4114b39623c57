package statemachine

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/celer-network/go-animaverse/db"
	"github.com/celer-network/go-animaverse/ledger"
	"github.com/celer-network/go-animaverse/smt"
	"github.com/celer-network/go-animaverse/types"
)

func (sm *StateMachine) Genesis() (*types.Genesis, error) {
	var g *types.Genesis
	err := sm.view(func(c *components) (err error) {
		g, err = c.st.Genesis()
		return err
	})
	return g, err
}

func (sm *StateMachine) Admin() (*types.AdminState, error) {
	var a *types.AdminState
	err := sm.view(func(c *components) (err error) {
		a, err = c.st.Admin()
		return err
	})
	return a, err
}

func (sm *StateMachine) Collection() (*types.CollectionState, error) {
	var collection *types.CollectionState
	err := sm.view(func(c *components) (err error) {
		collection, err = c.st.Collection()
		return err
	})
	return collection, err
}

func (sm *StateMachine) Stakeholders() (*types.Stakeholders, error) {
	var s *types.Stakeholders
	err := sm.view(func(c *components) (err error) {
		s, err = c.splitter.Stakeholders()
		return err
	})
	return s, err
}

func (sm *StateMachine) GamesRoot() (common.Hash, error) {
	var root common.Hash
	err := sm.view(func(c *components) (err error) {
		root, err = c.registry.GamesRoot()
		return err
	})
	return root, err
}

func (sm *StateMachine) WhitelistRoot() (common.Hash, error) {
	var root common.Hash
	err := sm.view(func(c *components) (err error) {
		root, err = c.st.WhitelistRoot()
		return err
	})
	return root, err
}

func (sm *StateMachine) GameSlot(index uint64) (*types.GameSlot, error) {
	var slot *types.GameSlot
	err := sm.view(func(c *components) (err error) {
		slot, err = c.registry.GameSlot(index)
		return err
	})
	return slot, err
}

func (sm *StateMachine) Rounds() ([]*types.Round, error) {
	var rounds []*types.Round
	err := sm.view(func(c *components) (err error) {
		rounds, err = c.ledger.Rounds()
		return err
	})
	return rounds, err
}

func (sm *StateMachine) Token(tokenID uint64) (*types.Token, error) {
	var token *types.Token
	err := sm.view(func(c *components) (err error) {
		token, err = c.ledger.Token(tokenID)
		return err
	})
	return token, err
}

func (sm *StateMachine) OwnerOf(tokenID uint64) (common.Address, error) {
	var owner common.Address
	err := sm.view(func(c *components) (err error) {
		owner, err = c.ledger.OwnerOf(tokenID)
		return err
	})
	return owner, err
}

func (sm *StateMachine) BalanceOf(owner common.Address) (uint64, error) {
	var balance uint64
	err := sm.view(func(c *components) (err error) {
		balance, err = c.ledger.BalanceOf(owner)
		return err
	})
	return balance, err
}

func (sm *StateMachine) TotalSupply() (uint64, error) {
	var supply uint64
	err := sm.view(func(c *components) (err error) {
		supply, err = c.ledger.TotalSupply()
		return err
	})
	return supply, err
}

func (sm *StateMachine) TokenURI(tokenID uint64) (string, error) {
	var uri string
	err := sm.view(func(c *components) (err error) {
		uri, err = c.ledger.TokenURI(tokenID)
		return err
	})
	return uri, err
}

// Tokens lists every issued token in id order.
func (sm *StateMachine) Tokens() ([]*types.Token, error) {
	sm.lock.RLock()
	defer sm.lock.RUnlock()

	start, end := db.NamespaceRange(db.NamespaceToken)
	iter := sm.db.Iterator(start, end)
	defer iter.Close()

	var tokens []*types.Token
	for ; iter.Valid(); iter.Next() {
		value, err := iter.Value()
		if err != nil {
			return nil, err
		}
		token, err := sm.serializer.DeserializeToken(value)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

func (sm *StateMachine) HeldBalance(asset common.Address) (*big.Int, error) {
	var balance *big.Int
	err := sm.view(func(c *components) (err error) {
		balance, err = c.splitter.HeldBalance(asset)
		return err
	})
	return balance, err
}

func (sm *StateMachine) BalanceOfAsset(asset common.Address, account common.Address) (*big.Int, error) {
	var balance *big.Int
	err := sm.view(func(c *components) (err error) {
		balance, err = c.splitter.BalanceOfAsset(asset, account)
		return err
	})
	return balance, err
}

// Nonce is the nonce the next signed transaction from account must carry.
func (sm *StateMachine) Nonce(account common.Address) (uint64, error) {
	var nonce uint64
	err := sm.view(func(c *components) (err error) {
		nonce, err = c.st.Nonce(account)
		return err
	})
	return nonce, err
}

func (sm *StateMachine) OwnershipRoot() ([]byte, error) {
	var root []byte
	err := sm.view(func(c *components) (err error) {
		root, err = c.ledger.OwnershipRoot()
		return err
	})
	return root, err
}

func (sm *StateMachine) ProveOwnership(tokenID uint64) ([][]byte, error) {
	var proof [][]byte
	err := sm.view(func(c *components) (err error) {
		proof, err = c.ledger.ProveOwnership(tokenID)
		return err
	})
	return proof, err
}

// VerifyOwnership checks a compact ownership proof against root without
// touching state.
func (sm *StateMachine) VerifyOwnership(root []byte, tokenID uint64, owner common.Address, proof [][]byte) (bool, error) {
	g, err := sm.Genesis()
	if err != nil {
		return false, err
	}
	hasher, err := smt.NewHasher(g.OwnershipHasher)
	if err != nil {
		return false, err
	}
	return smt.VerifyCompactProof(proof, root, ledger.OwnershipKey(tokenID), owner.Bytes(), hasher, ledger.OwnershipTreeDepth, false), nil
}
