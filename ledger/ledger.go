// Package ledger issues tokens through the public, allowlist and game-winner
// paths and keeps the token ownership table.
package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/celer-network/go-animaverse/log"
	"github.com/celer-network/go-animaverse/smt"
	"github.com/celer-network/go-animaverse/state"
	"github.com/celer-network/go-animaverse/types"
)

var logger = log.NewLogger("ledger")

// Ledger operates on one State. It is not safe for concurrent use.
type Ledger struct {
	st      *state.State
	genesis *types.Genesis
	tree    *smt.SparseMerkleTree
}

func New(st *state.State) (*Ledger, error) {
	genesis, err := st.Genesis()
	if err != nil {
		return nil, err
	}
	return &Ledger{st: st, genesis: genesis}, nil
}

// IssueWinnerToken issues token tokenID to the claimant of the game slot with
// the same index. The token is non-transferable.
func (l *Ledger) IssueWinnerToken(owner common.Address, tokenID uint64) error {
	return l.issue(owner, tokenID, types.MintPathGameClaim, true)
}

func (l *Ledger) issue(owner common.Address, tokenID uint64, path types.MintPath, soulbound bool) error {
	_, exists, err := l.st.Token(tokenID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("token %d: %w", tokenID, types.ErrTokenAlreadyMinted)
	}
	token := &types.Token{
		TokenID:   tokenID,
		Owner:     owner,
		Path:      path,
		Soulbound: soulbound,
	}
	if err := l.st.SetToken(token); err != nil {
		return err
	}
	if err := l.adjustBalance(owner, 1); err != nil {
		return err
	}
	collection, err := l.st.Collection()
	if err != nil {
		return err
	}
	collection.TotalSupply++
	if err := l.st.SetCollection(collection); err != nil {
		return err
	}
	return l.commitOwner(tokenID, owner)
}

func (l *Ledger) adjustBalance(owner common.Address, delta int) error {
	balance, err := l.st.OwnerBalance(owner)
	if err != nil {
		return err
	}
	if delta < 0 {
		balance -= uint64(-delta)
	} else {
		balance += uint64(delta)
	}
	return l.st.SetOwnerBalance(owner, balance)
}

// TransferFrom moves tokenID from from to to. The caller must be from and the
// current owner. Tokens issued to game winners never move.
func (l *Ledger) TransferFrom(caller, from, to common.Address, tokenID uint64) error {
	token, err := l.Token(tokenID)
	if err != nil {
		return err
	}
	if token.Soulbound {
		return fmt.Errorf("token %d: %w", tokenID, types.ErrTransferDisabled)
	}
	if caller != from || token.Owner != from {
		return fmt.Errorf("token %d, caller %s: %w", tokenID, caller.Hex(), types.ErrNotTokenOwner)
	}
	if to == (common.Address{}) {
		return fmt.Errorf("transfer to: %w", types.ErrZeroAddress)
	}
	if from == to {
		return nil
	}

	token.Owner = to
	if err := l.st.SetToken(token); err != nil {
		return err
	}
	if err := l.adjustBalance(from, -1); err != nil {
		return err
	}
	if err := l.adjustBalance(to, 1); err != nil {
		return err
	}
	if err := l.commitOwner(tokenID, to); err != nil {
		return err
	}
	logger.Info().Uint64("token", tokenID).Str("from", from.Hex()).Str("to", to.Hex()).Msg("Token transferred")
	return nil
}

func (l *Ledger) Token(tokenID uint64) (*types.Token, error) {
	token, exists, err := l.st.Token(tokenID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("token %d: %w", tokenID, types.ErrTokenNotFound)
	}
	return token, nil
}

func (l *Ledger) OwnerOf(tokenID uint64) (common.Address, error) {
	token, err := l.Token(tokenID)
	if err != nil {
		return common.Address{}, err
	}
	return token.Owner, nil
}

func (l *Ledger) BalanceOf(owner common.Address) (uint64, error) {
	return l.st.OwnerBalance(owner)
}

func (l *Ledger) TotalSupply() (uint64, error) {
	collection, err := l.st.Collection()
	if err != nil {
		return 0, err
	}
	return collection.TotalSupply, nil
}
