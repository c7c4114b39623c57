// Package registry adjudicates game score submissions against the published
// game results root. Each slot is claimed at most once.
package registry

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/celer-network/go-animaverse/access"
	"github.com/celer-network/go-animaverse/log"
	"github.com/celer-network/go-animaverse/merkle"
	"github.com/celer-network/go-animaverse/state"
	"github.com/celer-network/go-animaverse/types"
)

var logger = log.NewLogger("registry")

// Issuer mints the token tied to a claimed slot when claims mint directly.
type Issuer interface {
	IssueWinnerToken(owner common.Address, tokenID uint64) error
}

type Registry struct {
	st      *state.State
	genesis *types.Genesis
	issuer  Issuer
}

func New(st *state.State, issuer Issuer) (*Registry, error) {
	genesis, err := st.Genesis()
	if err != nil {
		return nil, err
	}
	return &Registry{st: st, genesis: genesis, issuer: issuer}, nil
}

// SubmitGameScore claims slot index for caller if (index, score, seed) is a
// leaf under the games root. A claimed slot rejects every later submission
// with ErrAlreadyClaimed, whatever its proof.
func (r *Registry) SubmitGameScore(caller common.Address, index uint64, score, seed *big.Int, proof []common.Hash) error {
	if err := access.Paused(r.st); err != nil {
		return err
	}
	slot, err := r.st.GameSlot(index)
	if err != nil {
		return err
	}
	if slot.Claimed {
		return fmt.Errorf("slot %d claimed by %s: %w", index, slot.ClaimedBy.Hex(), types.ErrAlreadyClaimed)
	}
	if !r.verify(index, score, seed, proof) {
		return fmt.Errorf("slot %d: %w", index, types.ErrInvalidProof)
	}

	slot.Claimed = true
	slot.ClaimedBy = caller
	slot.Score = new(big.Int).Set(score)
	slot.Seed = new(big.Int).Set(seed)
	if r.genesis.MintOnClaim {
		if err := r.issuer.IssueWinnerToken(caller, index); err != nil {
			return err
		}
		slot.Redeemed = true
	}
	if err := r.st.SetGameSlot(slot); err != nil {
		return err
	}
	logger.Info().
		Str("caller", caller.Hex()).
		Uint64("index", index).
		Str("score", score.String()).
		Bool("minted", slot.Redeemed).
		Msg("Game slot claimed")
	return nil
}

func (r *Registry) verify(index uint64, score, seed *big.Int, proof []common.Hash) bool {
	if index >= r.genesis.GameSlots {
		return false
	}
	if score == nil || seed == nil || score.Sign() < 0 || seed.Sign() < 0 {
		return false
	}
	root, err := r.st.GamesRoot()
	if err != nil {
		logger.Error().Err(err).Msg("Fail to read games root")
		return false
	}
	leaf := merkle.GameLeaf(new(big.Int).SetUint64(index), score, seed)
	return merkle.Verify(root, leaf, proof)
}

// SetGamesRoot replaces the games root. Claimed slots stay claimed.
func (r *Registry) SetGamesRoot(caller common.Address, root common.Hash) error {
	if err := access.Authorize(r.st, caller); err != nil {
		return err
	}
	if err := r.st.SetGamesRoot(root); err != nil {
		return err
	}
	logger.Info().Str("root", root.Hex()).Msg("Games root set")
	return nil
}

func (r *Registry) GamesRoot() (common.Hash, error) {
	return r.st.GamesRoot()
}

func (r *Registry) GameSlot(index uint64) (*types.GameSlot, error) {
	return r.st.GameSlot(index)
}
