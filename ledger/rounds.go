package ledger

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/celer-network/go-animaverse/access"
	"github.com/celer-network/go-animaverse/types"
)

type window struct {
	name       string
	start, end uint64
}

func (w window) overlaps(start, end uint64) bool {
	return start < w.end && w.start < end
}

// SetNewRound appends a public round. Its id window must not intersect an
// earlier round, the allowlist window, the game window or any issued token.
func (l *Ledger) SetNewRound(caller common.Address, price *big.Int, startTokenID, maxPerAddress, countInRound uint64) error {
	if err := access.Authorize(l.st, caller); err != nil {
		return err
	}
	if countInRound == 0 {
		return fmt.Errorf("empty round: %w", types.ErrInvalidQuantity)
	}
	if price == nil || price.Sign() < 0 {
		return fmt.Errorf("round price %v: %w", price, types.ErrInvalidQuantity)
	}
	if startTokenID > math.MaxUint64-countInRound {
		return fmt.Errorf("round window overflows: %w", types.ErrOverlappingRoundRange)
	}
	end := startTokenID + countInRound

	windows, err := l.reservedWindows()
	if err != nil {
		return err
	}
	for _, w := range windows {
		if w.overlaps(startTokenID, end) {
			return fmt.Errorf("[%d, %d) intersects %s [%d, %d): %w",
				startTokenID, end, w.name, w.start, w.end, types.ErrOverlappingRoundRange)
		}
	}
	id, issued, err := l.st.FirstTokenIn(startTokenID, end)
	if err != nil {
		return err
	}
	if issued {
		return fmt.Errorf("token %d already issued: %w", id, types.ErrOverlappingRoundRange)
	}

	round := &types.Round{
		Price:         new(big.Int).Set(price),
		StartTokenID:  startTokenID,
		MaxPerAddress: maxPerAddress,
		CountInRound:  countInRound,
	}
	index, err := l.st.AppendRound(round)
	if err != nil {
		return err
	}
	logger.Info().
		Uint64("round", index).
		Str("price", price.String()).
		Uint64("start", startTokenID).
		Uint64("count", countInRound).
		Uint64("maxPerAddress", maxPerAddress).
		Msg("Round appended")
	return nil
}

func (l *Ledger) reservedWindows() ([]window, error) {
	var windows []window
	rounds, err := l.st.Rounds()
	if err != nil {
		return nil, err
	}
	for i, r := range rounds {
		windows = append(windows, window{fmt.Sprintf("round %d", i), r.StartTokenID, r.EndTokenID()})
	}
	windows = append(windows,
		window{"allowlist window", l.genesis.WhitelistStartTokenID, l.genesis.WhitelistEndTokenID()},
		window{"game window", 0, l.genesis.GameSlots},
	)
	return windows, nil
}

func (l *Ledger) Rounds() ([]*types.Round, error) {
	return l.st.Rounds()
}

func (l *Ledger) SetWhitelistMerkleRoot(caller common.Address, root common.Hash) error {
	if err := access.Authorize(l.st, caller); err != nil {
		return err
	}
	if err := l.st.SetWhitelistRoot(root); err != nil {
		return err
	}
	logger.Info().Str("root", root.Hex()).Msg("Allowlist root set")
	return nil
}

func (l *Ledger) SetGameWinnersMinting(caller common.Address, enabled bool) error {
	if err := l.updateCollection(caller, func(c *types.CollectionState) {
		c.GameWinnersMinting = enabled
	}); err != nil {
		return err
	}
	logger.Info().Bool("enabled", enabled).Msg("Game winners minting set")
	return nil
}
