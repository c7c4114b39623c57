package ledger

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/celer-network/go-animaverse/access"
	"github.com/celer-network/go-animaverse/merkle"
	"github.com/celer-network/go-animaverse/types"
)

func checkPayment(required, value *big.Int) error {
	if value == nil || value.Cmp(required) == -1 {
		return fmt.Errorf("required %s, paid %v: %w", required, value, types.ErrInsufficientPayment)
	}
	return nil
}

// collect credits the full payment to the contract. Overpayment is kept.
func (l *Ledger) collect(caller common.Address, required, value *big.Int, tokenIDs []uint64) (*types.Receipt, error) {
	if err := l.st.AddHeldBalance(types.NativeAsset, value); err != nil {
		return nil, err
	}
	receipt := types.NewReceipt(tokenIDs, required, value)
	if receipt.Excess.Sign() > 0 {
		logger.Warn().
			Str("caller", caller.Hex()).
			Str("required", required.String()).
			Str("paid", value.String()).
			Msg("Overpayment kept")
	}
	return receipt, nil
}

// Mint issues quantity sequential tokens from the current round.
func (l *Ledger) Mint(caller common.Address, quantity uint64, value *big.Int) (*types.Receipt, error) {
	if err := access.Paused(l.st); err != nil {
		return nil, err
	}
	if quantity == 0 {
		return nil, types.ErrInvalidQuantity
	}
	roundIndex, round, err := l.st.CurrentRound()
	if err != nil {
		return nil, err
	}
	required := new(big.Int).Mul(round.Price, new(big.Int).SetUint64(quantity))
	if err := checkPayment(required, value); err != nil {
		return nil, err
	}
	if quantity > round.Remaining() {
		return nil, fmt.Errorf("round %d has %d left, requested %d: %w",
			roundIndex, round.Remaining(), quantity, types.ErrRoundCapacityExceeded)
	}
	minted, err := l.st.RoundMintCount(caller, roundIndex)
	if err != nil {
		return nil, err
	}
	if minted > round.MaxPerAddress || quantity > round.MaxPerAddress-minted {
		return nil, fmt.Errorf("round %d: %d minted, cap %d: %w",
			roundIndex, minted, round.MaxPerAddress, types.ErrPerAddressCapExceeded)
	}

	tokenIDs := make([]uint64, 0, quantity)
	for i := uint64(0); i < quantity; i++ {
		tokenID := round.StartTokenID + round.Minted + i
		if err := l.issue(caller, tokenID, types.MintPathPublic, false); err != nil {
			return nil, err
		}
		tokenIDs = append(tokenIDs, tokenID)
	}
	round.Minted += quantity
	if err := l.st.SetRound(roundIndex, round); err != nil {
		return nil, err
	}
	if err := l.st.SetRoundMintCount(caller, roundIndex, minted+quantity); err != nil {
		return nil, err
	}

	receipt, err := l.collect(caller, required, value, tokenIDs)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("caller", caller.Hex()).
		Uint64("round", roundIndex).
		Interface("tokens", tokenIDs).
		Str("paid", value.String()).
		Msg("Minted")
	return receipt, nil
}

// WhitelistMint issues tokens to an allowlisted caller at the fixed allowlist
// price, up to the per-address allowance.
func (l *Ledger) WhitelistMint(caller common.Address, quantity uint64, proof []common.Hash, value *big.Int) (*types.Receipt, error) {
	if err := access.Paused(l.st); err != nil {
		return nil, err
	}
	if quantity == 0 {
		return nil, types.ErrInvalidQuantity
	}
	root, err := l.st.WhitelistRoot()
	if err != nil {
		return nil, err
	}
	if !merkle.Verify(root, merkle.AddressLeaf(caller), proof) {
		return nil, fmt.Errorf("caller %s: %w", caller.Hex(), types.ErrNotWhitelisted)
	}
	minted, err := l.st.WhitelistCount(caller)
	if err != nil {
		return nil, err
	}
	if minted > l.genesis.MaxWhitelistMint || quantity > l.genesis.MaxWhitelistMint-minted {
		return nil, fmt.Errorf("%d minted, allowance %d: %w", minted, l.genesis.MaxWhitelistMint, types.ErrAlreadyMinted)
	}
	required := new(big.Int).Mul(l.genesis.WhitelistMintPrice, new(big.Int).SetUint64(quantity))
	if err := checkPayment(required, value); err != nil {
		return nil, err
	}
	collection, err := l.st.Collection()
	if err != nil {
		return nil, err
	}
	size := l.genesis.WhitelistEndTokenID() - l.genesis.WhitelistStartTokenID
	if collection.WhitelistMinted > size || quantity > size-collection.WhitelistMinted {
		return nil, fmt.Errorf("%d of %d issued: %w", collection.WhitelistMinted, size, types.ErrWhitelistSoldOut)
	}

	tokenIDs := make([]uint64, 0, quantity)
	for i := uint64(0); i < quantity; i++ {
		tokenID := l.genesis.WhitelistStartTokenID + collection.WhitelistMinted + i
		if err := l.issue(caller, tokenID, types.MintPathWhitelist, false); err != nil {
			return nil, err
		}
		tokenIDs = append(tokenIDs, tokenID)
	}
	// issue bumped the total supply, reload before saving the allowlist cursor
	collection, err = l.st.Collection()
	if err != nil {
		return nil, err
	}
	collection.WhitelistMinted += quantity
	if err := l.st.SetCollection(collection); err != nil {
		return nil, err
	}
	if err := l.st.SetWhitelistCount(caller, minted+quantity); err != nil {
		return nil, err
	}

	receipt, err := l.collect(caller, required, value, tokenIDs)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("caller", caller.Hex()).
		Interface("tokens", tokenIDs).
		Str("paid", value.String()).
		Msg("Allowlist minted")
	return receipt, nil
}

// GameWinnersMint redeems a claimed game slot for the token with the same id.
func (l *Ledger) GameWinnersMint(caller common.Address, gameIndex uint64, value *big.Int) (*types.Receipt, error) {
	if err := access.Paused(l.st); err != nil {
		return nil, err
	}
	collection, err := l.st.Collection()
	if err != nil {
		return nil, err
	}
	if !collection.GameWinnersMinting {
		return nil, types.ErrGameWinnersMintingDisabled
	}
	slot, err := l.st.GameSlot(gameIndex)
	if err != nil {
		return nil, err
	}
	if !slot.Claimed || slot.ClaimedBy != caller {
		return nil, fmt.Errorf("slot %d, caller %s: %w", gameIndex, caller.Hex(), types.ErrNotClaimant)
	}
	if slot.Redeemed {
		return nil, fmt.Errorf("slot %d redeemed: %w", gameIndex, types.ErrAlreadyClaimed)
	}
	_, exists, err := l.st.Token(gameIndex)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("token %d: %w", gameIndex, types.ErrTokenAlreadyMinted)
	}
	required := new(big.Int).Set(l.genesis.WhitelistMintPrice)
	if err := checkPayment(required, value); err != nil {
		return nil, err
	}

	if err := l.issue(caller, gameIndex, types.MintPathGameWinner, true); err != nil {
		return nil, err
	}
	slot.Redeemed = true
	if err := l.st.SetGameSlot(slot); err != nil {
		return nil, err
	}

	receipt, err := l.collect(caller, required, value, []uint64{gameIndex})
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("caller", caller.Hex()).
		Uint64("token", gameIndex).
		Str("paid", value.String()).
		Msg("Game winner minted")
	return receipt, nil
}
