// Package splitter pays out the contract's balances to the community and
// artists accounts by basis-point share.
package splitter

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/celer-network/go-animaverse/access"
	"github.com/celer-network/go-animaverse/log"
	"github.com/celer-network/go-animaverse/state"
	"github.com/celer-network/go-animaverse/types"
)

var logger = log.NewLogger("splitter")

var denominator = big.NewInt(types.ShareDenominator)

// Split returns amount*bps/10000 for the community and the rest for the
// artists, so the truncated remainder always goes to the artists.
func Split(amount *big.Int, bps uint64) (community *big.Int, artists *big.Int) {
	community = new(big.Int).Mul(amount, new(big.Int).SetUint64(bps))
	community.Quo(community, denominator)
	artists = new(big.Int).Sub(amount, community)
	return community, artists
}

type Splitter struct {
	st *state.State
}

func New(st *state.State) *Splitter {
	return &Splitter{st: st}
}

// Withdraw splits amount of the held native balance between the payees.
func (s *Splitter) Withdraw(caller common.Address, amount *big.Int) (*types.Split, error) {
	return s.withdraw(caller, types.NativeAsset, amount)
}

// WithdrawTokens splits amount of a held fungible token balance.
func (s *Splitter) WithdrawTokens(caller common.Address, token common.Address, amount *big.Int) (*types.Split, error) {
	if token == types.NativeAsset {
		return nil, fmt.Errorf("token: %w", types.ErrZeroAddress)
	}
	return s.withdraw(caller, token, amount)
}

func (s *Splitter) withdraw(caller common.Address, asset common.Address, amount *big.Int) (*types.Split, error) {
	if err := access.Authorize(s.st, caller); err != nil {
		return nil, err
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, fmt.Errorf("withdraw amount %v: %w", amount, types.ErrInvalidQuantity)
	}
	stakeholders, err := s.st.Stakeholders()
	if err != nil {
		return nil, err
	}
	if stakeholders.CommunityAccount == (common.Address{}) {
		return nil, fmt.Errorf("community account: %w", types.ErrZeroAddress)
	}
	if stakeholders.ArtistsAccount == (common.Address{}) {
		return nil, fmt.Errorf("artists account: %w", types.ErrZeroAddress)
	}
	if err := s.st.SubHeldBalance(asset, amount); err != nil {
		return nil, err
	}

	community, artists := Split(amount, stakeholders.CommunityShareBps)
	if err := s.st.AddAssetBalance(asset, stakeholders.CommunityAccount, community); err != nil {
		return nil, err
	}
	if err := s.st.AddAssetBalance(asset, stakeholders.ArtistsAccount, artists); err != nil {
		return nil, err
	}

	logger.Info().
		Str("asset", asset.Hex()).
		Str("amount", amount.String()).
		Str("community", community.String()).
		Str("artists", artists.String()).
		Uint64("bps", stakeholders.CommunityShareBps).
		Msg("Withdrawn")
	return &types.Split{
		Asset:          asset,
		Amount:         new(big.Int).Set(amount),
		CommunityShare: community,
		ArtistsShare:   artists,
	}, nil
}

// DepositTokens credits a fungible token balance held by the contract.
func (s *Splitter) DepositTokens(caller common.Address, token common.Address, amount *big.Int) error {
	if token == types.NativeAsset {
		return fmt.Errorf("token: %w", types.ErrZeroAddress)
	}
	if amount == nil || amount.Sign() <= 0 {
		return fmt.Errorf("deposit amount %v: %w", amount, types.ErrInvalidQuantity)
	}
	if err := s.st.AddHeldBalance(token, amount); err != nil {
		return err
	}
	logger.Info().Str("caller", caller.Hex()).Str("token", token.Hex()).Str("amount", amount.String()).Msg("Tokens deposited")
	return nil
}

func (s *Splitter) updateStakeholders(caller common.Address, check error, update func(st *types.Stakeholders)) error {
	if err := access.Authorize(s.st, caller); err != nil {
		return err
	}
	if check != nil {
		return check
	}
	stakeholders, err := s.st.Stakeholders()
	if err != nil {
		return err
	}
	update(stakeholders)
	if err := s.st.SetStakeholders(stakeholders); err != nil {
		return err
	}
	logger.Info().
		Str("community", stakeholders.CommunityAccount.Hex()).
		Str("artists", stakeholders.ArtistsAccount.Hex()).
		Uint64("bps", stakeholders.CommunityShareBps).
		Msg("Stakeholders updated")
	return nil
}

func checkAccount(role string, account common.Address) error {
	if account == (common.Address{}) {
		return fmt.Errorf("%s account: %w", role, types.ErrZeroAddress)
	}
	return nil
}

func (s *Splitter) SetCommunityWithdrawMainAccount(caller common.Address, account common.Address) error {
	return s.updateStakeholders(caller, checkAccount("community", account), func(st *types.Stakeholders) {
		st.CommunityAccount = account
	})
}

func (s *Splitter) SetArtistsWithdrawAccount(caller common.Address, account common.Address) error {
	return s.updateStakeholders(caller, checkAccount("artists", account), func(st *types.Stakeholders) {
		st.ArtistsAccount = account
	})
}

func (s *Splitter) SetCommunityRoyaltyShare(caller common.Address, bps uint64) error {
	var check error
	if bps > types.ShareDenominator {
		check = fmt.Errorf("share %d bps: %w", bps, types.ErrInvalidShare)
	}
	return s.updateStakeholders(caller, check, func(st *types.Stakeholders) {
		st.CommunityShareBps = bps
	})
}

func (s *Splitter) Stakeholders() (*types.Stakeholders, error) {
	return s.st.Stakeholders()
}

// BalanceOfAsset is what account has been paid in asset.
func (s *Splitter) BalanceOfAsset(asset common.Address, account common.Address) (*big.Int, error) {
	return s.st.AssetBalance(asset, account)
}

// HeldBalance is what the contract holds in asset.
func (s *Splitter) HeldBalance(asset common.Address) (*big.Int, error) {
	return s.st.HeldBalance(asset)
}
