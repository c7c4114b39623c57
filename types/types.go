package types

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ShareDenominator is 100% in basis points.
const ShareDenominator = 10000

// NativeAsset identifies the chain's native value in asset-keyed balances.
var NativeAsset = common.Address{}

// MintPath records which entry point issued a token.
type MintPath uint8

const (
	MintPathPublic MintPath = iota
	MintPathWhitelist
	MintPathGameClaim
	MintPathGameWinner
)

func (p MintPath) String() string {
	switch p {
	case MintPathPublic:
		return "public"
	case MintPathWhitelist:
		return "whitelist"
	case MintPathGameClaim:
		return "game-claim"
	case MintPathGameWinner:
		return "game-winner"
	}
	return "unknown"
}

// Round is a price and supply window for public minting.
type Round struct {
	Price         *big.Int
	StartTokenID  uint64
	MaxPerAddress uint64
	CountInRound  uint64
	Minted        uint64
}

// Remaining is the number of tokens the round can still issue.
func (r *Round) Remaining() uint64 {
	return r.CountInRound - r.Minted
}

// Exhausted reports whether the round has issued its full count.
func (r *Round) Exhausted() bool {
	return r.Minted >= r.CountInRound
}

// EndTokenID is one past the last token id of the window.
func (r *Round) EndTokenID() uint64 {
	return r.StartTokenID + r.CountInRound
}

// GameSlot is one claimable game result. The zero value is an unclaimed slot.
type GameSlot struct {
	Index     uint64
	Claimed   bool
	ClaimedBy common.Address
	Score     *big.Int
	Seed      *big.Int
	Redeemed  bool
}

type Token struct {
	TokenID   uint64
	Owner     common.Address
	Path      MintPath
	Soulbound bool
}

type Stakeholders struct {
	CommunityAccount  common.Address
	ArtistsAccount    common.Address
	CommunityShareBps uint64
}

// Genesis holds the parameters fixed when the state is first created.
type Genesis struct {
	ChainID               uint64
	WhitelistMintPrice    *big.Int
	MaxWhitelistMint      uint64
	WhitelistStartTokenID uint64
	WhitelistSupply       uint64
	GameSlots             uint64
	MintOnClaim           bool
	OwnershipHasher       string
}

// WhitelistEndTokenID is one past the last allowlist token id. An unbounded
// window runs to math.MaxUint64.
func (g *Genesis) WhitelistEndTokenID() uint64 {
	if g.WhitelistSupply == 0 {
		return math.MaxUint64
	}
	return g.WhitelistStartTokenID + g.WhitelistSupply
}

// Validate checks the parameters fixed at genesis. Game winner tokens take the
// id of their slot, so the game window [0, GameSlots) must be bounded and must
// end at or before the allowlist window.
func (g *Genesis) Validate() error {
	if g.ChainID == 0 {
		return fmt.Errorf("chain id unset: %w", ErrInvalidGenesis)
	}
	if g.WhitelistMintPrice == nil || g.WhitelistMintPrice.Sign() < 0 {
		return fmt.Errorf("whitelist mint price %v: %w", g.WhitelistMintPrice, ErrInvalidQuantity)
	}
	if g.GameSlots == 0 {
		return fmt.Errorf("unbounded game window covers the allowlist window: %w", ErrOverlappingRoundRange)
	}
	if g.WhitelistStartTokenID < g.GameSlots {
		return fmt.Errorf("allowlist window starts at %d inside game window [0, %d): %w",
			g.WhitelistStartTokenID, g.GameSlots, ErrOverlappingRoundRange)
	}
	if g.WhitelistSupply > math.MaxUint64-g.WhitelistStartTokenID {
		return fmt.Errorf("allowlist window overflows: %w", ErrInvalidGenesis)
	}
	return nil
}

type AdminState struct {
	Owner        common.Address
	PendingOwner common.Address
	Paused       bool
}

type CollectionState struct {
	BaseURI            string
	NotRevealedURI     string
	Revealed           bool
	GameWinnersMinting bool
	WhitelistMinted    uint64
	TotalSupply        uint64
}

// Receipt reports what a paid operation charged. Excess is kept by the
// contract; there is no refund path.
type Receipt struct {
	TokenIDs []uint64
	Required *big.Int
	Paid     *big.Int
	Excess   *big.Int
}

func NewReceipt(tokenIDs []uint64, required, paid *big.Int) *Receipt {
	return &Receipt{
		TokenIDs: tokenIDs,
		Required: new(big.Int).Set(required),
		Paid:     new(big.Int).Set(paid),
		Excess:   new(big.Int).Sub(paid, required),
	}
}

// Split is the outcome of a revenue withdrawal.
type Split struct {
	Asset          common.Address
	Amount         *big.Int
	CommunityShare *big.Int
	ArtistsShare   *big.Int
}

// GenesisConfig is applied once, when an empty store is first opened.
type GenesisConfig struct {
	Owner          common.Address
	Genesis        Genesis
	BaseURI        string
	NotRevealedURI string
	Stakeholders   Stakeholders
}

// TransactionResult reports an applied signed transaction. Receipt is set for
// paid mints and Split for withdrawals.
type TransactionResult struct {
	Sender  common.Address
	Nonce   uint64
	Type    TransactionType
	Receipt *Receipt
	Split   *Split
}
