package types

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Serializer ABI-encodes the records kept in storage.
type Serializer struct {
	typeRegistry             *typeRegistry
	roundArguments           abi.Arguments
	gameSlotArguments        abi.Arguments
	tokenArguments           abi.Arguments
	stakeholdersArguments    abi.Arguments
	genesisArguments         abi.Arguments
	adminStateArguments      abi.Arguments
	collectionStateArguments abi.Arguments
}

func NewSerializer() (*Serializer, error) {
	r, err := newTypeRegistry()
	if err != nil {
		return nil, err
	}
	return &Serializer{
		typeRegistry: r,
		roundArguments: r.arguments(
			field{"price", r.uint256Ty},
			field{"startTokenId", r.uint64Ty},
			field{"maxPerAddress", r.uint64Ty},
			field{"countInRound", r.uint64Ty},
			field{"minted", r.uint64Ty},
		),
		gameSlotArguments: r.arguments(
			field{"index", r.uint64Ty},
			field{"claimed", r.boolTy},
			field{"claimedBy", r.addressTy},
			field{"score", r.uint256Ty},
			field{"seed", r.uint256Ty},
			field{"redeemed", r.boolTy},
		),
		tokenArguments: r.arguments(
			field{"tokenId", r.uint64Ty},
			field{"owner", r.addressTy},
			field{"path", r.uint8Ty},
			field{"soulbound", r.boolTy},
		),
		stakeholdersArguments: r.arguments(
			field{"communityAccount", r.addressTy},
			field{"artistsAccount", r.addressTy},
			field{"communityShareBps", r.uint64Ty},
		),
		genesisArguments: r.arguments(
			field{"chainId", r.uint64Ty},
			field{"whitelistMintPrice", r.uint256Ty},
			field{"maxWhitelistMint", r.uint64Ty},
			field{"whitelistStartTokenId", r.uint64Ty},
			field{"whitelistSupply", r.uint64Ty},
			field{"gameSlots", r.uint64Ty},
			field{"mintOnClaim", r.boolTy},
			field{"ownershipHasher", r.stringTy},
		),
		adminStateArguments: r.arguments(
			field{"owner", r.addressTy},
			field{"pendingOwner", r.addressTy},
			field{"paused", r.boolTy},
		),
		collectionStateArguments: r.arguments(
			field{"baseURI", r.stringTy},
			field{"notRevealedURI", r.stringTy},
			field{"revealed", r.boolTy},
			field{"gameWinnersMinting", r.boolTy},
			field{"whitelistMinted", r.uint64Ty},
			field{"totalSupply", r.uint64Ty},
		),
	}, nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

// unpack decodes data and checks the element count so the type assertions in
// the Deserialize methods cannot index out of range.
func unpack(args abi.Arguments, data []byte, what string) ([]interface{}, error) {
	values, err := args.UnpackValues(data)
	if err != nil {
		return nil, fmt.Errorf("Deserialize %s, data %x: %w", what, data, err)
	}
	if len(values) != len(args) {
		return nil, fmt.Errorf("Deserialize %s: got %d values, want %d", what, len(values), len(args))
	}
	return values, nil
}

func (s *Serializer) SerializeRound(round *Round) ([]byte, error) {
	data, err := s.roundArguments.Pack(
		orZero(round.Price),
		round.StartTokenID,
		round.MaxPerAddress,
		round.CountInRound,
		round.Minted,
	)
	if err != nil {
		return nil, fmt.Errorf("Serialize Round %v: %w", round, err)
	}
	return data, nil
}

func (s *Serializer) DeserializeRound(data []byte) (*Round, error) {
	values, err := unpack(s.roundArguments, data, "Round")
	if err != nil {
		return nil, err
	}
	return &Round{
		Price:         values[0].(*big.Int),
		StartTokenID:  values[1].(uint64),
		MaxPerAddress: values[2].(uint64),
		CountInRound:  values[3].(uint64),
		Minted:        values[4].(uint64),
	}, nil
}

func (s *Serializer) SerializeGameSlot(slot *GameSlot) ([]byte, error) {
	data, err := s.gameSlotArguments.Pack(
		slot.Index,
		slot.Claimed,
		slot.ClaimedBy,
		orZero(slot.Score),
		orZero(slot.Seed),
		slot.Redeemed,
	)
	if err != nil {
		return nil, fmt.Errorf("Serialize GameSlot %v: %w", slot, err)
	}
	return data, nil
}

func (s *Serializer) DeserializeGameSlot(data []byte) (*GameSlot, error) {
	values, err := unpack(s.gameSlotArguments, data, "GameSlot")
	if err != nil {
		return nil, err
	}
	return &GameSlot{
		Index:     values[0].(uint64),
		Claimed:   values[1].(bool),
		ClaimedBy: values[2].(common.Address),
		Score:     values[3].(*big.Int),
		Seed:      values[4].(*big.Int),
		Redeemed:  values[5].(bool),
	}, nil
}

func (s *Serializer) SerializeToken(token *Token) ([]byte, error) {
	data, err := s.tokenArguments.Pack(
		token.TokenID,
		token.Owner,
		uint8(token.Path),
		token.Soulbound,
	)
	if err != nil {
		return nil, fmt.Errorf("Serialize Token %v: %w", token, err)
	}
	return data, nil
}

func (s *Serializer) DeserializeToken(data []byte) (*Token, error) {
	values, err := unpack(s.tokenArguments, data, "Token")
	if err != nil {
		return nil, err
	}
	return &Token{
		TokenID:   values[0].(uint64),
		Owner:     values[1].(common.Address),
		Path:      MintPath(values[2].(uint8)),
		Soulbound: values[3].(bool),
	}, nil
}

func (s *Serializer) SerializeStakeholders(st *Stakeholders) ([]byte, error) {
	data, err := s.stakeholdersArguments.Pack(
		st.CommunityAccount,
		st.ArtistsAccount,
		st.CommunityShareBps,
	)
	if err != nil {
		return nil, fmt.Errorf("Serialize Stakeholders %v: %w", st, err)
	}
	return data, nil
}

func (s *Serializer) DeserializeStakeholders(data []byte) (*Stakeholders, error) {
	values, err := unpack(s.stakeholdersArguments, data, "Stakeholders")
	if err != nil {
		return nil, err
	}
	return &Stakeholders{
		CommunityAccount:  values[0].(common.Address),
		ArtistsAccount:    values[1].(common.Address),
		CommunityShareBps: values[2].(uint64),
	}, nil
}

func (s *Serializer) SerializeGenesis(g *Genesis) ([]byte, error) {
	data, err := s.genesisArguments.Pack(
		g.ChainID,
		orZero(g.WhitelistMintPrice),
		g.MaxWhitelistMint,
		g.WhitelistStartTokenID,
		g.WhitelistSupply,
		g.GameSlots,
		g.MintOnClaim,
		g.OwnershipHasher,
	)
	if err != nil {
		return nil, fmt.Errorf("Serialize Genesis %v: %w", g, err)
	}
	return data, nil
}

func (s *Serializer) DeserializeGenesis(data []byte) (*Genesis, error) {
	values, err := unpack(s.genesisArguments, data, "Genesis")
	if err != nil {
		return nil, err
	}
	return &Genesis{
		ChainID:               values[0].(uint64),
		WhitelistMintPrice:    values[1].(*big.Int),
		MaxWhitelistMint:      values[2].(uint64),
		WhitelistStartTokenID: values[3].(uint64),
		WhitelistSupply:       values[4].(uint64),
		GameSlots:             values[5].(uint64),
		MintOnClaim:           values[6].(bool),
		OwnershipHasher:       values[7].(string),
	}, nil
}

func (s *Serializer) SerializeAdminState(a *AdminState) ([]byte, error) {
	data, err := s.adminStateArguments.Pack(a.Owner, a.PendingOwner, a.Paused)
	if err != nil {
		return nil, fmt.Errorf("Serialize AdminState %v: %w", a, err)
	}
	return data, nil
}

func (s *Serializer) DeserializeAdminState(data []byte) (*AdminState, error) {
	values, err := unpack(s.adminStateArguments, data, "AdminState")
	if err != nil {
		return nil, err
	}
	return &AdminState{
		Owner:        values[0].(common.Address),
		PendingOwner: values[1].(common.Address),
		Paused:       values[2].(bool),
	}, nil
}

func (s *Serializer) SerializeCollectionState(c *CollectionState) ([]byte, error) {
	data, err := s.collectionStateArguments.Pack(
		c.BaseURI,
		c.NotRevealedURI,
		c.Revealed,
		c.GameWinnersMinting,
		c.WhitelistMinted,
		c.TotalSupply,
	)
	if err != nil {
		return nil, fmt.Errorf("Serialize CollectionState %v: %w", c, err)
	}
	return data, nil
}

func (s *Serializer) DeserializeCollectionState(data []byte) (*CollectionState, error) {
	values, err := unpack(s.collectionStateArguments, data, "CollectionState")
	if err != nil {
		return nil, err
	}
	return &CollectionState{
		BaseURI:            values[0].(string),
		NotRevealedURI:     values[1].(string),
		Revealed:           values[2].(bool),
		GameWinnersMinting: values[3].(bool),
		WhitelistMinted:    values[4].(uint64),
		TotalSupply:        values[5].(uint64),
	}, nil
}
