package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/celer-network/go-animaverse/statemachine"
	"github.com/celer-network/go-animaverse/types"
)

type roundInfo struct {
	Price         string `yaml:"price"`
	StartTokenID  uint64 `yaml:"start_token_id"`
	MaxPerAddress uint64 `yaml:"max_per_address"`
	CountInRound  uint64 `yaml:"count_in_round"`
	Minted        uint64 `yaml:"minted"`
}

type info struct {
	ChainID            uint64      `yaml:"chain_id"`
	Owner              string      `yaml:"owner"`
	PendingOwner       string      `yaml:"pending_owner,omitempty"`
	Paused             bool        `yaml:"paused"`
	GamesRoot          string      `yaml:"games_root"`
	WhitelistRoot      string      `yaml:"whitelist_root"`
	OwnershipRoot      string      `yaml:"ownership_root"`
	Revealed           bool        `yaml:"revealed"`
	GameWinnersMinting bool        `yaml:"game_winners_minting"`
	WhitelistMinted    uint64      `yaml:"whitelist_minted"`
	TotalSupply        uint64      `yaml:"total_supply"`
	Rounds             []roundInfo `yaml:"rounds"`
	HeldBalance        string      `yaml:"held_balance"`
	CommunityAccount   string      `yaml:"community_account"`
	CommunityBalance   string      `yaml:"community_balance"`
	ArtistsAccount     string      `yaml:"artists_account"`
	ArtistsBalance     string      `yaml:"artists_balance"`
	CommunityShareBps  uint64      `yaml:"community_share_bps"`
}

func collectInfo(sm *statemachine.StateMachine) (*info, error) {
	admin, err := sm.Admin()
	if err != nil {
		return nil, err
	}
	collection, err := sm.Collection()
	if err != nil {
		return nil, err
	}
	gamesRoot, err := sm.GamesRoot()
	if err != nil {
		return nil, err
	}
	whitelistRoot, err := sm.WhitelistRoot()
	if err != nil {
		return nil, err
	}
	ownershipRoot, err := sm.OwnershipRoot()
	if err != nil {
		return nil, err
	}
	rounds, err := sm.Rounds()
	if err != nil {
		return nil, err
	}
	held, err := sm.HeldBalance(types.NativeAsset)
	if err != nil {
		return nil, err
	}
	stakeholders, err := sm.Stakeholders()
	if err != nil {
		return nil, err
	}
	communityBalance, err := sm.BalanceOfAsset(types.NativeAsset, stakeholders.CommunityAccount)
	if err != nil {
		return nil, err
	}
	artistsBalance, err := sm.BalanceOfAsset(types.NativeAsset, stakeholders.ArtistsAccount)
	if err != nil {
		return nil, err
	}

	out := &info{
		ChainID:            sm.ChainID(),
		Owner:              admin.Owner.Hex(),
		Paused:             admin.Paused,
		GamesRoot:          gamesRoot.Hex(),
		WhitelistRoot:      whitelistRoot.Hex(),
		OwnershipRoot:      hexutil.Encode(ownershipRoot),
		Revealed:           collection.Revealed,
		GameWinnersMinting: collection.GameWinnersMinting,
		WhitelistMinted:    collection.WhitelistMinted,
		TotalSupply:        collection.TotalSupply,
		HeldBalance:        held.String(),
		CommunityAccount:   stakeholders.CommunityAccount.Hex(),
		CommunityBalance:   communityBalance.String(),
		ArtistsAccount:     stakeholders.ArtistsAccount.Hex(),
		ArtistsBalance:     artistsBalance.String(),
		CommunityShareBps:  stakeholders.CommunityShareBps,
	}
	if admin.PendingOwner != (common.Address{}) {
		out.PendingOwner = admin.PendingOwner.Hex()
	}
	for _, r := range rounds {
		out.Rounds = append(out.Rounds, roundInfo{
			Price:         r.Price.String(),
			StartTokenID:  r.StartTokenID,
			MaxPerAddress: r.MaxPerAddress,
			CountInRound:  r.CountInRound,
			Minted:        r.Minted,
		})
	}
	return out, nil
}

func InfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "print the collection state",
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, closeDB, err := openStateMachine(viper.GetString(flagConfig))
			if err != nil {
				return err
			}
			defer closeDB()

			out, err := collectInfo(sm)
			if err != nil {
				return fmt.Errorf("info: %w", err)
			}
			return writeYAML("", out)
		},
	}
	cmd.Flags().String(flagConfig, "./config.yaml", "deployment config path")
	return cmd
}
