// Package config loads the deployment file: storage location and the genesis
// parameters applied when the store is first created.
package config

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"

	"github.com/celer-network/go-animaverse/db"
	"github.com/celer-network/go-animaverse/db/badgerdb"
	"github.com/celer-network/go-animaverse/db/memorydb"
	"github.com/celer-network/go-animaverse/types"
)

const (
	BackendBadger = "badger"
	BackendMemory = "memory"

	envPrefix = "ANIMAVERSE"
)

const (
	keyOwner                 = "owner"
	keyChainID               = "chain_id"
	keyDBBackend             = "db.backend"
	keyDBDir                 = "db.dir"
	keyWhitelistMintPrice    = "collection.whitelist_mint_price"
	keyMaxWhitelistMint      = "collection.max_whitelist_mint"
	keyWhitelistStartTokenID = "collection.whitelist_start_token_id"
	keyWhitelistSupply       = "collection.whitelist_supply"
	keyGameSlots             = "collection.game_slots"
	keyMintOnClaim           = "collection.mint_on_claim"
	keyBaseURI               = "collection.base_uri"
	keyNotRevealedURI        = "collection.not_revealed_uri"
	keyOwnershipHasher       = "collection.ownership_hasher"
	keyCommunityAccount      = "revenue.community_account"
	keyArtistsAccount        = "revenue.artists_account"
	keyCommunityShareBps     = "revenue.community_share_bps"
)

var (
	errMissingOwner = errors.New("config: owner is required")
	errBadAddress   = errors.New("config: not a hex address")
	errBadAmount    = errors.New("config: not a decimal amount")
	errBadBackend   = errors.New("config: unknown db backend")
)

type Config struct {
	Owner   string `mapstructure:"owner"`
	ChainID uint64 `mapstructure:"chain_id"`
	DB      struct {
		Backend string `mapstructure:"backend"`
		Dir     string `mapstructure:"dir"`
	} `mapstructure:"db"`
	Collection struct {
		WhitelistMintPrice    string `mapstructure:"whitelist_mint_price"`
		MaxWhitelistMint      uint64 `mapstructure:"max_whitelist_mint"`
		WhitelistStartTokenID uint64 `mapstructure:"whitelist_start_token_id"`
		WhitelistSupply       uint64 `mapstructure:"whitelist_supply"`
		GameSlots             uint64 `mapstructure:"game_slots"`
		MintOnClaim           bool   `mapstructure:"mint_on_claim"`
		BaseURI               string `mapstructure:"base_uri"`
		NotRevealedURI        string `mapstructure:"not_revealed_uri"`
		OwnershipHasher       string `mapstructure:"ownership_hasher"`
	} `mapstructure:"collection"`
	Revenue struct {
		CommunityAccount  string `mapstructure:"community_account"`
		ArtistsAccount    string `mapstructure:"artists_account"`
		CommunityShareBps uint64 `mapstructure:"community_share_bps"`
	} `mapstructure:"revenue"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyDBBackend, BackendBadger)
	v.SetDefault(keyDBDir, "./animaverse_db")
	v.SetDefault(keyWhitelistMintPrice, "50000000000000000")
	v.SetDefault(keyMaxWhitelistMint, 2)
	v.SetDefault(keyWhitelistStartTokenID, 1000)
	v.SetDefault(keyWhitelistSupply, 1000)
	v.SetDefault(keyGameSlots, 1000)
	v.SetDefault(keyMintOnClaim, true)
	v.SetDefault(keyBaseURI, "")
	v.SetDefault(keyNotRevealedURI, "")
	v.SetDefault(keyOwnershipHasher, "keccak256")
	v.SetDefault(keyCommunityAccount, "")
	v.SetDefault(keyArtistsAccount, "")
	v.SetDefault(keyCommunityShareBps, 0)
	v.SetDefault(keyOwner, "")
	v.SetDefault(keyChainID, 0)
}

// Load reads the YAML file at path. Any key can be overridden from the
// environment, e.g. ANIMAVERSE_DB_DIR for db.dir.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}
	return c, nil
}

func parseAddress(key, s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%s %q: %w", key, s, errBadAddress)
	}
	return common.HexToAddress(s), nil
}

// Genesis converts the configuration into the parameters fixed at genesis.
func (c *Config) Genesis() (*types.GenesisConfig, error) {
	if c.Owner == "" {
		return nil, errMissingOwner
	}
	owner, err := parseAddress(keyOwner, c.Owner)
	if err != nil {
		return nil, err
	}
	communityAccount, err := parseAddress(keyCommunityAccount, c.Revenue.CommunityAccount)
	if err != nil {
		return nil, err
	}
	artistsAccount, err := parseAddress(keyArtistsAccount, c.Revenue.ArtistsAccount)
	if err != nil {
		return nil, err
	}
	price, ok := new(big.Int).SetString(c.Collection.WhitelistMintPrice, 10)
	if !ok || price.Sign() < 0 {
		return nil, fmt.Errorf("%s %q: %w", keyWhitelistMintPrice, c.Collection.WhitelistMintPrice, errBadAmount)
	}

	return &types.GenesisConfig{
		Owner: owner,
		Genesis: types.Genesis{
			ChainID:               c.ChainID,
			WhitelistMintPrice:    price,
			MaxWhitelistMint:      c.Collection.MaxWhitelistMint,
			WhitelistStartTokenID: c.Collection.WhitelistStartTokenID,
			WhitelistSupply:       c.Collection.WhitelistSupply,
			GameSlots:             c.Collection.GameSlots,
			MintOnClaim:           c.Collection.MintOnClaim,
			OwnershipHasher:       c.Collection.OwnershipHasher,
		},
		BaseURI:        c.Collection.BaseURI,
		NotRevealedURI: c.Collection.NotRevealedURI,
		Stakeholders: types.Stakeholders{
			CommunityAccount:  communityAccount,
			ArtistsAccount:    artistsAccount,
			CommunityShareBps: c.Revenue.CommunityShareBps,
		},
	}, nil
}

// OpenDB opens the configured storage backend.
func (c *Config) OpenDB() (db.DB, error) {
	switch strings.ToLower(c.DB.Backend) {
	case BackendBadger:
		return badgerdb.NewDB(c.DB.Dir)
	case BackendMemory:
		return memorydb.NewDB(), nil
	}
	return nil, fmt.Errorf("%q: %w", c.DB.Backend, errBadBackend)
}
