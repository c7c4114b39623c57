package statemachine

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/celer-network/go-animaverse/access"
	"github.com/celer-network/go-animaverse/db"
	"github.com/celer-network/go-animaverse/ledger"
	"github.com/celer-network/go-animaverse/log"
	"github.com/celer-network/go-animaverse/registry"
	"github.com/celer-network/go-animaverse/smt"
	"github.com/celer-network/go-animaverse/splitter"
	"github.com/celer-network/go-animaverse/state"
	"github.com/celer-network/go-animaverse/types"
)

var logger = log.NewLogger("statemachine")

// StateMachine executes one state-mutating operation at a time. Each operation
// runs in its own storage transaction, committed only if it succeeds.
type StateMachine struct {
	db         db.DB
	serializer *types.Serializer
	chainID    uint64
	lock       sync.RWMutex
}

type components struct {
	st       *state.State
	ledger   *ledger.Ledger
	registry *registry.Registry
	splitter *splitter.Splitter
}

func newComponents(st *state.State) (*components, error) {
	l, err := ledger.New(st)
	if err != nil {
		return nil, err
	}
	r, err := registry.New(st, l)
	if err != nil {
		return nil, err
	}
	return &components{
		st:       st,
		ledger:   l,
		registry: r,
		splitter: splitter.New(st),
	}, nil
}

// NewStateMachine opens the state in database. On an empty store genesis is
// applied; on an initialized store genesis is ignored and may be nil.
func NewStateMachine(database db.DB, genesis *types.GenesisConfig) (*StateMachine, error) {
	serializer, err := types.NewSerializer()
	if err != nil {
		return nil, err
	}
	sm := &StateMachine{
		db:         database,
		serializer: serializer,
	}

	initialized, err := database.Exist(db.NamespaceGenesis, state.GenesisKey)
	if err != nil {
		return nil, err
	}
	if initialized {
		if err := sm.view(func(c *components) error {
			g, err := c.st.Genesis()
			if err != nil {
				return err
			}
			sm.chainID = g.ChainID
			return nil
		}); err != nil {
			return nil, err
		}
		logger.Info().Str("db", database.Type()).Uint64("chainID", sm.chainID).Msg("Restored state")
		return sm, nil
	}
	if genesis == nil {
		return nil, types.ErrNotInitialized
	}

	tx := database.NewTx()
	st := state.New(tx, serializer)
	if err := applyGenesis(st, genesis); err != nil {
		tx.Discard()
		return nil, fmt.Errorf("genesis: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	sm.chainID = genesis.Genesis.ChainID
	logger.Info().
		Str("db", database.Type()).
		Uint64("chainID", sm.chainID).
		Str("owner", genesis.Owner.Hex()).
		Uint64("gameSlots", genesis.Genesis.GameSlots).
		Bool("mintOnClaim", genesis.Genesis.MintOnClaim).
		Msg("Applied genesis")
	return sm, nil
}

func applyGenesis(st *state.State, genesis *types.GenesisConfig) error {
	g := genesis.Genesis
	if err := g.Validate(); err != nil {
		return err
	}
	if genesis.Stakeholders.CommunityShareBps > types.ShareDenominator {
		return fmt.Errorf("share %d bps: %w", genesis.Stakeholders.CommunityShareBps, types.ErrInvalidShare)
	}
	if _, err := smt.NewHasher(g.OwnershipHasher); err != nil {
		return err
	}
	if err := access.Init(st, genesis.Owner); err != nil {
		return err
	}
	if err := st.SetGenesis(&g); err != nil {
		return err
	}
	if err := st.SetCollection(&types.CollectionState{
		BaseURI:        genesis.BaseURI,
		NotRevealedURI: genesis.NotRevealedURI,
	}); err != nil {
		return err
	}
	stakeholders := genesis.Stakeholders
	return st.SetStakeholders(&stakeholders)
}

// ChainID is the chain id signed envelopes must carry.
func (sm *StateMachine) ChainID() uint64 {
	return sm.chainID
}

// execute runs fn under the writer lock in a fresh transaction.
func (sm *StateMachine) execute(op string, caller common.Address, fn func(c *components) error) error {
	sm.lock.Lock()
	defer sm.lock.Unlock()

	tx := sm.db.NewTx()
	c, err := newComponents(state.New(tx, sm.serializer))
	if err == nil {
		err = fn(c)
	}
	if err != nil {
		tx.Discard()
		logger.Debug().Err(err).Str("op", op).Str("caller", caller.Hex()).Msg("Operation rejected")
		return err
	}
	return tx.Commit()
}

// view runs fn against committed state. Its transaction is always discarded.
func (sm *StateMachine) view(fn func(c *components) error) error {
	sm.lock.RLock()
	defer sm.lock.RUnlock()

	tx := sm.db.NewTx()
	defer tx.Discard()
	c, err := newComponents(state.New(tx, sm.serializer))
	if err != nil {
		return err
	}
	return fn(c)
}

func (sm *StateMachine) SubmitGameScore(caller common.Address, index uint64, score, seed *big.Int, proof []common.Hash) error {
	return sm.execute("submitGameScore", caller, func(c *components) error {
		return c.registry.SubmitGameScore(caller, index, score, seed, proof)
	})
}

func (sm *StateMachine) SetGamesRoot(caller common.Address, root common.Hash) error {
	return sm.execute("setGamesRoot", caller, func(c *components) error {
		return c.registry.SetGamesRoot(caller, root)
	})
}

func (sm *StateMachine) Mint(caller common.Address, quantity uint64, value *big.Int) (*types.Receipt, error) {
	var receipt *types.Receipt
	err := sm.execute("mint", caller, func(c *components) (err error) {
		receipt, err = c.ledger.Mint(caller, quantity, value)
		return err
	})
	return receipt, err
}

func (sm *StateMachine) WhitelistMint(caller common.Address, quantity uint64, proof []common.Hash, value *big.Int) (*types.Receipt, error) {
	var receipt *types.Receipt
	err := sm.execute("whitelistMint", caller, func(c *components) (err error) {
		receipt, err = c.ledger.WhitelistMint(caller, quantity, proof, value)
		return err
	})
	return receipt, err
}

func (sm *StateMachine) GameWinnersMint(caller common.Address, gameIndex uint64, value *big.Int) (*types.Receipt, error) {
	var receipt *types.Receipt
	err := sm.execute("gameWinnersMint", caller, func(c *components) (err error) {
		receipt, err = c.ledger.GameWinnersMint(caller, gameIndex, value)
		return err
	})
	return receipt, err
}

func (sm *StateMachine) SetWhitelistMerkleRoot(caller common.Address, root common.Hash) error {
	return sm.execute("setWhitelistMerkleRoot", caller, func(c *components) error {
		return c.ledger.SetWhitelistMerkleRoot(caller, root)
	})
}

func (sm *StateMachine) SetNewRound(caller common.Address, price *big.Int, startTokenID, maxPerAddress, countInRound uint64) error {
	return sm.execute("setNewRound", caller, func(c *components) error {
		return c.ledger.SetNewRound(caller, price, startTokenID, maxPerAddress, countInRound)
	})
}

func (sm *StateMachine) SetGameWinnersMinting(caller common.Address, enabled bool) error {
	return sm.execute("setGameWinnersMinting", caller, func(c *components) error {
		return c.ledger.SetGameWinnersMinting(caller, enabled)
	})
}

func (sm *StateMachine) TransferFrom(caller, from, to common.Address, tokenID uint64) error {
	return sm.execute("transferFrom", caller, func(c *components) error {
		return c.ledger.TransferFrom(caller, from, to, tokenID)
	})
}

func (sm *StateMachine) SetBaseURI(caller common.Address, uri string) error {
	return sm.execute("setBaseURI", caller, func(c *components) error {
		return c.ledger.SetBaseURI(caller, uri)
	})
}

func (sm *StateMachine) SetNotRevealedURI(caller common.Address, uri string) error {
	return sm.execute("setNotRevealedURI", caller, func(c *components) error {
		return c.ledger.SetNotRevealedURI(caller, uri)
	})
}

func (sm *StateMachine) Reveal(caller common.Address) error {
	return sm.execute("reveal", caller, func(c *components) error {
		return c.ledger.Reveal(caller)
	})
}

func (sm *StateMachine) Withdraw(caller common.Address, amount *big.Int) (*types.Split, error) {
	var split *types.Split
	err := sm.execute("withdraw", caller, func(c *components) (err error) {
		split, err = c.splitter.Withdraw(caller, amount)
		return err
	})
	return split, err
}

func (sm *StateMachine) WithdrawTokens(caller common.Address, token common.Address, amount *big.Int) (*types.Split, error) {
	var split *types.Split
	err := sm.execute("withdrawTokens", caller, func(c *components) (err error) {
		split, err = c.splitter.WithdrawTokens(caller, token, amount)
		return err
	})
	return split, err
}

func (sm *StateMachine) DepositTokens(caller common.Address, token common.Address, amount *big.Int) error {
	return sm.execute("depositTokens", caller, func(c *components) error {
		return c.splitter.DepositTokens(caller, token, amount)
	})
}

func (sm *StateMachine) SetCommunityWithdrawMainAccount(caller common.Address, account common.Address) error {
	return sm.execute("setCommunityWithdrawMainAccount", caller, func(c *components) error {
		return c.splitter.SetCommunityWithdrawMainAccount(caller, account)
	})
}

func (sm *StateMachine) SetArtistsWithdrawAccount(caller common.Address, account common.Address) error {
	return sm.execute("setArtistsWithdrawAccount", caller, func(c *components) error {
		return c.splitter.SetArtistsWithdrawAccount(caller, account)
	})
}

func (sm *StateMachine) SetCommunityRoyaltyShare(caller common.Address, bps uint64) error {
	return sm.execute("setCommunityRoyaltyShare", caller, func(c *components) error {
		return c.splitter.SetCommunityRoyaltyShare(caller, bps)
	})
}

func (sm *StateMachine) TransferOwnership(caller common.Address, newOwner common.Address) error {
	return sm.execute("transferOwnership", caller, func(c *components) error {
		return access.TransferOwnership(c.st, caller, newOwner)
	})
}

func (sm *StateMachine) AcceptOwnership(caller common.Address) error {
	return sm.execute("acceptOwnership", caller, func(c *components) error {
		return access.AcceptOwnership(c.st, caller)
	})
}

func (sm *StateMachine) SetPaused(caller common.Address, paused bool) error {
	return sm.execute("setPaused", caller, func(c *components) error {
		return access.SetPaused(c.st, caller, paused)
	})
}
