// Package state is the typed view of every persisted table. A State wraps one
// storage transaction; nothing it writes is visible until the transaction
// commits.
package state

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/celer-network/go-animaverse/db"
	"github.com/celer-network/go-animaverse/types"
)

// GenesisKey locates the genesis record in db.NamespaceGenesis. A store holding
// it is initialized.
var GenesisKey = []byte("genesis")

var (
	keyGamesRoot     = []byte("games")
	keyWhitelistRoot = []byte("whitelist")
	keyOwnershipRoot = []byte("ownership")
	keyRoundCount    = []byte("count")
	keyAdmin         = []byte("admin")
	keyCollection    = []byte("collection")
	keyStakeholders  = []byte("stakeholders")
)

type State struct {
	tx         db.Transaction
	serializer *types.Serializer
}

func New(tx db.Transaction, serializer *types.Serializer) *State {
	return &State{tx: tx, serializer: serializer}
}

// Tx is the underlying transaction, used as node store by the ownership trie.
func (s *State) Tx() db.Transaction {
	return s.tx
}

func uint64Key(v uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, v)
	return key
}

// TokenIDFromKey decodes a token table key.
func TokenIDFromKey(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}

func joinKey(parts ...[]byte) []byte {
	var key []byte
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

func (s *State) getCounter(namespace []byte, key []byte) (uint64, error) {
	data, exists, err := s.tx.Get(namespace, key)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}
	return new(big.Int).SetBytes(data).Uint64(), nil
}

func (s *State) setCounter(namespace []byte, key []byte, v uint64) error {
	return s.tx.Set(namespace, key, new(big.Int).SetUint64(v).Bytes())
}

func (s *State) getAmount(namespace []byte, key []byte) (*big.Int, error) {
	data, exists, err := s.tx.Get(namespace, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return big.NewInt(0), nil
	}
	return new(big.Int).SetBytes(data), nil
}

func (s *State) setAmount(namespace []byte, key []byte, v *big.Int) error {
	return s.tx.Set(namespace, key, db.ConvNilToBytes(v.Bytes()))
}

func (s *State) getHash(key []byte) (common.Hash, error) {
	data, exists, err := s.tx.Get(db.NamespaceRoot, key)
	if err != nil {
		return common.Hash{}, err
	}
	if !exists {
		return common.Hash{}, nil
	}
	return common.BytesToHash(data), nil
}

func (s *State) GamesRoot() (common.Hash, error) {
	return s.getHash(keyGamesRoot)
}

func (s *State) SetGamesRoot(root common.Hash) error {
	return s.tx.Set(db.NamespaceRoot, keyGamesRoot, root.Bytes())
}

func (s *State) WhitelistRoot() (common.Hash, error) {
	return s.getHash(keyWhitelistRoot)
}

func (s *State) SetWhitelistRoot(root common.Hash) error {
	return s.tx.Set(db.NamespaceRoot, keyWhitelistRoot, root.Bytes())
}

// OwnershipRoot returns nil until the first token is issued.
func (s *State) OwnershipRoot() ([]byte, error) {
	data, exists, err := s.tx.Get(db.NamespaceRoot, keyOwnershipRoot)
	if err != nil || !exists {
		return nil, err
	}
	return data, nil
}

func (s *State) SetOwnershipRoot(root []byte) error {
	return s.tx.Set(db.NamespaceRoot, keyOwnershipRoot, root)
}

// Genesis fails with ErrNotInitialized on a store that was never set up.
func (s *State) Genesis() (*types.Genesis, error) {
	data, exists, err := s.tx.Get(db.NamespaceGenesis, GenesisKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, types.ErrNotInitialized
	}
	return s.serializer.DeserializeGenesis(data)
}

func (s *State) SetGenesis(g *types.Genesis) error {
	data, err := s.serializer.SerializeGenesis(g)
	if err != nil {
		return err
	}
	return s.tx.Set(db.NamespaceGenesis, GenesisKey, data)
}

func (s *State) Admin() (*types.AdminState, error) {
	data, exists, err := s.tx.Get(db.NamespaceAdmin, keyAdmin)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &types.AdminState{}, nil
	}
	return s.serializer.DeserializeAdminState(data)
}

func (s *State) SetAdmin(a *types.AdminState) error {
	data, err := s.serializer.SerializeAdminState(a)
	if err != nil {
		return err
	}
	return s.tx.Set(db.NamespaceAdmin, keyAdmin, data)
}

func (s *State) Collection() (*types.CollectionState, error) {
	data, exists, err := s.tx.Get(db.NamespaceCollectionState, keyCollection)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &types.CollectionState{}, nil
	}
	return s.serializer.DeserializeCollectionState(data)
}

func (s *State) SetCollection(c *types.CollectionState) error {
	data, err := s.serializer.SerializeCollectionState(c)
	if err != nil {
		return err
	}
	return s.tx.Set(db.NamespaceCollectionState, keyCollection, data)
}

func (s *State) Stakeholders() (*types.Stakeholders, error) {
	data, exists, err := s.tx.Get(db.NamespaceStakeholders, keyStakeholders)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &types.Stakeholders{}, nil
	}
	return s.serializer.DeserializeStakeholders(data)
}

func (s *State) SetStakeholders(st *types.Stakeholders) error {
	data, err := s.serializer.SerializeStakeholders(st)
	if err != nil {
		return err
	}
	return s.tx.Set(db.NamespaceStakeholders, keyStakeholders, data)
}

// GameSlot returns an unclaimed slot when nothing was recorded for index.
func (s *State) GameSlot(index uint64) (*types.GameSlot, error) {
	data, exists, err := s.tx.Get(db.NamespaceGameSlot, uint64Key(index))
	if err != nil {
		return nil, err
	}
	if !exists {
		return &types.GameSlot{Index: index, Score: big.NewInt(0), Seed: big.NewInt(0)}, nil
	}
	return s.serializer.DeserializeGameSlot(data)
}

func (s *State) SetGameSlot(slot *types.GameSlot) error {
	data, err := s.serializer.SerializeGameSlot(slot)
	if err != nil {
		return err
	}
	return s.tx.Set(db.NamespaceGameSlot, uint64Key(slot.Index), data)
}

func (s *State) Token(tokenID uint64) (*types.Token, bool, error) {
	data, exists, err := s.tx.Get(db.NamespaceToken, uint64Key(tokenID))
	if err != nil || !exists {
		return nil, false, err
	}
	token, err := s.serializer.DeserializeToken(data)
	if err != nil {
		return nil, false, err
	}
	return token, true, nil
}

// FirstTokenIn returns the lowest issued token id in [start, end).
func (s *State) FirstTokenIn(start, end uint64) (uint64, bool, error) {
	iter := s.tx.Iterator(
		db.PrependNamespace(db.NamespaceToken, uint64Key(start)),
		db.PrependNamespace(db.NamespaceToken, uint64Key(end)),
	)
	defer iter.Close()
	if !iter.Valid() {
		return 0, false, nil
	}
	key, err := iter.Key()
	if err != nil {
		return 0, false, err
	}
	return TokenIDFromKey(db.StripNamespace(db.NamespaceToken, key)), true, nil
}

func (s *State) SetToken(token *types.Token) error {
	data, err := s.serializer.SerializeToken(token)
	if err != nil {
		return err
	}
	return s.tx.Set(db.NamespaceToken, uint64Key(token.TokenID), data)
}

func (s *State) Nonce(account common.Address) (uint64, error) {
	return s.getCounter(db.NamespaceNonce, account.Bytes())
}

func (s *State) SetNonce(account common.Address, nonce uint64) error {
	return s.setCounter(db.NamespaceNonce, account.Bytes(), nonce)
}

func (s *State) OwnerBalance(owner common.Address) (uint64, error) {
	return s.getCounter(db.NamespaceOwnerBalance, owner.Bytes())
}

func (s *State) SetOwnerBalance(owner common.Address, balance uint64) error {
	return s.setCounter(db.NamespaceOwnerBalance, owner.Bytes(), balance)
}

// RoundMintCount is the number of public mints by account within one round.
func (s *State) RoundMintCount(account common.Address, round uint64) (uint64, error) {
	return s.getCounter(db.NamespaceRoundMintCount, joinKey(account.Bytes(), uint64Key(round)))
}

func (s *State) SetRoundMintCount(account common.Address, round uint64, count uint64) error {
	return s.setCounter(db.NamespaceRoundMintCount, joinKey(account.Bytes(), uint64Key(round)), count)
}

// WhitelistCount is the number of allowlist mints by account in total.
func (s *State) WhitelistCount(account common.Address) (uint64, error) {
	return s.getCounter(db.NamespaceWhitelistCount, account.Bytes())
}

func (s *State) SetWhitelistCount(account common.Address, count uint64) error {
	return s.setCounter(db.NamespaceWhitelistCount, account.Bytes(), count)
}
