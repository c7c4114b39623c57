package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

type TransactionType int

const (
	TransactionTypeSubmitGameScore TransactionType = iota
	TransactionTypeSetGamesRoot
	TransactionTypeMint
	TransactionTypeWhitelistMint
	TransactionTypeGameWinnersMint
	TransactionTypeSetWhitelistMerkleRoot
	TransactionTypeSetNewRound
	TransactionTypeSetGameWinnersMinting
	TransactionTypeWithdraw
	TransactionTypeWithdrawTokens
	TransactionTypeDepositTokens
	TransactionTypeSetCommunityWithdrawMainAccount
	TransactionTypeSetArtistsWithdrawAccount
	TransactionTypeSetCommunityRoyaltyShare
	TransactionTypeTransferOwnership
	TransactionTypeAcceptOwnership
	TransactionTypeSetPaused
	TransactionTypeTransferFrom
	TransactionTypeSetBaseURI
	TransactionTypeSetNotRevealedURI
	TransactionTypeReveal
)

var transactionTypeNames = map[TransactionType]string{
	TransactionTypeSubmitGameScore:                 "submitGameScore",
	TransactionTypeSetGamesRoot:                    "setGamesRoot",
	TransactionTypeMint:                            "mint",
	TransactionTypeWhitelistMint:                   "whitelistMint",
	TransactionTypeGameWinnersMint:                 "gameWinnersMint",
	TransactionTypeSetWhitelistMerkleRoot:          "setWhitelistMerkleRoot",
	TransactionTypeSetNewRound:                     "setNewRound",
	TransactionTypeSetGameWinnersMinting:           "setGameWinnersMinting",
	TransactionTypeWithdraw:                        "withdraw",
	TransactionTypeWithdrawTokens:                  "withdrawTokens",
	TransactionTypeDepositTokens:                   "depositTokens",
	TransactionTypeSetCommunityWithdrawMainAccount: "setCommunityWithdrawMainAccount",
	TransactionTypeSetArtistsWithdrawAccount:       "setArtistsWithdrawAccount",
	TransactionTypeSetCommunityRoyaltyShare:        "setCommunityRoyaltyShare",
	TransactionTypeTransferOwnership:               "transferOwnership",
	TransactionTypeAcceptOwnership:                 "acceptOwnership",
	TransactionTypeSetPaused:                       "setPaused",
	TransactionTypeTransferFrom:                    "transferFrom",
	TransactionTypeSetBaseURI:                      "setBaseURI",
	TransactionTypeSetNotRevealedURI:               "setNotRevealedURI",
	TransactionTypeReveal:                          "reveal",
}

func (t TransactionType) String() string {
	if name, ok := transactionTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// TransactionTypeByName resolves the entry point name used in logs and
// transaction files.
func TransactionTypeByName(name string) (TransactionType, bool) {
	for t, n := range transactionTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

type Transaction interface {
	GetTransactionType() TransactionType
}

// NewTransaction returns an empty transaction of type t, ready to be decoded
// into.
func NewTransaction(t TransactionType) (Transaction, error) {
	switch t {
	case TransactionTypeSubmitGameScore:
		return &SubmitGameScoreTransaction{}, nil
	case TransactionTypeSetGamesRoot:
		return &SetGamesRootTransaction{}, nil
	case TransactionTypeMint:
		return &MintTransaction{}, nil
	case TransactionTypeWhitelistMint:
		return &WhitelistMintTransaction{}, nil
	case TransactionTypeGameWinnersMint:
		return &GameWinnersMintTransaction{}, nil
	case TransactionTypeSetWhitelistMerkleRoot:
		return &SetWhitelistMerkleRootTransaction{}, nil
	case TransactionTypeSetNewRound:
		return &SetNewRoundTransaction{}, nil
	case TransactionTypeSetGameWinnersMinting:
		return &SetGameWinnersMintingTransaction{}, nil
	case TransactionTypeWithdraw:
		return &WithdrawTransaction{}, nil
	case TransactionTypeWithdrawTokens:
		return &WithdrawTokensTransaction{}, nil
	case TransactionTypeDepositTokens:
		return &DepositTokensTransaction{}, nil
	case TransactionTypeSetCommunityWithdrawMainAccount:
		return &SetCommunityWithdrawMainAccountTransaction{}, nil
	case TransactionTypeSetArtistsWithdrawAccount:
		return &SetArtistsWithdrawAccountTransaction{}, nil
	case TransactionTypeSetCommunityRoyaltyShare:
		return &SetCommunityRoyaltyShareTransaction{}, nil
	case TransactionTypeTransferOwnership:
		return &TransferOwnershipTransaction{}, nil
	case TransactionTypeAcceptOwnership:
		return &AcceptOwnershipTransaction{}, nil
	case TransactionTypeSetPaused:
		return &SetPausedTransaction{}, nil
	case TransactionTypeTransferFrom:
		return &TransferFromTransaction{}, nil
	case TransactionTypeSetBaseURI:
		return &SetBaseURITransaction{}, nil
	case TransactionTypeSetNotRevealedURI:
		return &SetNotRevealedURITransaction{}, nil
	case TransactionTypeReveal:
		return &RevealTransaction{}, nil
	}
	return nil, ErrUnknownTransaction
}

type SubmitGameScoreTransaction struct {
	Index uint64
	Score *big.Int
	Seed  *big.Int
	Proof []common.Hash
}

func (*SubmitGameScoreTransaction) GetTransactionType() TransactionType {
	return TransactionTypeSubmitGameScore
}

type SetGamesRootTransaction struct {
	Root common.Hash
}

func (*SetGamesRootTransaction) GetTransactionType() TransactionType {
	return TransactionTypeSetGamesRoot
}

type MintTransaction struct {
	Quantity uint64
	Value    *big.Int
}

func (*MintTransaction) GetTransactionType() TransactionType {
	return TransactionTypeMint
}

type WhitelistMintTransaction struct {
	Quantity uint64
	Proof    []common.Hash
	Value    *big.Int
}

func (*WhitelistMintTransaction) GetTransactionType() TransactionType {
	return TransactionTypeWhitelistMint
}

type GameWinnersMintTransaction struct {
	GameIndex uint64
	Value     *big.Int
}

func (*GameWinnersMintTransaction) GetTransactionType() TransactionType {
	return TransactionTypeGameWinnersMint
}

type SetWhitelistMerkleRootTransaction struct {
	Root common.Hash
}

func (*SetWhitelistMerkleRootTransaction) GetTransactionType() TransactionType {
	return TransactionTypeSetWhitelistMerkleRoot
}

type SetNewRoundTransaction struct {
	Price         *big.Int
	StartTokenID  uint64
	MaxPerAddress uint64
	CountInRound  uint64
}

func (*SetNewRoundTransaction) GetTransactionType() TransactionType {
	return TransactionTypeSetNewRound
}

type SetGameWinnersMintingTransaction struct {
	Enabled bool
}

func (*SetGameWinnersMintingTransaction) GetTransactionType() TransactionType {
	return TransactionTypeSetGameWinnersMinting
}

type WithdrawTransaction struct {
	Amount *big.Int
}

func (*WithdrawTransaction) GetTransactionType() TransactionType {
	return TransactionTypeWithdraw
}

type WithdrawTokensTransaction struct {
	Token  common.Address
	Amount *big.Int
}

func (*WithdrawTokensTransaction) GetTransactionType() TransactionType {
	return TransactionTypeWithdrawTokens
}

type DepositTokensTransaction struct {
	Token  common.Address
	Amount *big.Int
}

func (*DepositTokensTransaction) GetTransactionType() TransactionType {
	return TransactionTypeDepositTokens
}

type SetCommunityWithdrawMainAccountTransaction struct {
	Account common.Address
}

func (*SetCommunityWithdrawMainAccountTransaction) GetTransactionType() TransactionType {
	return TransactionTypeSetCommunityWithdrawMainAccount
}

type SetArtistsWithdrawAccountTransaction struct {
	Account common.Address
}

func (*SetArtistsWithdrawAccountTransaction) GetTransactionType() TransactionType {
	return TransactionTypeSetArtistsWithdrawAccount
}

type SetCommunityRoyaltyShareTransaction struct {
	ShareBps uint64
}

func (*SetCommunityRoyaltyShareTransaction) GetTransactionType() TransactionType {
	return TransactionTypeSetCommunityRoyaltyShare
}

type TransferOwnershipTransaction struct {
	NewOwner common.Address
}

func (*TransferOwnershipTransaction) GetTransactionType() TransactionType {
	return TransactionTypeTransferOwnership
}

type AcceptOwnershipTransaction struct{}

func (*AcceptOwnershipTransaction) GetTransactionType() TransactionType {
	return TransactionTypeAcceptOwnership
}

type SetPausedTransaction struct {
	Paused bool
}

func (*SetPausedTransaction) GetTransactionType() TransactionType {
	return TransactionTypeSetPaused
}

type TransferFromTransaction struct {
	From    common.Address
	To      common.Address
	TokenID uint64
}

func (*TransferFromTransaction) GetTransactionType() TransactionType {
	return TransactionTypeTransferFrom
}

type SetBaseURITransaction struct {
	URI string
}

func (*SetBaseURITransaction) GetTransactionType() TransactionType {
	return TransactionTypeSetBaseURI
}

type SetNotRevealedURITransaction struct {
	URI string
}

func (*SetNotRevealedURITransaction) GetTransactionType() TransactionType {
	return TransactionTypeSetNotRevealedURI
}

type RevealTransaction struct{}

func (*RevealTransaction) GetTransactionType() TransactionType {
	return TransactionTypeReveal
}

// SignedTransaction carries the sender's signature over SigningPayload. The
// chain id must match the store's and the nonce must equal the sender's next
// nonce for the transaction to apply.
type SignedTransaction struct {
	ChainID     uint64
	Nonce       uint64
	Transaction Transaction
	Signature   []byte
}

func (stx *SignedTransaction) SigningPayload() ([]byte, error) {
	return SigningPayload(stx.Transaction, stx.ChainID, stx.Nonce)
}

// SigningPayload is rlp([chainID, type, nonce, tx]).
func SigningPayload(tx Transaction, chainID uint64, nonce uint64) ([]byte, error) {
	return rlp.EncodeToBytes([]interface{}{
		chainID,
		uint64(tx.GetTransactionType()),
		nonce,
		tx,
	})
}
