package statemachine

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/celer-network/go-animaverse/access"
	"github.com/celer-network/go-animaverse/types"
	"github.com/celer-network/go-animaverse/utils"
)

// ApplyTransaction recovers the sender of a signed envelope, checks its nonce
// and runs the wrapped operation. The sender's nonce advances only when the
// operation commits.
func (sm *StateMachine) ApplyTransaction(signedTx *types.SignedTransaction) (*types.TransactionResult, error) {
	if signedTx == nil || signedTx.Transaction == nil {
		return nil, types.ErrUnknownTransaction
	}
	if signedTx.ChainID != sm.chainID {
		return nil, fmt.Errorf("chain id %d, expected %d: %w", signedTx.ChainID, sm.chainID, types.ErrInvalidSignature)
	}
	payload, err := signedTx.SigningPayload()
	if err != nil {
		return nil, err
	}
	sender, err := utils.RecoverSigner(payload, signedTx.Signature)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, types.ErrInvalidSignature)
	}

	tx := signedTx.Transaction
	result := &types.TransactionResult{
		Sender: sender,
		Nonce:  signedTx.Nonce,
		Type:   tx.GetTransactionType(),
	}
	err = sm.execute(tx.GetTransactionType().String(), sender, func(c *components) error {
		nonce, err := c.st.Nonce(sender)
		if err != nil {
			return err
		}
		if nonce != signedTx.Nonce {
			return fmt.Errorf("sender %s: expected nonce %d, got %d: %w", sender.Hex(), nonce, signedTx.Nonce, types.ErrInvalidNonce)
		}
		if err := c.dispatch(sender, tx, result); err != nil {
			return err
		}
		return c.st.SetNonce(sender, nonce+1)
	})
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("sender", sender.Hex()).
		Uint64("nonce", signedTx.Nonce).
		Str("type", tx.GetTransactionType().String()).
		Msg("Applied transaction")
	return result, nil
}

func (c *components) dispatch(sender common.Address, tx types.Transaction, result *types.TransactionResult) error {
	var err error
	switch tx := tx.(type) {
	case *types.SubmitGameScoreTransaction:
		err = c.registry.SubmitGameScore(sender, tx.Index, tx.Score, tx.Seed, tx.Proof)
	case *types.SetGamesRootTransaction:
		err = c.registry.SetGamesRoot(sender, tx.Root)
	case *types.MintTransaction:
		result.Receipt, err = c.ledger.Mint(sender, tx.Quantity, tx.Value)
	case *types.WhitelistMintTransaction:
		result.Receipt, err = c.ledger.WhitelistMint(sender, tx.Quantity, tx.Proof, tx.Value)
	case *types.GameWinnersMintTransaction:
		result.Receipt, err = c.ledger.GameWinnersMint(sender, tx.GameIndex, tx.Value)
	case *types.SetWhitelistMerkleRootTransaction:
		err = c.ledger.SetWhitelistMerkleRoot(sender, tx.Root)
	case *types.SetNewRoundTransaction:
		err = c.ledger.SetNewRound(sender, tx.Price, tx.StartTokenID, tx.MaxPerAddress, tx.CountInRound)
	case *types.SetGameWinnersMintingTransaction:
		err = c.ledger.SetGameWinnersMinting(sender, tx.Enabled)
	case *types.TransferFromTransaction:
		err = c.ledger.TransferFrom(sender, tx.From, tx.To, tx.TokenID)
	case *types.SetBaseURITransaction:
		err = c.ledger.SetBaseURI(sender, tx.URI)
	case *types.SetNotRevealedURITransaction:
		err = c.ledger.SetNotRevealedURI(sender, tx.URI)
	case *types.RevealTransaction:
		err = c.ledger.Reveal(sender)
	case *types.WithdrawTransaction:
		result.Split, err = c.splitter.Withdraw(sender, tx.Amount)
	case *types.WithdrawTokensTransaction:
		result.Split, err = c.splitter.WithdrawTokens(sender, tx.Token, tx.Amount)
	case *types.DepositTokensTransaction:
		err = c.splitter.DepositTokens(sender, tx.Token, tx.Amount)
	case *types.SetCommunityWithdrawMainAccountTransaction:
		err = c.splitter.SetCommunityWithdrawMainAccount(sender, tx.Account)
	case *types.SetArtistsWithdrawAccountTransaction:
		err = c.splitter.SetArtistsWithdrawAccount(sender, tx.Account)
	case *types.SetCommunityRoyaltyShareTransaction:
		err = c.splitter.SetCommunityRoyaltyShare(sender, tx.ShareBps)
	case *types.TransferOwnershipTransaction:
		err = access.TransferOwnership(c.st, sender, tx.NewOwner)
	case *types.AcceptOwnershipTransaction:
		err = access.AcceptOwnership(c.st, sender)
	case *types.SetPausedTransaction:
		err = access.SetPaused(c.st, sender, tx.Paused)
	default:
		err = fmt.Errorf("%T: %w", tx, types.ErrUnknownTransaction)
	}
	return err
}
