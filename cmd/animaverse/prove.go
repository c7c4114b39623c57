package main

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/celer-network/go-animaverse/statemachine"
	"github.com/celer-network/go-animaverse/types"
)

type ownershipProof struct {
	TokenID uint64   `yaml:"token_id"`
	Owner   string   `yaml:"owner,omitempty"`
	Root    string   `yaml:"root"`
	Proof   []string `yaml:"proof"`
}

// proveOwnership builds a compact proof for tokenID. An unissued id yields an
// exclusion proof with no owner.
func proveOwnership(sm *statemachine.StateMachine, tokenID uint64) (*ownershipProof, error) {
	token, err := sm.Token(tokenID)
	if err != nil && !errors.Is(err, types.ErrTokenNotFound) {
		return nil, err
	}
	root, err := sm.OwnershipRoot()
	if err != nil {
		return nil, err
	}
	proof, err := sm.ProveOwnership(tokenID)
	if err != nil {
		return nil, err
	}

	out := &ownershipProof{
		TokenID: tokenID,
		Root:    hexutil.Encode(root),
	}
	if token != nil {
		ok, err := sm.VerifyOwnership(root, tokenID, token.Owner, proof)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errProofRejected
		}
		out.Owner = token.Owner.Hex()
	}
	for _, sibling := range proof {
		out.Proof = append(out.Proof, hexutil.Encode(sibling))
	}
	return out, nil
}

func ProveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prove",
		Short: "print a compact ownership proof for a token",
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, closeDB, err := openStateMachine(viper.GetString(flagConfig))
			if err != nil {
				return err
			}
			defer closeDB()

			out, err := proveOwnership(sm, viper.GetUint64(flagToken))
			if err != nil {
				return fmt.Errorf("prove: %w", err)
			}
			return writeYAML("", out)
		},
	}
	cmd.Flags().String(flagConfig, "./config.yaml", "deployment config path")
	cmd.Flags().Uint64(flagToken, 0, "token id")
	cmd.MarkFlagRequired(flagToken)
	return cmd
}
