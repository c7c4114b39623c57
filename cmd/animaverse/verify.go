package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/celer-network/go-animaverse/merkle"
)

var errProofRejected = errors.New("proof does not verify")

func VerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "check a merkle proof against a root",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := merkle.ParseHash(viper.GetString(flagRoot))
			if err != nil {
				return err
			}
			leaf, err := merkle.ParseHash(viper.GetString(flagLeaf))
			if err != nil {
				return err
			}
			proof, err := merkle.ParseProof(viper.GetStringSlice(flagProof))
			if err != nil {
				return err
			}
			if !merkle.Verify(root, leaf, proof) {
				return errProofRejected
			}
			fmt.Println("valid")
			return nil
		},
	}
	cmd.Flags().String(flagRoot, "", "merkle root")
	cmd.Flags().String(flagLeaf, "", "leaf hash")
	cmd.Flags().StringSlice(flagProof, nil, "comma separated sibling hashes")
	cmd.MarkFlagRequired(flagRoot)
	cmd.MarkFlagRequired(flagLeaf)
	return cmd
}
