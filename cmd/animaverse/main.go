package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagConfig   = "config"
	flagKeystore = "keystore"
	flagPassword = "password"
	flagTx       = "tx"
	flagInput    = "input"
	flagOutput   = "output"
	flagRoot     = "root"
	flagLeaf     = "leaf"
	flagProof    = "proof"
	flagToken    = "token"
)

func main() {
	cobra.EnableCommandSorting = false
	log.Logger = log.With().Caller().Logger()

	rootCmd := &cobra.Command{
		Use:   "animaverse",
		Short: "animaverse collection ledger",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return viper.BindPFlags(cmd.Flags())
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		TreeCommand(),
		VerifyCommand(),
		ApplyCommand(),
		InfoCommand(),
		ProveCommand(),
	)

	err := rootCmd.Execute()
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
