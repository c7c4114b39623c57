package main

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/celer-network/go-animaverse/config"
	"github.com/celer-network/go-animaverse/statemachine"
	"github.com/celer-network/go-animaverse/types"
	"github.com/celer-network/go-animaverse/utils"
)

// txFile is the yaml form of one operation:
//
//	type: setNewRound
//	args:
//	  price: 80000000000000000
//	  startTokenID: 2000
//	  maxPerAddress: 3
//	  countInRound: 500
type txFile struct {
	Type string                 `yaml:"type"`
	Args map[string]interface{} `yaml:"args"`
}

var decimal = regexp.MustCompile(`^[0-9]+$`)

// decodeTransaction fills the transaction struct named by f.Type from its args.
// Field names match case-insensitively; amounts may be quoted decimals.
func decodeTransaction(f *txFile) (types.Transaction, error) {
	txType, ok := types.TransactionTypeByName(f.Type)
	if !ok {
		return nil, fmt.Errorf("%q: %w", f.Type, types.ErrUnknownTransaction)
	}
	tx, err := types.NewTransaction(txType)
	if err != nil {
		return nil, err
	}
	args := make(map[string]interface{}, len(f.Args))
	for k, v := range f.Args {
		if s, ok := v.(string); ok && decimal.MatchString(s) {
			v = json.Number(s)
		}
		args[k] = v
	}
	data, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, tx); err != nil {
		return nil, fmt.Errorf("%s args: %w", f.Type, err)
	}
	return tx, nil
}

func openStateMachine(path string) (*statemachine.StateMachine, func(), error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	database, err := cfg.OpenDB()
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close db")
		}
	}
	// An existing store ignores genesis, so a config without owner still opens it.
	genesis, err := cfg.Genesis()
	if err != nil {
		log.Debug().Err(err).Msg("No genesis in config")
		genesis = nil
	}
	sm, err := statemachine.NewStateMachine(database, genesis)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return sm, closeDB, nil
}

type applyOutput struct {
	Sender   string   `yaml:"sender"`
	Nonce    uint64   `yaml:"nonce"`
	Type     string   `yaml:"type"`
	TokenIDs []uint64 `yaml:"token_ids,omitempty"`
	Paid     string   `yaml:"paid,omitempty"`
	Excess   string   `yaml:"excess,omitempty"`
	Split    *struct {
		Amount    string `yaml:"amount"`
		Community string `yaml:"community"`
		Artists   string `yaml:"artists"`
	} `yaml:"split,omitempty"`
}

func formatResult(result *types.TransactionResult) *applyOutput {
	out := &applyOutput{
		Sender: result.Sender.Hex(),
		Nonce:  result.Nonce,
		Type:   result.Type.String(),
	}
	if r := result.Receipt; r != nil {
		out.TokenIDs = r.TokenIDs
		out.Paid = r.Paid.String()
		if r.Excess != nil && r.Excess.Sign() > 0 {
			out.Excess = r.Excess.String()
		}
	}
	if s := result.Split; s != nil {
		out.Split = &struct {
			Amount    string `yaml:"amount"`
			Community string `yaml:"community"`
			Artists   string `yaml:"artists"`
		}{s.Amount.String(), s.CommunityShare.String(), s.ArtistsShare.String()}
	}
	return out
}

func ApplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "sign an operation with a keystore key and apply it to the local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			var f txFile
			if err := readYAML(viper.GetString(flagTx), &f); err != nil {
				return err
			}
			tx, err := decodeTransaction(&f)
			if err != nil {
				return err
			}
			privateKey, err := utils.GetPrivateKeyFromKeystore(viper.GetString(flagKeystore), viper.GetString(flagPassword))
			if err != nil {
				return err
			}
			sender := crypto.PubkeyToAddress(privateKey.PublicKey)

			sm, closeDB, err := openStateMachine(viper.GetString(flagConfig))
			if err != nil {
				return err
			}
			defer closeDB()

			nonce, err := sm.Nonce(sender)
			if err != nil {
				return err
			}
			signedTx, err := utils.SignTransaction(privateKey, tx, sm.ChainID(), nonce)
			if err != nil {
				return err
			}
			result, err := sm.ApplyTransaction(signedTx)
			if err != nil {
				return err
			}
			return writeYAML("", formatResult(result))
		},
	}
	cmd.Flags().String(flagConfig, "./config.yaml", "deployment config path")
	cmd.Flags().String(flagKeystore, "", "keystore json of the sender")
	cmd.Flags().String(flagPassword, "", "keystore password")
	cmd.Flags().String(flagTx, "", "operation yaml")
	cmd.MarkFlagRequired(flagKeystore)
	cmd.MarkFlagRequired(flagTx)
	return cmd
}
