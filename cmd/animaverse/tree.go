package main

import (
	"fmt"
	"io/ioutil"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/celer-network/go-animaverse/merkle"
)

type gameResult struct {
	Index uint64 `yaml:"index"`
	Score string `yaml:"score"`
	Seed  string `yaml:"seed"`
}

type gamesFile struct {
	Games []gameResult `yaml:"games"`
}

type allowlistFile struct {
	Addresses []string `yaml:"addresses"`
}

type leafProof struct {
	Index   *uint64  `yaml:"index,omitempty"`
	Score   string   `yaml:"score,omitempty"`
	Seed    string   `yaml:"seed,omitempty"`
	Address string   `yaml:"address,omitempty"`
	Leaf    string   `yaml:"leaf"`
	Proof   []string `yaml:"proof"`
}

type treeOutput struct {
	Root   string      `yaml:"root"`
	Leaves []leafProof `yaml:"leaves"`
}

func TreeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "build a merkle tree and its proofs",
	}
	cmd.AddCommand(treeGamesCommand(), treeAllowlistCommand())
	return cmd
}

func treeGamesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "tree over game results, leaf = soliditySha3(index, score, seed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in gamesFile
			if err := readYAML(viper.GetString(flagInput), &in); err != nil {
				return err
			}
			out, err := buildGamesTree(in.Games)
			if err != nil {
				return err
			}
			return writeYAML(viper.GetString(flagOutput), out)
		},
	}
	addTreeFlags(cmd)
	return cmd
}

func treeAllowlistCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allowlist",
		Short: "tree over whitelisted addresses, leaf = keccak256(address)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in allowlistFile
			if err := readYAML(viper.GetString(flagInput), &in); err != nil {
				return err
			}
			out, err := buildAllowlistTree(in.Addresses)
			if err != nil {
				return err
			}
			return writeYAML(viper.GetString(flagOutput), out)
		},
	}
	addTreeFlags(cmd)
	return cmd
}

func addTreeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagInput, "i", "", "input yaml")
	cmd.Flags().StringP(flagOutput, "o", "", "output yaml, stdout if empty")
	cmd.MarkFlagRequired(flagInput)
}

func parseUint256(what, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("bad %s %q", what, s)
	}
	return v, nil
}

func buildGamesTree(games []gameResult) (*treeOutput, error) {
	leaves := make([]common.Hash, len(games))
	for i, g := range games {
		score, err := parseUint256("score", g.Score)
		if err != nil {
			return nil, err
		}
		seed, err := parseUint256("seed", g.Seed)
		if err != nil {
			return nil, err
		}
		leaves[i] = merkle.GameLeaf(new(big.Int).SetUint64(g.Index), score, seed)
	}
	tree, err := merkle.NewTree(leaves)
	if err != nil {
		return nil, err
	}

	out := &treeOutput{Root: tree.Root().Hex()}
	for i, g := range games {
		proof, err := tree.Proof(leaves[i])
		if err != nil {
			return nil, err
		}
		index := g.Index
		out.Leaves = append(out.Leaves, leafProof{
			Index: &index,
			Score: g.Score,
			Seed:  g.Seed,
			Leaf:  leaves[i].Hex(),
			Proof: merkle.FormatProof(proof),
		})
	}
	return out, nil
}

func buildAllowlistTree(addresses []string) (*treeOutput, error) {
	leaves := make([]common.Hash, len(addresses))
	for i, a := range addresses {
		if !common.IsHexAddress(a) {
			return nil, fmt.Errorf("bad address %q", a)
		}
		leaves[i] = merkle.AddressLeaf(common.HexToAddress(a))
	}
	tree, err := merkle.NewTree(leaves)
	if err != nil {
		return nil, err
	}

	out := &treeOutput{Root: tree.Root().Hex()}
	for i, a := range addresses {
		proof, err := tree.Proof(leaves[i])
		if err != nil {
			return nil, err
		}
		out.Leaves = append(out.Leaves, leafProof{
			Address: common.HexToAddress(a).Hex(),
			Leaf:    leaves[i].Hex(),
			Proof:   merkle.FormatProof(proof),
		})
	}
	return out, nil
}

func readYAML(path string, v interface{}) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func writeYAML(path string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return ioutil.WriteFile(path, data, 0644)
}
