package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/bitkind/donation-contract/rpc/donation"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var registerTokenCmd = &cobra.Command{
	Use:   "register-token SYMBOL TOKEN",
	Short: "Register NEP-17 token under the asset symbol",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol, err := parseSymbol(args[0])
		if err != nil {
			return err
		}

		token, err := parseHash(args[1])
		if err != nil {
			return fmt.Errorf("token: %w", err)
		}

		e, err := newWriterEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		logger.Info("registering token",
			zap.String("symbol", args[0]), zap.Stringer("token", token))

		_, err = e.await(e.contract.RegisterToken(symbol, token))
		return err
	},
}

var deregisterTokenCmd = &cobra.Command{
	Use:   "deregister-token SYMBOL",
	Short: "Remove the asset symbol from the token registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol, err := parseSymbol(args[0])
		if err != nil {
			return err
		}

		e, err := newWriterEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		logger.Info("deregistering token", zap.String("symbol", args[0]))

		_, err = e.await(e.contract.DeregisterToken(symbol))
		return err
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve SYMBOL",
	Short: "Print token registered under the asset symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol, err := parseSymbol(args[0])
		if err != nil {
			return err
		}

		if donation.IsNative(symbol) {
			fmt.Fprintln(cmd.OutOrStdout(), "native GAS")
			return nil
		}

		e, err := newReaderEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		token, err := e.reader.Resolve(symbol)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", address.Uint160ToString(token), token.StringLE())
		return nil
	},
}

var tokensMax int

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List registered tokens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := newReaderEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		tokens, err := e.reader.Tokens(tokensMax)
		if err != nil {
			return err
		}

		for i := range tokens {
			fmt.Fprintf(cmd.OutOrStdout(), "0x%s\t%s\n",
				hex.EncodeToString(tokens[i].Symbol), address.Uint160ToString(tokens[i].Hash))
		}

		return nil
	},
}

func init() {
	tokensCmd.Flags().IntVar(&tokensMax, "max", 100, "maximum number of tokens to list")
}
