package cli

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/bitkind/donation-contract/rpc/donation"
	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/gas"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/nep17"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var donateFlags struct {
	story    int64
	symbol   string
	receiver string
	amount   string
	tips     string
	push     bool
}

var donateCmd = &cobra.Command{
	Use:   "donate",
	Short: "Donate to the story author",
	Long: `Donates amount to the receiver and leaves tips on the contract balance.

Native GAS is always transferred to the contract with deposit data. Tokens are
pulled from the donor by the contract unless --push is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := donateFlags

		symbol, err := parseSymbol(f.symbol)
		if err != nil {
			return err
		}

		receiver, err := parseHash(f.receiver)
		if err != nil {
			return fmt.Errorf("receiver: %w", err)
		}

		e, err := newWriterEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		decimals, err := assetDecimals(e.act, e.reader, symbol)
		if err != nil {
			return fmt.Errorf("asset decimals: %w", err)
		}

		amount, err := parseAmount(f.amount, decimals)
		if err != nil {
			return err
		}

		tips, err := parseAmount(f.tips, decimals)
		if err != nil {
			return err
		}

		storyID := big.NewInt(f.story)
		sender := e.act.Sender()

		logger.Info("donating",
			zap.Int64("story", f.story),
			zap.String("symbol", f.symbol),
			zap.Stringer("receiver", receiver),
			zap.Stringer("amount", amount),
			zap.Stringer("tips", tips))

		switch {
		case donation.IsNative(symbol):
			_, err = e.await(e.contract.Deposit(gas.New(e.act), sender, storyID, symbol, receiver, amount, tips))
		case f.push:
			token, rErr := e.reader.Resolve(symbol)
			if rErr != nil {
				return rErr
			}
			_, err = e.await(e.contract.Deposit(nep17.New(e.act, token), sender, storyID, symbol, receiver, amount, tips))
		default:
			token, rErr := e.reader.Resolve(symbol)
			if rErr != nil {
				return rErr
			}
			pull, pErr := e.pullContract(token)
			if pErr != nil {
				return pErr
			}
			_, err = e.await(pull.Donate(sender, storyID, symbol, receiver, amount, tips))
		}

		return err
	},
}

var withdrawNativeCmd = &cobra.Command{
	Use:   "withdraw-native TO AMOUNT",
	Short: "Withdraw GAS from the contract balance",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withdraw(cmd, donation.NativeSymbol, args[0], args[1])
	},
}

var withdrawTokenCmd = &cobra.Command{
	Use:   "withdraw-token SYMBOL TO AMOUNT",
	Short: "Withdraw registered token from the contract balance",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol, err := parseSymbol(args[0])
		if err != nil {
			return err
		}

		if donation.IsNative(symbol) {
			return errors.New("use withdraw-native for GAS")
		}

		return withdraw(cmd, symbol, args[1], args[2])
	},
}

func withdraw(cmd *cobra.Command, symbol []byte, toArg, amountArg string) error {
	to, err := parseHash(toArg)
	if err != nil {
		return fmt.Errorf("recipient: %w", err)
	}

	e, err := newWriterEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.close()

	decimals, err := assetDecimals(e.act, e.reader, symbol)
	if err != nil {
		return fmt.Errorf("asset decimals: %w", err)
	}

	amount, err := parseAmount(amountArg, decimals)
	if err != nil {
		return err
	}

	logger.Info("withdrawing", zap.Stringer("to", to), zap.Stringer("amount", amount))

	if donation.IsNative(symbol) {
		_, err = e.await(e.contract.WithdrawNative(to, amount))
	} else {
		_, err = e.await(e.contract.WithdrawToken(symbol, to, amount))
	}

	return err
}

var balanceCmd = &cobra.Command{
	Use:   "balance [SYMBOL]",
	Short: "Print the contract balance of the asset (GAS by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol := donation.NativeSymbol
		if len(args) > 0 {
			var err error
			symbol, err = parseSymbol(args[0])
			if err != nil {
				return err
			}
		}

		e, err := newReaderEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		decimals, err := assetDecimals(e.inv, e.reader, symbol)
		if err != nil {
			return fmt.Errorf("asset decimals: %w", err)
		}

		var balance *big.Int
		if donation.IsNative(symbol) {
			balance, err = e.reader.NativeBalance()
		} else {
			balance, err = e.reader.TokenBalance(symbol)
		}
		if err != nil {
			return donation.TranslateError(err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), fixedn.ToString(balance, decimals))
		return nil
	},
}

func init() {
	fs := donateCmd.Flags()
	fs.Int64Var(&donateFlags.story, "story", 0, "story identifier")
	fs.StringVar(&donateFlags.symbol, "symbol", "NATIVE", "asset symbol")
	fs.StringVar(&donateFlags.receiver, "receiver", "", "story author address")
	fs.StringVar(&donateFlags.amount, "amount", "0", "amount forwarded to the receiver")
	fs.StringVar(&donateFlags.tips, "tips", "0", "amount left on the contract")
	fs.BoolVar(&donateFlags.push, "push", false, "transfer tokens to the contract instead of letting it pull them")
	_ = donateCmd.MarkFlagRequired("receiver")
}
