// Package cli implements commands of the Donation contract operator tool.
package cli

import (
	"fmt"
	"os"

	"github.com/bitkind/donation-contract/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configFile string

	v      = viper.New()
	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "donation",
	Short: "Donation contract operator tool",
	Long: `Deploys and operates the Donation contract on Neo N3: manages the token
registry, sends donations and withdraws collected tips.

Settings are read from the configuration file (--config), DONATION_*
environment variables (e.g. DONATION_WALLET_PASSWORD) and flags.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = logger.Sync()
	},
}

// Execute runs the command specified by the program arguments.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "configuration file path")
	pf.String("rpc", "", "Neo RPC endpoint")
	pf.String("wallet", "", "path to NEP-6 wallet")
	pf.String("address", "", "wallet account address (default account if empty)")
	pf.String("contract", "", "Donation contract address or script hash")
	pf.Bool("debug", false, "enable debug logging")

	for key, flag := range map[string]string{
		config.KeyRPCEndpoint:   "rpc",
		config.KeyWalletPath:    "wallet",
		config.KeyWalletAddress: "address",
		config.KeyContract:      "contract",
		config.KeyDebug:         "debug",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}

	rootCmd.AddCommand(
		deployCmd,
		registerTokenCmd,
		deregisterTokenCmd,
		resolveCmd,
		tokensCmd,
		balanceCmd,
		donateCmd,
		withdrawNativeCmd,
		withdrawTokenCmd,
		eventsCmd,
	)
}

func initConfig(*cobra.Command, []string) error {
	var err error

	cfg, err = config.Load(v, configFile)
	if err != nil {
		return err
	}

	if cfg.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	return nil
}
