package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bitkind/donation-contract/rpc/donation"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events TX",
	Short: "Print donations made by the transaction to the configured contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := util.Uint256DecodeStringLE(strings.TrimPrefix(args[0], "0x"))
		if err != nil {
			return fmt.Errorf("decode transaction hash: %w", err)
		}

		contract, err := cfg.ContractHash()
		if err != nil {
			return err
		}

		c, err := dial(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		log, err := c.GetApplicationLog(h, nil)
		if err != nil {
			return fmt.Errorf("get application log: %w", err)
		}

		events, err := donation.ContractDonationEvents(log, contract)
		if err != nil {
			return err
		}

		for _, e := range events {
			fmt.Fprintf(cmd.OutOrStdout(), "story %s\tsymbol 0x%s\treceiver %s\tamount %s\ttips %s\n",
				e.StoryID, hex.EncodeToString(e.Symbol), address.Uint160ToString(e.Receiver), e.Amount, e.Tips)
		}

		return nil
	},
}
