package cli

import (
	"fmt"
	"os"

	"github.com/bitkind/donation-contract/contracts"
	"github.com/bitkind/donation-contract/deploy"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/spf13/cobra"
)

var deployDir string

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy compiled Donation contract",
	Long: `Deploys the contract compiled into <dir>/donation/contract.nef and
<dir>/donation/manifest.json. The signing account becomes the contract owner.
Nothing is sent if the contract is already deployed by the account.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := contracts.GetDonation(os.DirFS(deployDir))
		if err != nil {
			return err
		}

		client, _, act, err := newActor(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		addr, err := deploy.Deploy(cmd.Context(), deploy.Prm{
			Logger:     logger,
			Blockchain: client,
			Actor:      act,
			Contract:   c,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", address.Uint160ToString(addr), addr.StringLE())
		return nil
	},
}

func init() {
	deployCmd.Flags().StringVar(&deployDir, "dir", "contracts", "directory with compiled contracts")
}
