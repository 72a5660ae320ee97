package donation

import (
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// PullSigner returns transaction signer of the donor for Donate calls. Donate
// makes the token transfer from the Donation contract, so the donor's witness
// must be valid in both the contract and the token: CalledByEntry alone
// covers the contract only.
func PullSigner(donor, contract, token util.Uint160) transaction.Signer {
	return transaction.Signer{
		Account:          donor,
		Scopes:           transaction.CalledByEntry | transaction.CustomContracts,
		AllowedContracts: []util.Uint160{contract, token},
	}
}
