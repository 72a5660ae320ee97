package tests

import (
	"path"
	"testing"

	"github.com/bitkind/donation-contract/contracts/donation/donationconst"
	rpcdonation "github.com/bitkind/donation-contract/rpc/donation"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/callflag"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/emit"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	donationPath = "../contracts/donation"
	tokenPath    = "../internal/testcontracts/nep17token"

	errInvalidSymbol = "invalid symbol"
)

var (
	nativeSymbol = rpcdonation.NativeSymbol
	testSymbol   = rpcdonation.SymbolOf("TEST")
)

type donationEnv struct {
	// owner-signed invokers
	donation *neotest.ContractInvoker
	gas      *neotest.ContractInvoker
	token    *neotest.ContractInvoker
}

func newDonationEnv(t *testing.T) *donationEnv {
	e := newExecutor(t)

	c := neotest.CompileFile(t, e.CommitteeHash, donationPath, path.Join(donationPath, "config.yml"))
	e.DeployContract(t, c, nil)

	tok := neotest.CompileFile(t, e.CommitteeHash, tokenPath, path.Join(tokenPath, "config.yml"))
	e.DeployContract(t, tok, nil)

	return &donationEnv{
		donation: e.CommitteeInvoker(c.Hash),
		gas:      e.CommitteeInvoker(e.NativeHash(t, nativenames.Gas)),
		token:    e.CommitteeInvoker(tok.Hash),
	}
}

func (d *donationEnv) registerToken(t *testing.T) {
	d.donation.Invoke(t, stackitem.Null{}, "registerToken", testSymbol, d.token.Hash)
}

func balanceOf(t *testing.T, c *neotest.ContractInvoker, acc util.Uint160) int64 {
	s, err := c.TestInvoke(t, "balanceOf", acc)
	require.NoError(t, err)
	return s.Top().BigInt().Int64()
}

func donationEvents(t *testing.T, c *neotest.ContractInvoker, h util.Uint256) []*rpcdonation.DonationEvent {
	aer := c.CheckHalt(t, h)

	var res []*rpcdonation.DonationEvent
	for _, ev := range aer.Events {
		if ev.Name != donationconst.DonationNotification || !ev.ScriptHash.Equals(c.Hash) {
			continue
		}

		event := new(rpcdonation.DonationEvent)
		require.NoError(t, event.FromStackItem(ev.Item))
		res = append(res, event)
	}

	return res
}

func depositData(storyID int64, symbol []byte, receiver util.Uint160, amount, tips int64) []any {
	return []any{storyID, symbol, receiver, amount, tips}
}


var _nonce uint32 = 1 << 24

func nonce() uint32 {
	_nonce++
	return _nonce
}

// invokeSigned sends method invocation signed by acc with the given signer
// scope. neotest invokers always sign with Global scope.
func invokeSigned(t *testing.T, c *neotest.ContractInvoker, acc neotest.Signer, signer transaction.Signer, method string, args ...any) util.Uint256 {
	w := io.NewBufBinWriter()
	emit.AppCall(w.BinWriter, c.Hash, method, callflag.All, args...)
	require.NoError(t, w.Err)

	tx := transaction.New(w.Bytes(), 5_0000_0000)
	tx.Nonce = nonce()
	tx.NetworkFee = 5000_0000
	tx.ValidUntilBlock = c.Chain.BlockHeight() + 1
	tx.Signers = []transaction.Signer{signer}
	require.NoError(t, acc.SignTx(c.Chain.GetConfig().Magic, tx))

	c.AddNewBlock(t, tx)
	return tx.Hash()
}
