package donation

import (
	"math/big"

	"github.com/bitkind/donation-contract/contracts/donation/donationconst"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"golang.org/x/crypto/sha3"
)

// NativeSymbol is a registry key standing for native GAS.
var NativeSymbol = []byte(donationconst.NativeSymbol)

// Transferer sends NEP-17 transfers, it's implemented by [nep17.TokenWriter]
// and [gas.Token].
type Transferer interface {
	Transfer(from util.Uint160, to util.Uint160, amount *big.Int, data any) (util.Uint256, uint32, error)
}

// SymbolOf returns registry key of the human-readable asset symbol: its
// Keccak-256 digest.
func SymbolOf(symbol string) []byte {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write([]byte(symbol))
	return h.Sum(nil)
}

// IsNative checks whether symbol stands for native GAS.
func IsNative(symbol []byte) bool {
	return string(symbol) == donationconst.NativeSymbol
}

// DepositData returns data argument of NEP-17 transfer to the contract which
// makes a donation out of the transfer. Transferred value must equal
// amount + tips.
func DepositData(storyID *big.Int, symbol []byte, receiver util.Uint160, amount, tips *big.Int) []any {
	return []any{storyID, symbol, receiver, amount, tips}
}

// Deposit donates amount + tips of the asset transferred by t. The asset
// must match the symbol: GAS for [NativeSymbol] and the registered token
// otherwise. The transaction is signed and sent by t.
func (c *Contract) Deposit(t Transferer, from util.Uint160, storyID *big.Int, symbol []byte, receiver util.Uint160, amount, tips *big.Int) (util.Uint256, uint32, error) {
	total := new(big.Int).Add(amount, tips)
	return t.Transfer(from, c.hash, total, DepositData(storyID, symbol, receiver, amount, tips))
}
