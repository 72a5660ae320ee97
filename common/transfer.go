package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// BalanceOf returns NEP-17 balance of the account in the given token.
func BalanceOf(token, account interop.Hash160) int {
	return contract.Call(token, "balanceOf", contract.ReadStates, account).(int)
}

// Transfer calls NEP-17 transfer of the given token and returns its result.
func Transfer(token, from, to interop.Hash160, amount int, data any) bool {
	return contract.Call(token, "transfer", contract.All, from, to, amount, data).(bool)
}

// TransferFromSelf moves amount of token from the executing contract to the
// given account. Zero amount is a no-op, refused transfer panics.
func TransferFromSelf(token, to interop.Hash160, amount int) {
	if amount == 0 {
		return
	}
	if !Transfer(token, runtime.GetExecutingScriptHash(), to, amount, nil) {
		panic("transfer failed")
	}
}
