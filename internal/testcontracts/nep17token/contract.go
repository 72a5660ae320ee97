// Package nep17token is a minimal NEP-17 token used to test asset donations.
package nep17token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	decimals        = 8
	totalSupplyKey  = "s"
	balancePrefix   = "b"
	errInvalidOwner = "invalid account"
)

func Symbol() string {
	return "BTK"
}

func Decimals() int {
	return decimals
}

func TotalSupply() int {
	return getInt(storage.GetReadOnlyContext(), totalSupplyKey)
}

func BalanceOf(account interop.Hash160) int {
	if len(account) != interop.Hash160Len {
		panic(errInvalidOwner)
	}
	return getInt(storage.GetReadOnlyContext(), balanceKey(account))
}

// Transfer moves tokens between accounts. The sender must witness the
// transaction or be the calling contract.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic(errInvalidOwner)
	}
	if amount < 0 {
		panic("negative amount")
	}
	if !runtime.CheckWitness(from) && !from.Equals(runtime.GetCallingScriptHash()) {
		return false
	}

	ctx := storage.GetContext()
	fromKey := balanceKey(from)
	fromBalance := getInt(ctx, fromKey)
	if fromBalance < amount {
		return false
	}

	if amount != 0 {
		storage.Put(ctx, fromKey, fromBalance-amount)
		toKey := balanceKey(to)
		storage.Put(ctx, toKey, getInt(ctx, toKey)+amount)
	}

	postTransfer(from, to, amount, data)
	return true
}

// Mint issues new tokens to the account. Anyone can mint, it is a test token.
func Mint(to interop.Hash160, amount int) {
	if len(to) != interop.Hash160Len {
		panic(errInvalidOwner)
	}
	if amount <= 0 {
		panic("non-positive amount")
	}

	ctx := storage.GetContext()
	toKey := balanceKey(to)
	storage.Put(ctx, toKey, getInt(ctx, toKey)+amount)
	storage.Put(ctx, totalSupplyKey, getInt(ctx, totalSupplyKey)+amount)

	postTransfer(nil, to, amount, nil)
}

func postTransfer(from, to interop.Hash160, amount int, data any) {
	runtime.Notify("Transfer", from, to, amount)
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
}

func getInt(ctx storage.Context, key any) int {
	val := storage.Get(ctx, key)
	if val == nil {
		return 0
	}
	return val.(int)
}

func balanceKey(account interop.Hash160) []byte {
	return append([]byte(balancePrefix), account...)
}
