package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

// nullAddress is a script hash of all zeroes, it can't own anything.
const nullAddress = "\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"

// CheckWitness checks witness of the passed caller.
// It panics with the provided message on fail.
func CheckWitness(caller interop.Hash160, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}

// IsUsableAddress returns true if addr is a well-formed non-null script hash.
func IsUsableAddress(addr interop.Hash160) bool {
	return len(addr) == interop.Hash160Len && !util.Equals(string(addr), nullAddress)
}

// CheckAddress panics with the provided message if addr is not usable.
func CheckAddress(addr interop.Hash160, panicMsg string) {
	if !IsUsableAddress(addr) {
		panic(panicMsg)
	}
}
