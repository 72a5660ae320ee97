// Package deploy deploys Donation contract to Neo blockchain.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bitkind/donation-contract/contracts"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for contract deployment.
type Blockchain interface {
	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// Actor composes, signs and sends deployment transaction. It is implemented
// by [actor.Actor].
type Actor interface {
	management.Actor

	// Sender returns the account paying for transactions, deployed contract
	// owner.
	Sender() util.Uint160

	// Wait waits until transaction is accepted to the chain and returns its
	// execution result.
	Wait(h util.Uint256, vub uint32, err error) (*state.AppExecResult, error)
}

// Prm groups all parameters of the contract deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance the contract is deployed to.
	Blockchain Blockchain

	// Actor of the local account, the account becomes contract owner.
	Actor Actor

	// Compiled Donation contract.
	Contract contracts.Contract
}

// ContractAddress returns address the contract gets when deployed by sender.
func ContractAddress(sender util.Uint160, c contracts.Contract) util.Uint160 {
	return state.CreateContractHash(sender, c.NEF.Checksum, c.Manifest.Name)
}

// Deploy deploys the contract unless it is already deployed by the same
// sender and returns its address. Deploy blocks until deployment transaction
// is accepted or rejected.
func Deploy(ctx context.Context, prm Prm) (util.Uint160, error) {
	addr := ContractAddress(prm.Actor.Sender(), prm.Contract)
	l := prm.Logger.With(zap.String("contract", prm.Contract.Manifest.Name), zap.Stringer("address", addr))

	l.Info("checking contract presence on the chain...")

	_, err := prm.Blockchain.GetContractStateByHash(addr)
	if err == nil {
		l.Info("contract is already deployed, skip")
		return addr, nil
	}
	if !isErrContractNotFound(err) {
		return util.Uint160{}, fmt.Errorf("get state of contract %s: %w", addr.StringLE(), err)
	}

	if err = ctx.Err(); err != nil {
		return util.Uint160{}, err
	}

	l.Info("contract is missing on the chain, sending deployment transaction...")

	txHash, vub, err := management.New(prm.Actor).Deploy(&prm.Contract.NEF, &prm.Contract.Manifest, nil)
	res, err := prm.Actor.Wait(txHash, vub, err)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("deploy contract: %w", err)
	}

	if res.VMState != vmstate.Halt {
		return util.Uint160{}, fmt.Errorf("deployment transaction %s failed: %s", txHash.StringLE(), res.FaultException)
	}

	l.Info("contract successfully deployed", zap.Stringer("tx", txHash))

	return addr, nil
}

var errContractNotFound = errors.New("Unknown contract")

func isErrContractNotFound(err error) bool {
	return errors.Is(err, errContractNotFound) || strings.Contains(err.Error(), errContractNotFound.Error())
}
