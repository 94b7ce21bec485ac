// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contract defines the host surface a relay contract executes
// against. The host owns storage, balances, gas metering, nested calls,
// instantiation and self-destruct; contracts only see the current frame.
package contract

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

//go:generate mockgen -source interfaces.go -destination interfaces_mock.go -package contract

// Host errors
var (
	ErrOutOfGas          = errors.New("out of gas")
	ErrExecutionReverted = errors.New("execution reverted")
	ErrDepthExceeded     = errors.New("max call depth exceeded")
	ErrInsufficientFunds = errors.New("insufficient balance for transfer")
	ErrCodeNotFound      = errors.New("code hash not registered")
	ErrAddressCollision  = errors.New("contract address collision")
)

// Env is the view of the host available to a single executing frame.
type Env interface {
	// Caller is the address that invoked the current frame.
	Caller() common.Address
	// Address is the address of the executing contract.
	Address() common.Address
	// Value is the native value attached to the current frame.
	Value() *uint256.Int
	// Input is the constructor data during Deploy and the call data during Call.
	Input() []byte

	// GasLimit is the gas supplied to the current frame by its caller.
	GasLimit() uint64
	// GasLeft is the gas still available to the current frame.
	GasLeft() uint64
	GasPrice() uint64

	BlockNumber() uint64
	Timestamp() uint64
	OwnCodeHash() common.Hash

	GetState(key common.Hash) common.Hash
	SetState(key common.Hash, value common.Hash)

	// Call runs a nested, blocking sub-invocation. A non-nil error means the
	// callee reverted or trapped and none of its effects survived.
	Call(to common.Address, gas uint64, value *uint256.Int, input []byte) ([]byte, error)

	// Instantiate deploys a new instance of the code registered under
	// codeHash at an address derived from the current contract, codeHash
	// and salt, running its constructor with input.
	Instantiate(codeHash common.Hash, gas uint64, value *uint256.Int, input []byte, salt common.Hash) (common.Address, error)

	// Terminate schedules the removal of the current contract. Once the
	// frame returns successfully, the remaining balance and storage deposit
	// go to beneficiary and code and storage are deleted.
	Terminate(beneficiary common.Address) error

	AddLog(topics []common.Hash, data []byte)
}

// Contract is code that can be registered with a host.
type Contract interface {
	// Deploy runs the constructor of a freshly instantiated contract.
	Deploy(env Env) error
	// Call handles an invocation. A returned error reverts the frame and
	// its text becomes the revert data.
	Call(env Env) ([]byte, error)
}

// StateReader gives read access to committed or in-flight state, e.g. for
// inspecting a contract from outside of a frame.
type StateReader interface {
	GetState(addr common.Address, key common.Hash) common.Hash
	GetBalance(addr common.Address) *uint256.Int
}

// RevertError is returned to a caller when a nested frame failed.
type RevertError struct {
	// Reason is the revert data produced by the callee.
	Reason []byte
	Err    error
}

func (e *RevertError) Error() string {
	if len(e.Reason) == 0 {
		return ErrExecutionReverted.Error()
	}
	return ErrExecutionReverted.Error() + ": " + string(e.Reason)
}

func (e *RevertError) Unwrap() error {
	return e.Err
}
