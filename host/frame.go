// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	ethtypes "github.com/luxfi/geth/core/types"
	"github.com/luxfi/hoprelay/contract"
)

var (
	errTerminateInConstructor = errors.New("terminate called from a constructor")
	errAlreadyTerminated      = errors.New("contract already terminated")
)

var _ contract.Env = (*frame)(nil)

// frame is one executing call or constructor. It meters gas and records a
// pending self-destruct that the host applies when the frame succeeds.
type frame struct {
	tx *execution

	depth    int
	caller   common.Address
	address  common.Address
	codeHash common.Hash
	value    *uint256.Int
	input    []byte

	gasLimit uint64
	gasUsed  uint64
	outOfGas bool

	deploying   bool
	terminated  bool
	beneficiary common.Address
}

// charge consumes cost. Running out of gas burns the whole frame budget and
// fails the frame once the contract returns.
func (f *frame) charge(cost uint64) bool {
	if f.outOfGas {
		return false
	}
	if cost > f.gasLimit-f.gasUsed {
		f.gasUsed = f.gasLimit
		f.outOfGas = true
		return false
	}
	f.gasUsed += cost
	return true
}

func (f *frame) Caller() common.Address   { return f.caller }
func (f *frame) Address() common.Address  { return f.address }
func (f *frame) Value() *uint256.Int      { return f.value.Clone() }
func (f *frame) Input() []byte            { return f.input }
func (f *frame) GasLimit() uint64         { return f.gasLimit }
func (f *frame) GasLeft() uint64          { return f.gasLimit - f.gasUsed }
func (f *frame) GasPrice() uint64         { return f.tx.gasPrice }
func (f *frame) BlockNumber() uint64      { return f.tx.block.Number }
func (f *frame) Timestamp() uint64        { return f.tx.block.Timestamp }
func (f *frame) OwnCodeHash() common.Hash { return f.codeHash }

func (f *frame) GetState(key common.Hash) common.Hash {
	f.charge(f.tx.schedule.StorageRead)
	return f.tx.state.GetState(f.address, key)
}

func (f *frame) SetState(key common.Hash, value common.Hash) {
	if !f.charge(f.tx.schedule.StorageWrite) {
		return
	}
	f.tx.state.SetState(f.address, key, value)
}

func (f *frame) Call(to common.Address, gas uint64, value *uint256.Int, input []byte) ([]byte, error) {
	if !f.charge(f.tx.schedule.CallBase) {
		return nil, contract.ErrOutOfGas
	}
	ret, used, err := f.tx.call(f.depth+1, f.address, to, min(gas, f.GasLeft()), value, input)
	f.gasUsed += used
	return ret, err
}

func (f *frame) Instantiate(codeHash common.Hash, gas uint64, value *uint256.Int, input []byte, salt common.Hash) (common.Address, error) {
	if !f.charge(f.tx.schedule.InstantiateBase) {
		return common.Address{}, contract.ErrOutOfGas
	}
	addr, used, err := f.tx.create(f.depth+1, f.address, codeHash, min(gas, f.GasLeft()), value, input, salt)
	f.gasUsed += used
	return addr, err
}

func (f *frame) Terminate(beneficiary common.Address) error {
	switch {
	case f.deploying:
		return errTerminateInConstructor
	case f.terminated:
		return errAlreadyTerminated
	case !f.charge(f.tx.schedule.Terminate):
		return contract.ErrOutOfGas
	}
	f.terminated = true
	f.beneficiary = beneficiary
	return nil
}

func (f *frame) AddLog(topics []common.Hash, data []byte) {
	if !f.charge(f.tx.schedule.Log) {
		return
	}
	f.tx.state.AddLog(&ethtypes.Log{
		Address:     f.address,
		Topics:      append([]common.Hash(nil), topics...),
		Data:        append([]byte(nil), data...),
		BlockNumber: f.tx.block.Number,
	})
}
