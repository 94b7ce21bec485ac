// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/hoprelay/contract"
)

// Storage slot keys. Every value is a 32-byte word with its payload
// left-aligned and the remainder zeroed.
var (
	ContractTypeSlot  = filledSlot(0)
	OwnerSlot         = filledSlot(1)
	FeesCollectedSlot = filledSlot(2)
	HopsRemainingSlot = filledSlot(3)
	RouterAddressSlot = filledSlot(4)
	NonceSlot         = filledSlot(5)
)

func filledSlot(b byte) common.Hash {
	var h common.Hash
	for i := range h {
		h[i] = b
	}
	return h
}

func encodeByte(b byte) common.Hash {
	var val common.Hash
	val[0] = b
	return val
}

func encodeAddress(addr common.Address) common.Hash {
	var val common.Hash
	copy(val[:common.AddressLength], addr.Bytes())
	return val
}

func decodeAddress(val common.Hash) common.Address {
	return common.BytesToAddress(val[:common.AddressLength])
}

// encodeAmount writes the low 128 bits of v as little-endian.
func encodeAmount(v *uint256.Int) common.Hash {
	var val common.Hash
	binary.LittleEndian.PutUint64(val[0:8], v[0])
	binary.LittleEndian.PutUint64(val[8:16], v[1])
	return val
}

func decodeAmount(val common.Hash) *uint256.Int {
	var v uint256.Int
	v[0] = binary.LittleEndian.Uint64(val[0:8])
	v[1] = binary.LittleEndian.Uint64(val[8:16])
	return &v
}

func encodeUint64(n uint64) common.Hash {
	var val common.Hash
	binary.LittleEndian.PutUint64(val[:8], n)
	return val
}

func decodeUint64(val common.Hash) uint64 {
	return binary.LittleEndian.Uint64(val[:8])
}

// RouterState is the persisted state of a router instance.
type RouterState struct {
	Owner         common.Address
	FeesCollected *uint256.Int
	Nonce         uint64
}

// CellState is the persisted state of a live cell instance.
type CellState struct {
	HopsRemaining uint8
	Router        common.Address
}

// ReadContractType returns the type tag stored at addr, zero if none.
func ReadContractType(state contract.StateReader, addr common.Address) byte {
	return state.GetState(addr, ContractTypeSlot)[0]
}

// ReadRouterState decodes the router state stored at addr.
func ReadRouterState(state contract.StateReader, addr common.Address) RouterState {
	return RouterState{
		Owner:         decodeAddress(state.GetState(addr, OwnerSlot)),
		FeesCollected: decodeAmount(state.GetState(addr, FeesCollectedSlot)),
		Nonce:         decodeUint64(state.GetState(addr, NonceSlot)),
	}
}

// ReadCellState decodes the cell state stored at addr. Cells only exist
// for the duration of the transaction that created them.
func ReadCellState(state contract.StateReader, addr common.Address) CellState {
	return CellState{
		HopsRemaining: state.GetState(addr, HopsRemainingSlot)[0],
		Router:        decodeAddress(state.GetState(addr, RouterAddressSlot)),
	}
}
