// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// Function selectors understood by a router
var (
	SelectorRoute    = [4]byte{0x12, 0x34, 0x56, 0x78} // route(address)
	SelectorWithdraw = [4]byte{0x3c, 0xcf, 0xd6, 0x0b} // withdraw()
)

// Payload sizes
const (
	selectorLen        = 4
	routeInputLen      = selectorLen + common.AddressLength
	cellConstructorLen = 2 + common.AddressLength
	routeResultLen     = 32
	withdrawResultLen  = 16
)

// PackRouterConstructor builds the constructor data of a router.
func PackRouterConstructor() []byte {
	return []byte{TypeRouter}
}

// PackCellConstructor builds the constructor data of a cell:
// [type][hops][router address].
func PackCellConstructor(hops uint8, router common.Address) []byte {
	out := make([]byte, cellConstructorLen)
	out[0] = TypeCell
	out[1] = hops
	copy(out[2:], router.Bytes())
	return out
}

// PackRoute builds the call data of route(destination).
func PackRoute(destination common.Address) []byte {
	out := make([]byte, routeInputLen)
	copy(out[:selectorLen], SelectorRoute[:])
	copy(out[selectorLen:], destination.Bytes())
	return out
}

// PackWithdraw builds the call data of withdraw().
func PackWithdraw() []byte {
	return append([]byte(nil), SelectorWithdraw[:]...)
}

// PackCellCall builds the call data a cell receives: the bare destination.
func PackCellCall(destination common.Address) []byte {
	return append([]byte(nil), destination.Bytes()...)
}

// UnpackRouteResult extracts the first cell address from route's output.
func UnpackRouteResult(ret []byte) (common.Address, error) {
	if len(ret) != routeResultLen {
		return common.Address{}, fmt.Errorf("%w: route result is %d bytes, want %d", ErrInvalidInput, len(ret), routeResultLen)
	}
	return common.BytesToAddress(ret[routeResultLen-common.AddressLength:]), nil
}

// UnpackWithdrawResult extracts the withdrawn amount from withdraw's output.
func UnpackWithdrawResult(ret []byte) (*uint256.Int, error) {
	if len(ret) != withdrawResultLen {
		return nil, fmt.Errorf("%w: withdraw result is %d bytes, want %d", ErrInvalidInput, len(ret), withdrawResultLen)
	}
	var word common.Hash
	copy(word[:], ret)
	return decodeAmount(word), nil
}

func packAddressWord(addr common.Address) []byte {
	out := make([]byte, routeResultLen)
	copy(out[routeResultLen-common.AddressLength:], addr.Bytes())
	return out
}
