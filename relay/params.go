// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

import (
	"errors"
	"fmt"
	"math"

	"github.com/holiman/uint256"
)

// Protocol defaults
const (
	DefaultHopCount      uint8  = 12
	DefaultDeploymentGas uint64 = 500_000   // budget for one cell instantiation
	DefaultForwardGas    uint64 = 100_000   // reserved by a frame around an outbound transfer
	DefaultMaxGasPerCell uint64 = 1_000_000 // cap on what a single hop may consume
)

// DefaultRoutingFee is 0.1 of the native unit.
var DefaultRoutingFee = uint256.NewInt(100_000_000_000_000)

// maxUint128 bounds the fee accumulator, which is persisted as a u128.
var maxUint128 = new(uint256.Int).SubUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 128), 1)

var (
	ErrInvalidHopCount = errors.New("hop count must be at least 1")
	ErrInvalidFee      = errors.New("routing fee must fit in 128 bits")
	ErrInvalidGas      = errors.New("invalid gas parameters")
)

// Params are the constants compiled into a relay's code. Two relays with
// different params have different code hashes.
type Params struct {
	RoutingFee    *uint256.Int `json:"routingFee"`
	HopCount      uint8        `json:"hopCount"`
	DeploymentGas uint64       `json:"deploymentGas"`
	ForwardGas    uint64       `json:"forwardGas"`
	MaxGasPerCell uint64       `json:"maxGasPerCell"`
}

// DefaultParams returns the protocol constants.
func DefaultParams() Params {
	return Params{
		RoutingFee:    DefaultRoutingFee.Clone(),
		HopCount:      DefaultHopCount,
		DeploymentGas: DefaultDeploymentGas,
		ForwardGas:    DefaultForwardGas,
		MaxGasPerCell: DefaultMaxGasPerCell,
	}
}

// Verify checks that the gas budget arithmetic cannot overflow and that the
// fee fits its storage slot.
func (p Params) Verify() error {
	if p.RoutingFee == nil || p.RoutingFee.Gt(maxUint128) {
		return ErrInvalidFee
	}
	if p.HopCount == 0 {
		return ErrInvalidHopCount
	}
	if p.DeploymentGas == 0 || p.MaxGasPerCell == 0 {
		return fmt.Errorf("%w: deployment and per-cell gas must be non-zero", ErrInvalidGas)
	}
	if p.ForwardGas >= p.MaxGasPerCell {
		return fmt.Errorf("%w: forward gas %d must be below per-cell cap %d", ErrInvalidGas, p.ForwardGas, p.MaxGasPerCell)
	}
	if p.MaxGasPerCell > (math.MaxUint64-p.DeploymentGas)/uint64(p.HopCount) {
		return fmt.Errorf("%w: route budget overflows", ErrInvalidGas)
	}
	return nil
}

// RequiredRouteGas is the worst-case budget a route call must be given:
// one deployment plus every hop at its cap.
func (p Params) RequiredRouteGas() uint64 {
	return p.DeploymentGas + uint64(p.HopCount)*p.MaxGasPerCell
}

// HopGas is the gas handed to a cell that still has hops left to go,
// after reserving a deployment's worth for the calling frame.
func (p Params) HopGas(gasLimit uint64, hops uint8) uint64 {
	return min(saturatingSub(gasLimit, p.DeploymentGas), p.MaxGasPerCell*uint64(hops))
}

// TransferGas is the gas handed to a plain value transfer (final delivery
// or fee withdrawal).
func (p Params) TransferGas(gasLimit uint64) uint64 {
	return min(saturatingSub(gasLimit, p.ForwardGas), p.MaxGasPerCell)
}

// DeployGas is the gas handed to a cell constructor.
func (p Params) DeployGas(gasLimit uint64) uint64 {
	return min(saturatingSub(gasLimit, p.ForwardGas), p.DeploymentGas)
}

func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

func saturatingSubHops(a, b uint8) uint8 {
	if a < b {
		return 0
	}
	return a - b
}

// saturatingAdd128 adds two amounts, clamping at the u128 maximum.
func saturatingAdd128(a, b *uint256.Int) *uint256.Int {
	sum, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow || sum.Gt(maxUint128) {
		return maxUint128.Clone()
	}
	return sum
}
