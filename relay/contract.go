// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package relay implements a multi-hop value relay executed inside a single
// transaction. One code serves two roles selected by a stored type tag:
//
//   - Router: the long-lived entry point. route(destination) takes a fixed
//     fee, deploys the first Cell and forwards the rest of the value to it.
//     withdraw() pays accumulated fees to the owner.
//   - Cell: a one-shot hop. On its only call it either delivers the value to
//     the destination (last hop) or deploys the next Cell and forwards to it,
//     then always self-destructs in favor of the router.
//
// The router reverts on every failure since nothing has left its custody
// yet. Cells never revert on a forwarding failure: undelivered value stays
// on the cell and is swept to the router by the self-destruct.
package relay

import (
	"encoding/binary"
	"errors"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/hoprelay/contract"
)

// Contract type tags
const (
	TypeRouter byte = 1
	TypeCell   byte = 2
)

// Errors. The text of each error is the revert diagnostic.
var (
	ErrInvalidType      = errors.New("invalid type")
	ErrUnknownSelector  = errors.New("unknown selector")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInsufficientFee  = errors.New("insufficient fee")
	ErrInsufficientGas  = errors.New("insufficient gas")
	ErrRoutingFailed    = errors.New("routing failed")
	ErrCellDeployFailed = errors.New("cell deploy failed")
	ErrNotOwner         = errors.New("not owner")
	ErrNoFees           = errors.New("no fees")
	ErrWithdrawFailed   = errors.New("withdraw failed")

	// ErrFatal marks an unexpected state inside a cell. It is recorded, never
	// returned: the cell skips forwarding and still self-destructs.
	ErrFatal = errors.New("fatal")
)

// Event topics
var (
	RoutedEvent    = common.Keccak256Hash([]byte("Routed(address,uint64)"))
	WithdrawnEvent = common.Keccak256Hash([]byte("Withdrawn(address,uint128)"))
)

var _ contract.Contract = (*Relay)(nil)

// Relay is the shared code of routers and cells.
type Relay struct {
	params   Params
	salts    SaltDeriver
	codeHash common.Hash
}

// Option configures a Relay.
type Option func(*Relay)

// WithParams overrides the protocol constants.
func WithParams(p Params) Option {
	return func(r *Relay) {
		r.params = p
	}
}

// WithSaltDeriver overrides the salt strategy.
func WithSaltDeriver(d SaltDeriver) Option {
	return func(r *Relay) {
		r.salts = d
	}
}

// New builds relay code with the default params and keccak salts unless
// overridden.
func New(opts ...Option) (*Relay, error) {
	r := &Relay{
		params: DefaultParams(),
		salts:  KeccakSalt{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.params.Verify(); err != nil {
		return nil, err
	}
	if r.salts == nil {
		return nil, errors.New("nil salt deriver")
	}
	r.codeHash = r.computeCodeHash()
	return r, nil
}

// Params returns the constants this code was built with.
func (r *Relay) Params() Params {
	p := r.params
	p.RoutingFee = r.params.RoutingFee.Clone()
	return p
}

// CodeHash identifies this code. It commits to the params and the salt
// strategy, so differently parameterized relays never share addresses.
func (r *Relay) CodeHash() common.Hash {
	return r.codeHash
}

func (r *Relay) computeCodeHash() common.Hash {
	buf := make([]byte, 0, 96)
	buf = append(buf, "hoprelay.v1"...)
	buf = append(buf, r.params.RoutingFee.PaddedBytes(32)...)
	buf = append(buf, r.params.HopCount)
	buf = binary.BigEndian.AppendUint64(buf, r.params.DeploymentGas)
	buf = binary.BigEndian.AppendUint64(buf, r.params.ForwardGas)
	buf = binary.BigEndian.AppendUint64(buf, r.params.MaxGasPerCell)
	buf = append(buf, r.salts.Name()...)
	return common.Keccak256Hash(buf)
}

// Deploy is the constructor. Byte 0 of the input selects the role; a
// missing or zero tag means router.
func (r *Relay) Deploy(env contract.Env) error {
	input := env.Input()
	var tag byte
	if len(input) > 0 {
		tag = input[0]
	}

	switch tag {
	case 0, TypeRouter:
		r.constructRouter(env)
		return nil
	case TypeCell:
		r.constructCell(env, input)
		return nil
	default:
		return ErrInvalidType
	}
}

// Call dispatches on the stored type tag.
func (r *Relay) Call(env contract.Env) ([]byte, error) {
	switch env.GetState(ContractTypeSlot)[0] {
	case TypeRouter:
		return r.handleRouter(env)
	case TypeCell:
		return r.handleCell(env)
	default:
		return nil, ErrInvalidType
	}
}
