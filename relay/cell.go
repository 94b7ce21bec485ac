// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

import (
	"errors"
	"fmt"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/hoprelay/contract"
)

// Phase is the lifecycle position of a cell.
type Phase uint8

const (
	PhaseCreated Phase = iota
	PhaseIntermediate
	PhaseTerminal
	PhaseDestroyed
)

func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseIntermediate:
		return "intermediate"
	case PhaseTerminal:
		return "terminal"
	case PhaseDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

var ErrInvalidTransition = errors.New("invalid cell transition")

// Cell is the state machine a cell runs through during its single call:
// Created -> Intermediate | Terminal -> Destroyed. Created -> Destroyed is
// the fatal path where nothing is forwarded.
type Cell struct {
	phase  Phase
	hops   uint8
	router common.Address
	// failure is the absorbed forwarding error, if any.
	failure error
}

// NewCell loads a cell with its hop count clamped to maxHops.
func NewCell(hops uint8, router common.Address, maxHops uint8) *Cell {
	return &Cell{
		phase:  PhaseCreated,
		hops:   min(hops, maxHops),
		router: router,
	}
}

func (c *Cell) Phase() Phase           { return c.phase }
func (c *Cell) Hops() uint8            { return c.hops }
func (c *Cell) Router() common.Address { return c.router }
func (c *Cell) Failure() error         { return c.failure }

// Next is the hop count of the successor. It never underflows.
func (c *Cell) Next() uint8 {
	return saturatingSubHops(c.hops, 1)
}

// Advance leaves Created for Terminal when no successor is left, otherwise
// for Intermediate.
func (c *Cell) Advance() (Phase, error) {
	if c.phase != PhaseCreated {
		return c.phase, fmt.Errorf("%w: advance from %s", ErrInvalidTransition, c.phase)
	}
	if c.Next() == 0 {
		c.phase = PhaseTerminal
	} else {
		c.phase = PhaseIntermediate
	}
	return c.phase, nil
}

// Absorb records a forwarding failure without changing the phase.
func (c *Cell) Absorb(err error) {
	if err != nil && c.failure == nil {
		c.failure = err
	}
}

// Destroy is the only exit from every live phase.
func (c *Cell) Destroy() error {
	if c.phase == PhaseDestroyed {
		return fmt.Errorf("%w: already destroyed", ErrInvalidTransition)
	}
	c.phase = PhaseDestroyed
	return nil
}

func (r *Relay) constructCell(env contract.Env, input []byte) {
	// short constructor data reads as zeros
	data := make([]byte, cellConstructorLen)
	copy(data, input)

	hops := min(data[1], r.params.HopCount)
	router := common.BytesToAddress(data[2:cellConstructorLen])

	env.SetState(ContractTypeSlot, encodeByte(TypeCell))
	env.SetState(HopsRemainingSlot, encodeByte(hops))
	env.SetState(RouterAddressSlot, encodeAddress(router))
}

// handleCell forwards the attached value one hop and self-destructs. No
// forwarding outcome is allowed to skip the self-destruct.
func (r *Relay) handleCell(env contract.Env) ([]byte, error) {
	c := NewCell(
		env.GetState(HopsRemainingSlot)[0],
		decodeAddress(env.GetState(RouterAddressSlot)),
		r.params.HopCount,
	)
	r.forward(env, c)

	if err := c.Destroy(); err != nil {
		return nil, err
	}
	return nil, env.Terminate(c.Router())
}

func (r *Relay) forward(env contract.Env, c *Cell) {
	input := env.Input()
	if len(input) < common.AddressLength {
		c.Absorb(fmt.Errorf("%w: destination is %d bytes", ErrFatal, len(input)))
		return
	}
	destination := common.BytesToAddress(input[:common.AddressLength])
	value := env.Value()

	phase, err := c.Advance()
	if err != nil {
		c.Absorb(fmt.Errorf("%w: %w", ErrFatal, err))
		return
	}

	switch phase {
	case PhaseTerminal:
		_, err := env.Call(destination, r.params.TransferGas(env.GasLimit()), value, nil)
		c.Absorb(err)

	case PhaseIntermediate:
		next := c.Next()
		nonce := CellNonce(next, env.GasLeft(), env.GasPrice())
		// deployment failures are absorbed too; the cell must still terminate
		nextCell, err := r.deployCell(env, next, c.Router(), nonce)
		if err != nil {
			c.Absorb(fmt.Errorf("%w: %w", ErrFatal, err))
			return
		}
		_, err = env.Call(nextCell, r.params.HopGas(env.GasLimit(), next), value, PackCellCall(destination))
		c.Absorb(err)
	}
}
