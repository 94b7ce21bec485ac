// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/hoprelay/contract"
)

func (r *Relay) constructRouter(env contract.Env) {
	env.SetState(ContractTypeSlot, encodeByte(TypeRouter))
	env.SetState(OwnerSlot, encodeAddress(env.Caller()))
	env.SetState(FeesCollectedSlot, common.Hash{})
	env.SetState(NonceSlot, common.Hash{})
}

func (r *Relay) handleRouter(env contract.Env) ([]byte, error) {
	input := env.Input()
	if len(input) < selectorLen {
		return nil, ErrUnknownSelector
	}

	var selector [4]byte
	copy(selector[:], input[:selectorLen])
	args := input[selectorLen:]

	switch selector {
	case SelectorRoute:
		return r.route(env, args)
	case SelectorWithdraw:
		return r.withdraw(env)
	default:
		return nil, ErrUnknownSelector
	}
}

// route takes the fee and starts a chain of HopCount cells towards the
// destination. Every precondition is checked before the first write.
func (r *Relay) route(env contract.Env, args []byte) ([]byte, error) {
	if len(args) < common.AddressLength {
		return nil, ErrInvalidInput
	}
	destination := common.BytesToAddress(args[:common.AddressLength])

	value := env.Value()
	if !value.Gt(r.params.RoutingFee) {
		return nil, ErrInsufficientFee
	}
	// A chain that runs out of gas half way leaves the value stuck in a
	// cell, so refuse anything below the worst case up front.
	gasLimit := env.GasLimit()
	if gasLimit < r.params.RequiredRouteGas() {
		return nil, ErrInsufficientGas
	}

	fees := decodeAmount(env.GetState(FeesCollectedSlot))
	env.SetState(FeesCollectedSlot, encodeAmount(saturatingAdd128(fees, r.params.RoutingFee)))

	nonce := decodeUint64(env.GetState(NonceSlot)) + 1
	env.SetState(NonceSlot, encodeUint64(nonce))

	self := env.Address()
	firstCell, err := r.deployCell(env, r.params.HopCount, self, nonce)
	if err != nil {
		return nil, err
	}

	forward := new(uint256.Int).Sub(value, r.params.RoutingFee)
	gas := r.params.HopGas(gasLimit, r.params.HopCount)
	if _, err := env.Call(firstCell, gas, forward, PackCellCall(destination)); err != nil {
		return nil, ErrRoutingFailed
	}

	env.AddLog(
		[]common.Hash{RoutedEvent, common.BytesToHash(firstCell.Bytes())},
		uint256.NewInt(nonce).PaddedBytes(32),
	)
	return packAddressWord(firstCell), nil
}

// withdraw pays the accumulated fees to the owner. The accumulator is
// cleared before the transfer so a reentrant withdraw sees no fees, and
// restored if the transfer fails.
func (r *Relay) withdraw(env contract.Env) ([]byte, error) {
	caller := env.Caller()
	if decodeAddress(env.GetState(OwnerSlot)) != caller {
		return nil, ErrNotOwner
	}

	feesWord := env.GetState(FeesCollectedSlot)
	fees := decodeAmount(feesWord)
	if fees.IsZero() {
		return nil, ErrNoFees
	}

	env.SetState(FeesCollectedSlot, common.Hash{})

	if _, err := env.Call(caller, r.params.TransferGas(env.GasLimit()), fees, nil); err != nil {
		env.SetState(FeesCollectedSlot, feesWord)
		return nil, ErrWithdrawFailed
	}

	amount := encodeAmount(fees)
	env.AddLog(
		[]common.Hash{WithdrawnEvent, common.BytesToHash(caller.Bytes())},
		fees.PaddedBytes(32),
	)
	return amount[:withdrawResultLen], nil
}

// deployCell instantiates a cell carrying hops and router. nonce is the
// caller's contribution to the salt.
func (r *Relay) deployCell(env contract.Env, hops uint8, router common.Address, nonce uint64) (common.Address, error) {
	salt := r.salts.DeriveSalt(SaltInput{
		Hops:        hops,
		Router:      router,
		Nonce:       nonce,
		BlockNumber: env.BlockNumber(),
		Timestamp:   env.Timestamp(),
	})

	addr, err := env.Instantiate(
		env.OwnCodeHash(),
		r.params.DeployGas(env.GasLimit()),
		new(uint256.Int),
		PackCellConstructor(hops, router),
		salt,
	)
	if err != nil {
		return common.Address{}, ErrCellDeployFailed
	}
	return addr, nil
}
