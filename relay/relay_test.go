// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/geth/common"
	log "github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/hoprelay/contract"
	"github.com/luxfi/hoprelay/host"
	"github.com/luxfi/hoprelay/modules"
)

var (
	ownerKey     = common.HexToAddress("0x0000000000000000000000000000000000000a01")
	senderKey    = common.HexToAddress("0x0000000000000000000000000000000000000a02")
	recipientKey = common.HexToAddress("0x0000000000000000000000000000000000000a03")

	oneEther = new(uint256.Int).Mul(uint256.NewInt(1_000_000_000), uint256.NewInt(1_000_000_000))
)

var (
	rejectorCodeHash = common.Hash{0x0e, 0x01}
	proxyCodeHash    = common.Hash{0x0e, 0x02}

	errRejected = errors.New("rejected")
)

// rejector refuses every call.
type rejector struct{}

func (rejector) Deploy(contract.Env) error { return nil }

func (rejector) Call(contract.Env) ([]byte, error) {
	return nil, errRejected
}

// ownerProxy deploys and owns a router. Its behavior on receiving value is
// chosen by the mode stored at proxyModeSlot.
type ownerProxy struct{}

const (
	proxyAccept byte = iota
	proxyReject
	proxyReenter
)

const (
	proxyOpDeploy   byte = 1 // deploy a router of code input[1:33]
	proxyOpWithdraw byte = 2
	proxyOpSetMode  byte = 3
)

var (
	proxyModeSlot    = common.Hash{0x01}
	proxyRouterSlot  = common.Hash{0x02}
	proxyReentrySlot = common.Hash{0x03}
)

func (ownerProxy) Deploy(contract.Env) error { return nil }

func (ownerProxy) Call(env contract.Env) ([]byte, error) {
	input := env.Input()
	router := common.BytesToAddress(env.GetState(proxyRouterSlot).Bytes())
	if len(input) == 0 {
		switch env.GetState(proxyModeSlot)[31] {
		case proxyReject:
			return nil, errRejected
		case proxyReenter:
			_, err := env.Call(router, env.GasLeft(), new(uint256.Int), PackWithdraw())
			env.SetState(proxyReentrySlot, common.BytesToHash([]byte(err.Error())))
		}
		return nil, nil
	}

	switch input[0] {
	case proxyOpDeploy:
		addr, err := env.Instantiate(common.BytesToHash(input[1:33]), env.GasLeft(), new(uint256.Int), PackRouterConstructor(), common.Hash{})
		if err != nil {
			return nil, err
		}
		env.SetState(proxyRouterSlot, common.BytesToHash(addr.Bytes()))
		return addr.Bytes(), nil
	case proxyOpWithdraw:
		return env.Call(router, env.GasLeft(), new(uint256.Int), PackWithdraw())
	case proxyOpSetMode:
		env.SetState(proxyModeSlot, common.BytesToHash(input[1:2]))
		return nil, nil
	default:
		return nil, errRejected
	}
}

type relayFixture struct {
	t      *testing.T
	host   *host.Host
	code   *Relay
	router common.Address
}

func newRelayFixture(t *testing.T, opts ...Option) *relayFixture {
	t.Helper()
	require := require.New(t)

	code, err := New(opts...)
	require.NoError(err)

	registry := modules.NewRegistry()
	for _, m := range []modules.Module{
		{ConfigKey: ConfigKey, CodeHash: code.CodeHash(), Contract: code},
		{ConfigKey: "rejector", CodeHash: rejectorCodeHash, Contract: rejector{}},
		{ConfigKey: "ownerProxy", CodeHash: proxyCodeHash, Contract: ownerProxy{}},
	} {
		require.NoError(registry.RegisterModule(m))
	}

	h, err := host.New(memdb.New(), host.Config{
		Registry: registry,
		Logger:   log.NewTestLogger(log.InfoLevel),
	})
	require.NoError(err)
	h.SetBlock(host.BlockContext{Number: testBlock, Timestamp: testTimestamp})

	funds := new(uint256.Int).Mul(oneEther, uint256.NewInt(10))
	require.NoError(h.Fund(ownerKey, funds))
	require.NoError(h.Fund(senderKey, funds))

	f := &relayFixture{t: t, host: h, code: code}
	receipt := f.deploy(ownerKey, code.CodeHash(), common.Hash{}, PackRouterConstructor())
	require.True(receipt.Succeeded(), receipt.Err)
	f.router = receipt.ContractAddress
	return f
}

func (f *relayFixture) deploy(from common.Address, codeHash, salt common.Hash, input []byte) *host.Receipt {
	f.t.Helper()
	receipt, err := f.host.Execute(host.Message{
		From:     from,
		CodeHash: codeHash,
		Salt:     salt,
		Value:    new(uint256.Int),
		Gas:      1_000_000,
		Input:    input,
	})
	require.NoError(f.t, err)
	return receipt
}

func (f *relayFixture) call(from, to common.Address, value *uint256.Int, gas uint64, input []byte) *host.Receipt {
	f.t.Helper()
	receipt, err := f.host.Execute(host.Message{
		From:     from,
		To:       &to,
		Value:    value,
		Gas:      gas,
		GasPrice: testGasPrice,
		Input:    input,
	})
	require.NoError(f.t, err)
	return receipt
}

func (f *relayFixture) route(destination common.Address, value *uint256.Int) *host.Receipt {
	f.t.Helper()
	return f.call(senderKey, f.router, value, f.code.Params().RequiredRouteGas(), PackRoute(destination))
}

func (f *relayFixture) balance(addr common.Address) *uint256.Int {
	return f.host.State().GetBalance(addr)
}

func TestRouteDeliversThroughEveryHop(t *testing.T) {
	require := require.New(t)
	f := newRelayFixture(t)

	value := new(uint256.Int).Mul(oneEther, uint256.NewInt(2))
	senderBefore := f.balance(senderKey)

	receipt := f.route(recipientKey, value)
	require.True(receipt.Succeeded(), receipt.Err)

	firstCell, err := UnpackRouteResult(receipt.ReturnData)
	require.NoError(err)

	deployed := receipt.Events(host.EventDeploy)
	require.Len(deployed, int(DefaultHopCount))
	require.Equal(firstCell, deployed[0].To)
	require.Equal(f.router, deployed[0].From)
	for i, e := range deployed {
		require.Equal(f.code.CodeHash(), e.CodeHash)
		require.Equal(PackCellConstructor(DefaultHopCount-uint8(i), f.router), e.Input)
		if i > 0 {
			require.Equal(deployed[i-1].To, e.From)
		}
	}

	terminated := receipt.Events(host.EventTerminate)
	require.Len(terminated, int(DefaultHopCount))
	seen := make(map[common.Address]bool)
	for _, e := range terminated {
		require.Equal(f.router, e.To)
		require.True(e.Value.IsZero())
		require.False(f.host.State().HasCode(e.From))
		require.False(seen[e.From])
		seen[e.From] = true
	}

	delivered := new(uint256.Int).Sub(value, DefaultRoutingFee)
	require.Equal(delivered, f.balance(recipientKey))
	require.Equal(DefaultRoutingFee, f.balance(f.router))
	require.Equal(new(uint256.Int).Sub(senderBefore, value), f.balance(senderKey))

	state := ReadRouterState(f.host.State(), f.router)
	require.Equal(ownerKey, state.Owner)
	require.Equal(DefaultRoutingFee, state.FeesCollected)
	require.Equal(uint64(1), state.Nonce)

	require.Len(receipt.Logs, 1)
	require.Equal(f.router, receipt.Logs[0].Address)
	require.Equal([]common.Hash{RoutedEvent, common.BytesToHash(firstCell.Bytes())}, receipt.Logs[0].Topics)
	require.Equal(uint256.NewInt(1).PaddedBytes(32), receipt.Logs[0].Data)
}

func TestRouteAccumulatesFees(t *testing.T) {
	require := require.New(t)
	f := newRelayFixture(t)

	firstCells := make(map[common.Address]bool)
	for i := 1; i <= 3; i++ {
		receipt := f.route(recipientKey, routeValue(uint64(i)))
		require.True(receipt.Succeeded(), receipt.Err)
		firstCell, err := UnpackRouteResult(receipt.ReturnData)
		require.NoError(err)
		require.False(firstCells[firstCell])
		firstCells[firstCell] = true

		state := ReadRouterState(f.host.State(), f.router)
		require.Equal(uint64(i), state.Nonce)
		require.Equal(new(uint256.Int).Mul(DefaultRoutingFee, uint256.NewInt(uint64(i))), state.FeesCollected)
	}
	require.Equal(uint256.NewInt(6), f.balance(recipientKey))
}

func TestRouteRejections(t *testing.T) {
	tests := []struct {
		name  string
		value *uint256.Int
		gas   uint64
		input []byte
		err   error
	}{
		{
			name:  "value equal to fee",
			value: routeValue(0),
			gas:   DefaultParams().RequiredRouteGas(),
			input: PackRoute(recipientKey),
			err:   ErrInsufficientFee,
		},
		{
			name:  "gas one below the route budget",
			value: routeValue(1),
			gas:   DefaultParams().RequiredRouteGas() - 1,
			input: PackRoute(recipientKey),
			err:   ErrInsufficientGas,
		},
		{
			name:  "truncated destination",
			value: routeValue(1),
			gas:   DefaultParams().RequiredRouteGas(),
			input: PackRoute(recipientKey)[:23],
			err:   ErrInvalidInput,
		},
		{
			name:  "unknown selector",
			value: routeValue(1),
			gas:   DefaultParams().RequiredRouteGas(),
			input: []byte{0xca, 0xfe, 0xba, 0xbe},
			err:   ErrUnknownSelector,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			f := newRelayFixture(t)
			senderBefore := f.balance(senderKey)

			receipt := f.call(senderKey, f.router, tt.value, tt.gas, tt.input)
			require.False(receipt.Succeeded())
			require.ErrorIs(receipt.Err, tt.err)
			require.Equal([]byte(tt.err.Error()), receipt.ReturnData)
			require.Empty(receipt.Events(host.EventDeploy))

			require.Equal(senderBefore, f.balance(senderKey))
			state := ReadRouterState(f.host.State(), f.router)
			require.True(state.FeesCollected.IsZero())
			require.Zero(state.Nonce)
		})
	}
}

func TestRejectingDestinationSweepsToRouter(t *testing.T) {
	require := require.New(t)
	f := newRelayFixture(t)

	receipt := f.deploy(ownerKey, rejectorCodeHash, common.Hash{}, nil)
	require.True(receipt.Succeeded(), receipt.Err)
	destination := receipt.ContractAddress

	value := routeValue(5_000)
	receipt = f.route(destination, value)
	require.True(receipt.Succeeded(), receipt.Err)
	require.Len(receipt.Events(host.EventTerminate), int(DefaultHopCount))

	require.True(f.balance(destination).IsZero())
	require.Equal(value, f.balance(f.router))
	// the swept residual is not accounted as fees
	require.Equal(DefaultRoutingFee, ReadRouterState(f.host.State(), f.router).FeesCollected)
}

func TestWithdrawToOwner(t *testing.T) {
	require := require.New(t)
	f := newRelayFixture(t)

	receipt := f.call(ownerKey, f.router, new(uint256.Int), 1_000_000, PackWithdraw())
	require.ErrorIs(receipt.Err, ErrNoFees)

	require.True(f.route(recipientKey, routeValue(1)).Succeeded())
	require.True(f.route(recipientKey, routeValue(1)).Succeeded())

	receipt = f.call(senderKey, f.router, new(uint256.Int), 1_000_000, PackWithdraw())
	require.ErrorIs(receipt.Err, ErrNotOwner)

	ownerBefore := f.balance(ownerKey)
	receipt = f.call(ownerKey, f.router, new(uint256.Int), 1_000_000, PackWithdraw())
	require.True(receipt.Succeeded(), receipt.Err)

	fees := new(uint256.Int).Mul(DefaultRoutingFee, uint256.NewInt(2))
	amount, err := UnpackWithdrawResult(receipt.ReturnData)
	require.NoError(err)
	require.Equal(fees, amount)
	require.Equal(new(uint256.Int).Add(ownerBefore, fees), f.balance(ownerKey))
	require.True(f.balance(f.router).IsZero())
	require.True(ReadRouterState(f.host.State(), f.router).FeesCollected.IsZero())

	require.Len(receipt.Logs, 1)
	require.Equal(WithdrawnEvent, receipt.Logs[0].Topics[0])
	require.Equal(fees.PaddedBytes(32), receipt.Logs[0].Data)
}

func deployProxyRouter(t *testing.T, f *relayFixture) (proxy common.Address, router common.Address) {
	require := require.New(t)
	receipt := f.deploy(ownerKey, proxyCodeHash, common.Hash{}, nil)
	require.True(receipt.Succeeded(), receipt.Err)
	proxy = receipt.ContractAddress

	receipt = f.call(ownerKey, proxy, new(uint256.Int), 1_000_000, append([]byte{proxyOpDeploy}, f.code.CodeHash().Bytes()...))
	require.True(receipt.Succeeded(), receipt.Err)
	router = common.BytesToAddress(receipt.ReturnData)
	require.Equal(proxy, ReadRouterState(f.host.State(), router).Owner)

	receipt = f.call(senderKey, router, routeValue(1), f.code.Params().RequiredRouteGas(), PackRoute(recipientKey))
	require.True(receipt.Succeeded(), receipt.Err)
	return proxy, router
}

func TestWithdrawFailureKeepsFees(t *testing.T) {
	require := require.New(t)
	f := newRelayFixture(t)
	proxy, router := deployProxyRouter(t, f)

	receipt := f.call(ownerKey, proxy, new(uint256.Int), 1_000_000, []byte{proxyOpSetMode, proxyReject})
	require.True(receipt.Succeeded(), receipt.Err)

	receipt = f.call(ownerKey, proxy, new(uint256.Int), 1_000_000, []byte{proxyOpWithdraw})
	require.False(receipt.Succeeded())
	require.ErrorIs(receipt.Err, ErrWithdrawFailed)

	require.Equal(DefaultRoutingFee, ReadRouterState(f.host.State(), router).FeesCollected)
	require.Equal(DefaultRoutingFee, f.balance(router))
	require.True(f.balance(proxy).IsZero())
}

func TestReentrantWithdrawSeesNoFees(t *testing.T) {
	require := require.New(t)
	f := newRelayFixture(t)
	proxy, router := deployProxyRouter(t, f)

	receipt := f.call(ownerKey, proxy, new(uint256.Int), 1_000_000, []byte{proxyOpSetMode, proxyReenter})
	require.True(receipt.Succeeded(), receipt.Err)

	receipt = f.call(ownerKey, proxy, new(uint256.Int), 3_000_000, []byte{proxyOpWithdraw})
	require.True(receipt.Succeeded(), receipt.Err)

	reentry := f.host.State().GetState(proxy, proxyReentrySlot)
	require.Equal(common.BytesToHash([]byte("execution reverted: no fees")), reentry)
	require.Equal(DefaultRoutingFee, f.balance(proxy))
	require.True(f.balance(router).IsZero())
	require.True(ReadRouterState(f.host.State(), router).FeesCollected.IsZero())
}

func TestStandaloneCellClampsAndTerminates(t *testing.T) {
	require := require.New(t)
	f := newRelayFixture(t)

	receipt := f.deploy(senderKey, f.code.CodeHash(), common.Hash{0x01}, PackCellConstructor(200, f.router))
	require.True(receipt.Succeeded(), receipt.Err)
	cell := receipt.ContractAddress
	require.Equal(TypeCell, ReadContractType(f.host.State(), cell))
	require.Equal(CellState{HopsRemaining: DefaultHopCount, Router: f.router}, ReadCellState(f.host.State(), cell))

	// a malformed destination skips forwarding and still terminates
	receipt = f.call(senderKey, cell, uint256.NewInt(1_000), 1_000_000, []byte{0x01, 0x02})
	require.True(receipt.Succeeded(), receipt.Err)
	require.Len(receipt.Events(host.EventTerminate), 1)
	require.False(f.host.State().HasCode(cell))
	require.Equal(uint256.NewInt(1_000), f.balance(f.router))
}

func TestDeployRejectsUnknownType(t *testing.T) {
	f := newRelayFixture(t)
	receipt := f.deploy(senderKey, f.code.CodeHash(), common.Hash{0x02}, []byte{0x07})
	require.ErrorIs(t, receipt.Err, ErrInvalidType)
}

func TestBlake3SaltRoutes(t *testing.T) {
	require := require.New(t)
	f := newRelayFixture(t, WithSaltDeriver(Blake3Salt{}))
	require.NotEqual(newTestRelay(t).CodeHash(), f.code.CodeHash())

	receipt := f.route(recipientKey, routeValue(77))
	require.True(receipt.Succeeded(), receipt.Err)
	require.Equal(uint256.NewInt(77), f.balance(recipientKey))

	firstCell, err := UnpackRouteResult(receipt.ReturnData)
	require.NoError(err)
	salt := Blake3Salt{}.DeriveSalt(SaltInput{
		Hops:        DefaultHopCount,
		Router:      f.router,
		Nonce:       1,
		BlockNumber: testBlock,
		Timestamp:   testTimestamp,
	})
	require.Equal(host.ContractAddress(f.router, salt, f.code.CodeHash()), firstCell)
}

func TestCustomHopCount(t *testing.T) {
	require := require.New(t)
	params := DefaultParams()
	params.HopCount = 3
	f := newRelayFixture(t, WithParams(params))

	require.Equal(uint64(3_500_000), f.code.Params().RequiredRouteGas())
	receipt := f.route(recipientKey, routeValue(10))
	require.True(receipt.Succeeded(), receipt.Err)
	require.Len(receipt.Events(host.EventDeploy), 3)
	require.Len(receipt.Events(host.EventTerminate), 3)
	require.Equal(uint256.NewInt(10), f.balance(recipientKey))
}
