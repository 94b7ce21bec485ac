// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sim drives a relay deployment on an in-memory host from a
// config.Config scenario.
package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/geth/common"
	log "github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/hoprelay/config"
	"github.com/luxfi/hoprelay/host"
	"github.com/luxfi/hoprelay/modules"
	"github.com/luxfi/hoprelay/relay"
)

// RouterDeployGas is the gas given to the router deployment.
const RouterDeployGas = 1_000_000

var ErrRouterDeployFailed = errors.New("router deployment failed")

// Simulator owns a host with one deployed router.
type Simulator struct {
	host      *host.Host
	module    modules.Module
	params    relay.Params
	router    common.Address
	owner     common.Address
	gasPrice  uint64
	blockTime uint64
	steps     []config.Step
	log       log.Logger
}

type options struct {
	logger     log.Logger
	registerer prometheus.Registerer
}

type Option func(*options)

func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRegisterer registers the host metrics with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = r
	}
}

// New builds the host described by cfg, funds the genesis accounts and
// deploys the router from the configured owner.
func New(cfg *config.Config, opts ...Option) (*Simulator, error) {
	o := options{logger: log.Root()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Verify(); err != nil {
		return nil, err
	}

	rc, err := cfg.RelayConfig()
	if err != nil {
		return nil, err
	}
	registry := modules.NewRegistry()
	module, err := rc.Register(registry)
	if err != nil {
		return nil, err
	}

	hc, err := cfg.HostConfig()
	if err != nil {
		return nil, err
	}
	hc.Registry = registry
	hc.Logger = o.logger
	hc.Registerer = o.registerer
	h, err := host.New(memdb.New(), hc)
	if err != nil {
		return nil, err
	}
	h.SetBlock(cfg.BlockContext())

	alloc, err := cfg.GenesisAlloc()
	if err != nil {
		return nil, err
	}
	for _, a := range alloc {
		if err := h.Fund(a.Address, a.Balance); err != nil {
			return nil, fmt.Errorf("failed to fund %s: %w", a.Address, err)
		}
	}

	s := &Simulator{
		host:      h,
		module:    module,
		params:    rc.Params,
		owner:     cfg.OwnerAddress(),
		gasPrice:  cfg.Host.GasPrice,
		blockTime: cfg.Block.BlockTime,
		steps:     cfg.Steps,
		log:       o.logger,
	}
	receipt, err := h.Execute(host.Message{
		From:     s.owner,
		CodeHash: module.CodeHash,
		Value:    new(uint256.Int),
		Gas:      RouterDeployGas,
		GasPrice: s.gasPrice,
		Input:    relay.PackRouterConstructor(),
	})
	if err != nil {
		return nil, err
	}
	if !receipt.Succeeded() {
		return nil, fmt.Errorf("%w: %w", ErrRouterDeployFailed, receipt.Err)
	}
	s.router = receipt.ContractAddress
	s.log.Info("deployed router",
		"router", s.router,
		"owner", s.owner,
		"codeHash", module.CodeHash,
	)
	return s, nil
}

func (s *Simulator) Host() *host.Host       { return s.host }
func (s *Simulator) Router() common.Address { return s.router }
func (s *Simulator) Owner() common.Address  { return s.owner }
func (s *Simulator) CodeHash() common.Hash  { return s.module.CodeHash }
func (s *Simulator) Params() relay.Params   { return s.params }
func (s *Simulator) Steps() []config.Step   { return s.steps }

func (s *Simulator) RouterState() relay.RouterState {
	return relay.ReadRouterState(s.host.State(), s.router)
}

// Hop is one cell of a route.
type Hop struct {
	Cell common.Address
	// Hops is the hop count the cell was constructed with.
	Hops       uint8
	Terminated bool
	// Swept is what the cell's self-destruct returned to the router.
	Swept *uint256.Int
}

// Result is the outcome of one step.
type Result struct {
	Step    config.Step
	Receipt *host.Receipt
	// FirstCell is set by a successful route.
	FirstCell common.Address
	Hops      []Hop
	// Withdrawn is set by a successful withdraw.
	Withdrawn *uint256.Int
	Block     host.BlockContext
}

// Route sends value from from to destination through the router. A zero gas
// selects the route budget.
func (s *Simulator) Route(from, destination common.Address, value *uint256.Int, gas uint64) (*Result, error) {
	if gas == 0 {
		gas = s.params.RequiredRouteGas()
	}
	res, err := s.execute(from, value, gas, relay.PackRoute(destination))
	if err != nil || !res.Receipt.Succeeded() {
		return res, err
	}
	if res.FirstCell, err = relay.UnpackRouteResult(res.Receipt.ReturnData); err != nil {
		return nil, err
	}
	res.Hops = s.hops(res.Receipt)
	return res, nil
}

// Withdraw asks the router to pay its fees to from.
func (s *Simulator) Withdraw(from common.Address, gas uint64) (*Result, error) {
	if gas == 0 {
		gas = config.DefaultWithdrawGas
	}
	res, err := s.execute(from, new(uint256.Int), gas, relay.PackWithdraw())
	if err != nil || !res.Receipt.Succeeded() {
		return res, err
	}
	if res.Withdrawn, err = relay.UnpackWithdrawResult(res.Receipt.ReturnData); err != nil {
		return nil, err
	}
	return res, nil
}

// Advance moves the host blocks forward.
func (s *Simulator) Advance(blocks uint64) host.BlockContext {
	for range blocks {
		s.host.AdvanceBlock(s.blockTime)
	}
	return s.host.Block()
}

func (s *Simulator) execute(from common.Address, value *uint256.Int, gas uint64, input []byte) (*Result, error) {
	router := s.router
	receipt, err := s.host.Execute(host.Message{
		From:     from,
		To:       &router,
		Value:    value,
		Gas:      gas,
		GasPrice: s.gasPrice,
		Input:    input,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Receipt: receipt, Block: s.host.Block()}, nil
}

// hops pairs every cell deployment of a route with its self-destruct.
func (s *Simulator) hops(receipt *host.Receipt) []Hop {
	swept := make(map[common.Address]*uint256.Int)
	for _, e := range receipt.Events(host.EventTerminate) {
		swept[e.From] = e.Value
	}

	var hops []Hop
	for _, e := range receipt.Events(host.EventDeploy) {
		if e.CodeHash != s.module.CodeHash || len(e.Input) < 2 || e.Input[0] != relay.TypeCell {
			continue
		}
		amount, ok := swept[e.To]
		hops = append(hops, Hop{
			Cell:       e.To,
			Hops:       e.Input[1],
			Terminated: ok,
			Swept:      amount,
		})
	}
	return hops
}

// Apply executes a single scenario step.
func (s *Simulator) Apply(step config.Step) (*Result, error) {
	var (
		res *Result
		err error
	)
	switch step.Action {
	case config.ActionRoute:
		var from, destination common.Address
		var value *uint256.Int
		if from, err = config.ParseAddress(step.From); err != nil {
			return nil, err
		}
		if destination, err = config.ParseAddress(step.Destination); err != nil {
			return nil, err
		}
		if value, err = config.ParseAmount(step.Value); err != nil {
			return nil, err
		}
		res, err = s.Route(from, destination, value, step.Gas)
	case config.ActionWithdraw:
		var from common.Address
		if from, err = config.ParseAddress(step.From); err != nil {
			return nil, err
		}
		res, err = s.Withdraw(from, step.Gas)
	case config.ActionAdvance:
		res = &Result{Block: s.Advance(max(step.Blocks, 1))}
	default:
		return nil, fmt.Errorf("%w %q", config.ErrUnknownAction, step.Action)
	}
	if err != nil {
		return nil, err
	}
	res.Step = step
	return res, nil
}

// Run applies the configured steps in order. A failed message does not stop
// the scenario; only host errors and cancellation do.
func (s *Simulator) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, 0, len(s.steps))
	for i, step := range s.steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := s.Apply(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i, err)
		}
		if res.Receipt != nil && !res.Receipt.Succeeded() {
			s.log.Warn("step failed",
				"step", i,
				"action", step.Action,
				"err", res.Receipt.Err,
			)
		}
		results = append(results, res)
	}
	return results, nil
}
