// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package host is an in-memory contract runtime. It executes registered
// contracts with nested calls, CREATE2-style instantiation, gas metering,
// journaled state and self-destruct, and commits the result of every
// message to a key-value database.
package host

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/database"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/tracing"
	log "github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/hoprelay/contract"
	"github.com/luxfi/hoprelay/modules"
)

// DefaultMaxCallDepth bounds the nesting of calls and instantiations.
const DefaultMaxCallDepth = 64

var (
	ErrNilValue    = errors.New("nil message value")
	ErrNoCodeHash  = errors.New("deploy message without code hash")
	ErrNilDatabase = errors.New("nil database")
	ErrZeroFund    = errors.New("fund amount must be positive")
)

// Config configures a Host. Zero fields take their defaults.
type Config struct {
	// Registry resolves code hashes. Defaults to modules.Default().
	Registry *modules.Registry
	Schedule GasSchedule
	// MaxCallDepth defaults to DefaultMaxCallDepth.
	MaxCallDepth int
	// StorageDeposit is taken from the transaction origin for every
	// instantiated contract and released to its self-destruct beneficiary.
	StorageDeposit *uint256.Int
	Logger         log.Logger
	// Registerer receives the host metrics. Nil disables registration.
	Registerer prometheus.Registerer
}

// BlockContext is the block every message is executed in.
type BlockContext struct {
	Number    uint64
	Timestamp uint64
}

// Host executes messages against a StateDB.
type Host struct {
	registry       *modules.Registry
	schedule       GasSchedule
	maxDepth       int
	storageDeposit *uint256.Int
	log            log.Logger
	metrics        *metrics

	state *StateDB
	block BlockContext
}

// New opens a host on the state committed to db.
func New(db database.Database, cfg Config) (*Host, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	if cfg.Registry == nil {
		cfg.Registry = modules.Default()
	}
	if cfg.Schedule == (GasSchedule{}) {
		cfg.Schedule = DefaultGasSchedule()
	}
	if cfg.MaxCallDepth <= 0 {
		cfg.MaxCallDepth = DefaultMaxCallDepth
	}
	if cfg.StorageDeposit == nil {
		cfg.StorageDeposit = new(uint256.Int)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Root()
	}
	m, err := newMetrics(cfg.Registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register host metrics: %w", err)
	}
	return &Host{
		registry:       cfg.Registry,
		schedule:       cfg.Schedule,
		maxDepth:       cfg.MaxCallDepth,
		storageDeposit: cfg.StorageDeposit.Clone(),
		log:            cfg.Logger,
		metrics:        m,
		state:          NewStateDB(db),
		block:          BlockContext{Number: 1},
	}, nil
}

// State exposes the world state for inspection.
func (h *Host) State() *StateDB {
	return h.state
}

func (h *Host) Block() BlockContext {
	return h.block
}

func (h *Host) SetBlock(block BlockContext) {
	h.block = block
}

// AdvanceBlock moves to the next block, seconds after the current one.
func (h *Host) AdvanceBlock(seconds uint64) BlockContext {
	h.block.Number++
	h.block.Timestamp += seconds
	return h.block
}

// Fund mints amount to addr and commits it.
func (h *Host) Fund(addr common.Address, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return ErrZeroFund
	}
	h.state.AddBalance(addr, amount, tracing.BalanceIncreaseGenesisBalance)
	return h.state.Commit()
}

// ContractAddress is the address a deploy message from deployer creates.
func ContractAddress(deployer common.Address, salt common.Hash, codeHash common.Hash) common.Address {
	return common.CreateAddress2(deployer, salt, codeHash.Bytes())
}

// Execute runs msg in the current block and commits its effects. A failed
// execution is reported by the receipt; the returned error is reserved for
// malformed messages and storage failures.
func (h *Host) Execute(msg Message) (*Receipt, error) {
	if msg.Value == nil {
		return nil, ErrNilValue
	}
	if msg.To == nil && msg.CodeHash == (common.Hash{}) {
		return nil, ErrNoCodeHash
	}

	tx := &execution{
		host:     h,
		state:    h.state,
		schedule: h.schedule,
		block:    h.block,
		origin:   msg.From,
		gasPrice: msg.GasPrice,
	}
	snapshot := h.state.Snapshot()

	receipt := &Receipt{Status: StatusSuccess}
	var err error
	if msg.To == nil {
		receipt.ContractAddress, receipt.GasUsed, err = tx.create(0, msg.From, msg.CodeHash, msg.Gas, msg.Value, msg.Input, msg.Salt)
	} else {
		receipt.ReturnData, receipt.GasUsed, err = tx.call(0, msg.From, *msg.To, msg.Gas, msg.Value, msg.Input)
	}
	if err != nil {
		h.state.RevertToSnapshot(snapshot)
		receipt.Status = StatusFailed
		receipt.ContractAddress = common.Address{}
		receipt.ReturnData = revertReason(err)
		receipt.Err = err
	}
	receipt.Logs = h.state.Logs()
	receipt.Trace = tx.trace

	if err := h.state.Commit(); err != nil {
		return nil, err
	}

	status := "success"
	if !receipt.Succeeded() {
		status = "failed"
	}
	h.metrics.transactions.WithLabelValues(status).Inc()
	h.metrics.gasUsed.Observe(float64(receipt.GasUsed))
	h.log.Info("executed message",
		"from", msg.From,
		"to", msg.To,
		"status", status,
		"gasUsed", receipt.GasUsed,
		"frames", len(receipt.Trace),
		"logs", len(receipt.Logs),
	)
	return receipt, nil
}

func revertReason(err error) []byte {
	var revert *contract.RevertError
	if errors.As(err, &revert) {
		return revert.Reason
	}
	return []byte(err.Error())
}

// execution is the context of a single message.
type execution struct {
	host     *Host
	state    *StateDB
	schedule GasSchedule
	block    BlockContext
	origin   common.Address
	gasPrice uint64
	trace    []*Event
}

func (tx *execution) record(e *Event) int {
	tx.trace = append(tx.trace, e)
	return len(tx.trace) - 1
}

// call transfers value and, if to holds code, runs it. It returns the gas the
// callee consumed.
func (tx *execution) call(depth int, caller, to common.Address, gas uint64, value *uint256.Int, input []byte) ([]byte, uint64, error) {
	if value == nil {
		value = new(uint256.Int)
	}
	mark := tx.record(&Event{
		Kind:     EventCall,
		Depth:    depth,
		From:     caller,
		To:       to,
		CodeHash: tx.state.GetCodeHash(to),
		Value:    value.Clone(),
		Input:    append([]byte(nil), input...),
		GasLimit: gas,
	})
	if depth > tx.host.maxDepth {
		return nil, 0, tx.fail(mark, contract.ErrDepthExceeded)
	}

	snapshot := tx.state.Snapshot()
	if err := tx.state.Transfer(caller, to, value); err != nil {
		return nil, 0, tx.fail(mark, err)
	}

	codeHash := tx.state.GetCodeHash(to)
	if codeHash == (common.Hash{}) {
		return nil, 0, nil
	}
	module, ok := tx.host.registry.GetModuleByCodeHash(codeHash)
	if !ok {
		tx.state.RevertToSnapshot(snapshot)
		return nil, 0, tx.fail(mark, contract.ErrCodeNotFound)
	}

	f := &frame{
		tx:       tx,
		depth:    depth,
		caller:   caller,
		address:  to,
		codeHash: codeHash,
		value:    value.Clone(),
		input:    input,
		gasLimit: gas,
	}
	tx.host.metrics.frames.Inc()
	tx.host.log.Debug("entering frame",
		"depth", depth,
		"caller", caller,
		"address", to,
		"value", value,
		"gas", gas,
	)

	ret, err := module.Contract.Call(f)
	if err = tx.exit(f, snapshot, mark, err); err != nil {
		return nil, f.gasUsed, err
	}
	return ret, f.gasUsed, nil
}

// create instantiates the code registered under codeHash and runs its
// constructor.
func (tx *execution) create(depth int, deployer common.Address, codeHash common.Hash, gas uint64, value *uint256.Int, input []byte, salt common.Hash) (common.Address, uint64, error) {
	if value == nil {
		value = new(uint256.Int)
	}
	addr := ContractAddress(deployer, salt, codeHash)
	mark := tx.record(&Event{
		Kind:     EventDeploy,
		Depth:    depth,
		From:     deployer,
		To:       addr,
		CodeHash: codeHash,
		Value:    value.Clone(),
		Input:    append([]byte(nil), input...),
		GasLimit: gas,
	})
	if depth > tx.host.maxDepth {
		return common.Address{}, 0, tx.fail(mark, contract.ErrDepthExceeded)
	}
	module, ok := tx.host.registry.GetModuleByCodeHash(codeHash)
	if !ok {
		return common.Address{}, 0, tx.fail(mark, contract.ErrCodeNotFound)
	}
	if tx.state.HasCode(addr) {
		return common.Address{}, 0, tx.fail(mark, contract.ErrAddressCollision)
	}

	snapshot := tx.state.Snapshot()
	tx.state.SetCodeHash(addr, codeHash)
	if deposit := tx.host.storageDeposit; !deposit.IsZero() {
		if tx.state.GetBalance(tx.origin).Lt(deposit) {
			tx.state.RevertToSnapshot(snapshot)
			return common.Address{}, 0, tx.fail(mark, contract.ErrInsufficientFunds)
		}
		tx.state.SubBalance(tx.origin, deposit, tracing.BalanceChangeTransfer)
		tx.state.SetDeposit(addr, deposit)
	}
	if err := tx.state.Transfer(deployer, addr, value); err != nil {
		tx.state.RevertToSnapshot(snapshot)
		return common.Address{}, 0, tx.fail(mark, err)
	}

	f := &frame{
		tx:        tx,
		depth:     depth,
		caller:    deployer,
		address:   addr,
		codeHash:  codeHash,
		value:     value.Clone(),
		input:     input,
		gasLimit:  gas,
		deploying: true,
	}
	tx.host.metrics.frames.Inc()
	tx.host.log.Debug("deploying contract",
		"depth", depth,
		"deployer", deployer,
		"address", addr,
		"codeHash", codeHash,
		"gas", gas,
	)

	err := module.Contract.Deploy(f)
	if err = tx.exit(f, snapshot, mark, err); err != nil {
		return common.Address{}, f.gasUsed, err
	}
	tx.host.metrics.deployments.Inc()
	return addr, f.gasUsed, nil
}

// exit settles a frame: on success a pending self-destruct is applied, on
// failure every effect since snapshot is undone.
func (tx *execution) exit(f *frame, snapshot int, mark int, err error) error {
	if err == nil && f.outOfGas {
		err = contract.ErrOutOfGas
	}
	if err != nil {
		tx.state.RevertToSnapshot(snapshot)
		tx.host.metrics.reverts.Inc()
		tx.host.log.Debug("frame reverted",
			"depth", f.depth,
			"address", f.address,
			"err", err,
		)
		return tx.fail(mark, err)
	}
	if f.terminated {
		amount := tx.state.SelfDestruct(f.address, f.beneficiary)
		tx.record(&Event{
			Kind:     EventTerminate,
			Depth:    f.depth,
			From:     f.address,
			To:       f.beneficiary,
			CodeHash: f.codeHash,
			Value:    amount,
		})
		tx.host.metrics.terminations.Inc()
	}
	return nil
}

// fail marks the frame recorded at mark as failed and everything it did as
// reverted, and wraps err for the caller.
func (tx *execution) fail(mark int, err error) error {
	tx.trace[mark].Err = err
	for _, e := range tx.trace[mark+1:] {
		e.Reverted = true
	}
	return &contract.RevertError{Reason: []byte(err.Error()), Err: err}
}
