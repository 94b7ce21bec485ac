// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config loads the TOML description of a relay simulation: the
// relay code parameters, the host settings, the genesis allocation and the
// steps to execute.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/pelletier/go-toml/v2"

	"github.com/luxfi/hoprelay/host"
	"github.com/luxfi/hoprelay/relay"
)

var (
	ErrNotTOML        = errors.New("config file must be a toml file")
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrUnknownAction  = errors.New("unknown step action")
	ErrNoOwner        = errors.New("router owner not set")
)

// Step actions
const (
	ActionRoute    = "route"
	ActionWithdraw = "withdraw"
	ActionAdvance  = "advance"
)

// Config is the root of a simulation file.
type Config struct {
	Relay Relay `toml:"relay"`
	Host  Host  `toml:"host"`
	Block Block `toml:"block"`
	// Owner deploys the router and is the only account allowed to withdraw.
	Owner   string       `toml:"owner"`
	Genesis []Allocation `toml:"genesis"`
	Steps   []Step       `toml:"step"`
}

// Relay holds the code parameters. Amounts are decimal strings in the
// smallest native unit.
type Relay struct {
	RoutingFee    string `toml:"routing_fee"`
	HopCount      uint8  `toml:"hop_count"`
	DeploymentGas uint64 `toml:"deployment_gas"`
	ForwardGas    uint64 `toml:"forward_gas"`
	MaxGasPerCell uint64 `toml:"max_gas_per_cell"`
	SaltStrategy  string `toml:"salt_strategy"`
}

type Host struct {
	MaxCallDepth   int              `toml:"max_call_depth"`
	StorageDeposit string           `toml:"storage_deposit"`
	GasPrice       uint64           `toml:"gas_price"`
	Gas            host.GasSchedule `toml:"gas"`
}

type Block struct {
	Number    uint64 `toml:"number"`
	Timestamp uint64 `toml:"timestamp"`
	// BlockTime is the number of seconds an advance step moves forward.
	BlockTime uint64 `toml:"block_time"`
}

// Allocation funds an account before the first step.
type Allocation struct {
	Address string `toml:"address"`
	Balance string `toml:"balance"`
}

// Step is one message of the scenario.
type Step struct {
	Action      string `toml:"action"`
	From        string `toml:"from"`
	Destination string `toml:"destination"`
	Value       string `toml:"value"`
	// Gas defaults to the route budget for routes and to DefaultWithdrawGas
	// for withdrawals.
	Gas uint64 `toml:"gas"`
	// Blocks is the number of blocks an advance step moves forward.
	Blocks uint64 `toml:"blocks"`
}

// DefaultWithdrawGas is the gas given to withdraw steps without an explicit
// limit.
const DefaultWithdrawGas = 1_000_000

// Default returns the configuration every file is layered on.
func Default() *Config {
	p := relay.DefaultParams()
	return &Config{
		Relay: Relay{
			RoutingFee:    p.RoutingFee.Dec(),
			HopCount:      p.HopCount,
			DeploymentGas: p.DeploymentGas,
			ForwardGas:    p.ForwardGas,
			MaxGasPerCell: p.MaxGasPerCell,
			SaltStrategy:  relay.SaltKeccak256,
		},
		Host: Host{
			MaxCallDepth:   host.DefaultMaxCallDepth,
			StorageDeposit: "0",
			GasPrice:       1,
			Gas:            host.DefaultGasSchedule(),
		},
		Block: Block{
			Number:    1,
			BlockTime: 12,
		},
	}
}

// Load reads and verifies the file at path.
func Load(path string) (*Config, error) {
	if filepath.Ext(path) != ".toml" {
		return nil, ErrNotTOML
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(body)
}

// Parse decodes body over the defaults and verifies the result.
func Parse(body []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(body, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Verify checks every field that Parse cannot type-check.
func (c *Config) Verify() error {
	if _, err := c.RelayConfig(); err != nil {
		return fmt.Errorf("relay: %w", err)
	}
	if _, err := ParseAmount(c.Host.StorageDeposit); err != nil {
		return fmt.Errorf("host.storage_deposit: %w", err)
	}
	if c.Host.MaxCallDepth < 0 {
		return fmt.Errorf("host.max_call_depth: must not be negative")
	}
	if c.Owner == "" {
		return ErrNoOwner
	}
	if _, err := ParseAddress(c.Owner); err != nil {
		return fmt.Errorf("owner: %w", err)
	}
	if _, err := c.GenesisAlloc(); err != nil {
		return err
	}
	for i, step := range c.Steps {
		if err := step.verify(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func (s Step) verify() error {
	switch s.Action {
	case ActionRoute:
		if _, err := ParseAddress(s.Destination); err != nil {
			return fmt.Errorf("destination: %w", err)
		}
		if _, err := ParseAmount(s.Value); err != nil {
			return fmt.Errorf("value: %w", err)
		}
	case ActionWithdraw:
	case ActionAdvance:
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnknownAction, s.Action)
	}
	if _, err := ParseAddress(s.From); err != nil {
		return fmt.Errorf("from: %w", err)
	}
	return nil
}

// RelayParams converts the relay section into protocol params.
func (c *Config) RelayParams() (relay.Params, error) {
	fee, err := ParseAmount(c.Relay.RoutingFee)
	if err != nil {
		return relay.Params{}, fmt.Errorf("routing_fee: %w", err)
	}
	p := relay.Params{
		RoutingFee:    fee,
		HopCount:      c.Relay.HopCount,
		DeploymentGas: c.Relay.DeploymentGas,
		ForwardGas:    c.Relay.ForwardGas,
		MaxGasPerCell: c.Relay.MaxGasPerCell,
	}
	return p, p.Verify()
}

// RelayConfig builds the module config of the relay code under
// relay.ConfigKey.
func (c *Config) RelayConfig() (*relay.Config, error) {
	p, err := c.RelayParams()
	if err != nil {
		return nil, err
	}
	rc := relay.NewConfig(relay.ConfigKey)
	rc.Params = p
	rc.SaltStrategy = c.Relay.SaltStrategy
	return rc, rc.Verify()
}

// HostConfig converts the host section. The registry, logger and metrics
// registerer are left for the caller.
func (c *Config) HostConfig() (host.Config, error) {
	deposit, err := ParseAmount(c.Host.StorageDeposit)
	if err != nil {
		return host.Config{}, fmt.Errorf("host.storage_deposit: %w", err)
	}
	return host.Config{
		Schedule:       c.Host.Gas,
		MaxCallDepth:   c.Host.MaxCallDepth,
		StorageDeposit: deposit,
	}, nil
}

// BlockContext is the block the simulation starts in.
func (c *Config) BlockContext() host.BlockContext {
	return host.BlockContext{Number: c.Block.Number, Timestamp: c.Block.Timestamp}
}

// OwnerAddress is the parsed Owner.
func (c *Config) OwnerAddress() common.Address {
	addr, _ := ParseAddress(c.Owner)
	return addr
}

// Funding is a parsed genesis allocation.
type Funding struct {
	Address common.Address
	Balance *uint256.Int
}

// GenesisAlloc parses the genesis allocations in file order.
func (c *Config) GenesisAlloc() ([]Funding, error) {
	out := make([]Funding, 0, len(c.Genesis))
	for i, a := range c.Genesis {
		addr, err := ParseAddress(a.Address)
		if err != nil {
			return nil, fmt.Errorf("genesis %d: %w", i, err)
		}
		balance, err := ParseAmount(a.Balance)
		if err != nil {
			return nil, fmt.Errorf("genesis %d: %w", i, err)
		}
		out = append(out, Funding{Address: addr, Balance: balance})
	}
	return out, nil
}

// ParseAddress parses a hex address.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}

// ParseAmount parses a decimal amount. The empty string is zero.
func ParseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return new(uint256.Int), nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidAmount, s, err)
	}
	return v, nil
}
