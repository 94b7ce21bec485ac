// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

import (
	"fmt"

	"github.com/luxfi/hoprelay/modules"
)

// ConfigKey is the registry key of the default relay code.
const ConfigKey = "hopRelayConfig"

// Module is the default relay code, registered with modules.Default().
var Module modules.Module

func init() {
	code, err := New()
	if err != nil {
		panic(err)
	}
	Module = modules.Module{
		ConfigKey: ConfigKey,
		CodeHash:  code.CodeHash(),
		Contract:  code,
	}
	if err := modules.RegisterModule(Module); err != nil {
		panic(err)
	}
}

// Config describes a relay code variant.
type Config struct {
	key          string
	Params       Params `json:"params"`
	SaltStrategy string `json:"saltStrategy,omitempty"`
}

// NewConfig returns the default config under key.
func NewConfig(key string) *Config {
	return &Config{key: key, Params: DefaultParams(), SaltStrategy: SaltKeccak256}
}

func (c *Config) Key() string {
	return c.key
}

func (c *Config) Verify() error {
	if c.key == "" {
		return fmt.Errorf("relay config has no key")
	}
	if _, err := SaltDeriverByName(c.SaltStrategy); err != nil {
		return err
	}
	return c.Params.Verify()
}

func (c *Config) Equal(other *Config) bool {
	if other == nil {
		return false
	}
	return c.key == other.key &&
		c.SaltStrategy == other.SaltStrategy &&
		c.Params.HopCount == other.Params.HopCount &&
		c.Params.DeploymentGas == other.Params.DeploymentGas &&
		c.Params.ForwardGas == other.Params.ForwardGas &&
		c.Params.MaxGasPerCell == other.Params.MaxGasPerCell &&
		c.Params.RoutingFee != nil && other.Params.RoutingFee != nil &&
		c.Params.RoutingFee.Eq(other.Params.RoutingFee)
}

// Register builds the relay code described by c and adds it to registry.
func (c *Config) Register(registry *modules.Registry) (modules.Module, error) {
	if err := c.Verify(); err != nil {
		return modules.Module{}, err
	}
	salts, err := SaltDeriverByName(c.SaltStrategy)
	if err != nil {
		return modules.Module{}, err
	}
	code, err := New(WithParams(c.Params), WithSaltDeriver(salts))
	if err != nil {
		return modules.Module{}, err
	}
	m := modules.Module{
		ConfigKey: c.key,
		CodeHash:  code.CodeHash(),
		Contract:  code,
	}
	if err := registry.RegisterModule(m); err != nil {
		return modules.Module{}, err
	}
	return m, nil
}
