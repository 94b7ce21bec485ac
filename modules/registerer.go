// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package modules

import (
	"fmt"
	"sort"
	"sync"

	"github.com/luxfi/geth/common"
)

// Registry maps code hashes to contract implementations. The host resolves
// every instantiation through a Registry.
type Registry struct {
	mu sync.RWMutex
	// modules is kept sorted by code hash for deterministic iteration
	modules []Module
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make([]Module, 0)}
}

// defaultRegistry holds the modules registered from package init functions.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// RegisterModule registers [stm] with the default registry.
func RegisterModule(stm Module) error {
	return defaultRegistry.RegisterModule(stm)
}

// GetModuleByCodeHash looks up [codeHash] in the default registry.
func GetModuleByCodeHash(codeHash common.Hash) (Module, bool) {
	return defaultRegistry.GetModuleByCodeHash(codeHash)
}

// GetModule looks up [key] in the default registry.
func GetModule(key string) (Module, bool) {
	return defaultRegistry.GetModule(key)
}

// RegisteredModules lists the default registry.
func RegisteredModules() []Module {
	return defaultRegistry.RegisteredModules()
}

// RegisterModule adds a module. Keys and code hashes must be unique.
func (r *Registry) RegisterModule(stm Module) error {
	if stm.CodeHash == (common.Hash{}) {
		return fmt.Errorf("module %q has an empty code hash", stm.ConfigKey)
	}
	if stm.Contract == nil {
		return fmt.Errorf("module %q has no contract", stm.ConfigKey)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, registeredModule := range r.modules {
		if registeredModule.ConfigKey == stm.ConfigKey {
			return fmt.Errorf("name %s already used by a registered module", stm.ConfigKey)
		}
		if registeredModule.CodeHash == stm.CodeHash {
			return fmt.Errorf("code hash %s already used by module %s", stm.CodeHash, registeredModule.ConfigKey)
		}
	}
	r.modules = insertSortedByCodeHash(r.modules, stm)
	return nil
}

func (r *Registry) GetModuleByCodeHash(codeHash common.Hash) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, stm := range r.modules {
		if stm.CodeHash == codeHash {
			return stm, true
		}
	}
	return Module{}, false
}

func (r *Registry) GetModule(key string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, stm := range r.modules {
		if stm.ConfigKey == key {
			return stm, true
		}
	}
	return Module{}, false
}

// RegisteredModules returns a copy of the registered modules.
func (r *Registry) RegisteredModules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Module, len(r.modules))
	copy(out, r.modules)
	return out
}

func insertSortedByCodeHash(data []Module, stm Module) []Module {
	data = append(data, stm)
	sort.Sort(moduleArray(data))
	return data
}
