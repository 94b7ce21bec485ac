// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package modules

import (
	"bytes"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/hoprelay/contract"
)

// Module is a piece of contract code the host can instantiate by hash.
type Module struct {
	// ConfigKey is the unique name of the module.
	ConfigKey string
	// CodeHash identifies the code and feeds address derivation.
	CodeHash common.Hash
	// Contract is the implementation run for every instance.
	Contract contract.Contract
}

type moduleArray []Module

func (m moduleArray) Len() int {
	return len(m)
}

func (m moduleArray) Swap(i, j int) {
	m[i], m[j] = m[j], m[i]
}

func (m moduleArray) Less(i, j int) bool {
	return bytes.Compare(m[i].CodeHash[:], m[j].CodeHash[:]) < 0
}
