// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	ethtypes "github.com/luxfi/geth/core/types"
)

// Message is a top-level transaction. A nil To deploys the code registered
// under CodeHash at an address derived from From and Salt.
type Message struct {
	From     common.Address
	To       *common.Address
	CodeHash common.Hash
	Salt     common.Hash
	Value    *uint256.Int
	Gas      uint64
	GasPrice uint64
	Input    []byte
}

// Receipt status codes
const (
	StatusFailed  uint64 = 0
	StatusSuccess uint64 = 1
)

// Receipt is the outcome of a message.
type Receipt struct {
	Status uint64
	// ReturnData is the output on success and the revert diagnostic on
	// failure.
	ReturnData      []byte
	GasUsed         uint64
	ContractAddress common.Address
	Logs            []*ethtypes.Log
	Trace           []*Event
	// Err is the error that failed the top-level frame.
	Err error
}

// Succeeded reports whether the message executed without reverting.
func (r *Receipt) Succeeded() bool {
	return r.Status == StatusSuccess
}

// EventKind classifies trace events.
type EventKind uint8

const (
	EventCall EventKind = iota
	EventDeploy
	EventTerminate
)

func (k EventKind) String() string {
	switch k {
	case EventCall:
		return "call"
	case EventDeploy:
		return "deploy"
	case EventTerminate:
		return "terminate"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// Event is one step of the execution trace.
//
//   - call: From called To with Value and Input.
//   - deploy: From instantiated To with constructor Input.
//   - terminate: From self-destructed in favor of To, crediting Value.
type Event struct {
	Kind     EventKind
	Depth    int
	From     common.Address
	To       common.Address
	CodeHash common.Hash
	Value    *uint256.Int
	Input    []byte
	GasLimit uint64
	// Err is set when the frame failed.
	Err error
	// Reverted is set when an enclosing frame failed and undid this step.
	Reverted bool
}

func (e *Event) String() string {
	status := "ok"
	switch {
	case e.Err != nil:
		status = "failed: " + e.Err.Error()
	case e.Reverted:
		status = "reverted"
	}
	return fmt.Sprintf("%*s%s %s -> %s value=%s (%s)", 2*e.Depth, "", e.Kind, e.From.Hex(), e.To.Hex(), e.Value.Dec(), status)
}

// Events returns the trace events of kind that were not undone.
func (r *Receipt) Events(kind EventKind) []*Event {
	var out []*Event
	for _, e := range r.Trace {
		if e.Kind == kind && e.Err == nil && !e.Reverted {
			out = append(out, e)
		}
	}
	return out
}
