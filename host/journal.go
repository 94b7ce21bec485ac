// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// journalEntry is a reversible change to the in-flight state.
type journalEntry interface {
	revert(s *StateDB)
}

type journal struct {
	entries []journalEntry
}

func (j *journal) append(e journalEntry) {
	j.entries = append(j.entries, e)
}

func (j *journal) length() int {
	return len(j.entries)
}

// revertTo undoes every entry recorded after snapshot, newest first.
func (j *journal) revertTo(s *StateDB, snapshot int) {
	for i := len(j.entries) - 1; i >= snapshot; i-- {
		j.entries[i].revert(s)
	}
	j.entries = j.entries[:snapshot]
}

func (j *journal) reset() {
	j.entries = j.entries[:0]
}

type (
	balanceChange struct {
		addr common.Address
		prev *uint256.Int
	}
	depositChange struct {
		addr common.Address
		prev *uint256.Int
	}
	codeChange struct {
		addr common.Address
		prev common.Hash
	}
	storageChange struct {
		addr common.Address
		key  common.Hash
		prev common.Hash
	}
	destructChange struct {
		addr      common.Address
		codeHash  common.Hash
		storage   map[common.Hash]common.Hash
		dirty     map[common.Hash]struct{}
		wiped     bool
		destroyed bool
	}
	logChange struct{}
)

func (c balanceChange) revert(s *StateDB) {
	s.getAccount(c.addr).balance = c.prev
}

func (c depositChange) revert(s *StateDB) {
	s.getAccount(c.addr).deposit = c.prev
}

func (c codeChange) revert(s *StateDB) {
	s.getAccount(c.addr).codeHash = c.prev
}

func (c storageChange) revert(s *StateDB) {
	s.getAccount(c.addr).storage[c.key] = c.prev
}

func (c destructChange) revert(s *StateDB) {
	acc := s.getAccount(c.addr)
	acc.codeHash = c.codeHash
	acc.storage = c.storage
	acc.dirtySlots = c.dirty
	acc.wiped = c.wiped
	acc.destroyed = c.destroyed
}

func (logChange) revert(s *StateDB) {
	s.logs = s.logs[:len(s.logs)-1]
}
