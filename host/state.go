// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"errors"
	"fmt"
	"slices"

	"github.com/holiman/uint256"
	"github.com/luxfi/database"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/tracing"
	ethtypes "github.com/luxfi/geth/core/types"
	"github.com/luxfi/hoprelay/contract"
)

// Key prefixes of the committed state
var (
	accountPrefix = []byte("acct")
	slotPrefix    = []byte("slot")
)

const accountRecordLen = 3 * common.HashLength

var errCorruptAccount = errors.New("corrupt account record")

var _ contract.StateReader = (*StateDB)(nil)

// stateAccount is the cached, possibly dirty view of one account.
type stateAccount struct {
	balance  *uint256.Int
	codeHash common.Hash
	// deposit is the storage deposit held for a contract, released to the
	// beneficiary of its self-destruct.
	deposit *uint256.Int

	storage    map[common.Hash]common.Hash
	dirtySlots map[common.Hash]struct{}

	// wiped means the committed storage must be dropped on commit.
	wiped     bool
	destroyed bool
	dirty     bool
}

func newStateAccount() *stateAccount {
	return &stateAccount{
		balance:    new(uint256.Int),
		deposit:    new(uint256.Int),
		storage:    make(map[common.Hash]common.Hash),
		dirtySlots: make(map[common.Hash]struct{}),
	}
}

func (a *stateAccount) empty() bool {
	return a.balance.IsZero() && a.deposit.IsZero() && a.codeHash == (common.Hash{})
}

// StateDB is a journaled world state on top of a key-value database.
// Changes live in memory until Commit writes them in one batch.
type StateDB struct {
	db       database.Database
	accounts map[common.Address]*stateAccount
	journal  journal
	logs     []*ethtypes.Log
	// loadErr keeps the first read failure; reads cannot return errors.
	loadErr error
}

// NewStateDB opens the state committed to db.
func NewStateDB(db database.Database) *StateDB {
	return &StateDB{
		db:       db,
		accounts: make(map[common.Address]*stateAccount),
	}
}

func accountKey(addr common.Address) []byte {
	return append(slices.Clone(accountPrefix), addr.Bytes()...)
}

func storagePrefix(addr common.Address) []byte {
	return append(slices.Clone(slotPrefix), addr.Bytes()...)
}

func storageKey(addr common.Address, key common.Hash) []byte {
	return append(storagePrefix(addr), key.Bytes()...)
}

func (s *StateDB) getAccount(addr common.Address) *stateAccount {
	if acc, ok := s.accounts[addr]; ok {
		return acc
	}
	acc := newStateAccount()
	raw, err := s.db.Get(accountKey(addr))
	switch {
	case errors.Is(err, database.ErrNotFound):
	case err != nil:
		s.setLoadErr(fmt.Errorf("failed to load account %s: %w", addr, err))
	case len(raw) != accountRecordLen:
		s.setLoadErr(fmt.Errorf("%w: %s has %d bytes", errCorruptAccount, addr, len(raw)))
	default:
		acc.balance.SetBytes(raw[:32])
		acc.codeHash = common.BytesToHash(raw[32:64])
		acc.deposit.SetBytes(raw[64:96])
	}
	s.accounts[addr] = acc
	return acc
}

func (s *StateDB) setLoadErr(err error) {
	if s.loadErr == nil {
		s.loadErr = err
	}
}

// Error returns the first failure to read committed state, if any.
func (s *StateDB) Error() error {
	return s.loadErr
}

func (s *StateDB) GetBalance(addr common.Address) *uint256.Int {
	return s.getAccount(addr).balance.Clone()
}

func (s *StateDB) AddBalance(addr common.Address, amount *uint256.Int, _ tracing.BalanceChangeReason) {
	acc := s.getAccount(addr)
	s.journal.append(balanceChange{addr: addr, prev: acc.balance})
	acc.balance = new(uint256.Int).Add(acc.balance, amount)
	acc.dirty = true
}

func (s *StateDB) SubBalance(addr common.Address, amount *uint256.Int, _ tracing.BalanceChangeReason) {
	acc := s.getAccount(addr)
	s.journal.append(balanceChange{addr: addr, prev: acc.balance})
	acc.balance = new(uint256.Int).Sub(acc.balance, amount)
	acc.dirty = true
}

// Transfer moves amount between two accounts, failing without any change
// if from cannot cover it.
func (s *StateDB) Transfer(from, to common.Address, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	if s.getAccount(from).balance.Lt(amount) {
		return contract.ErrInsufficientFunds
	}
	s.SubBalance(from, amount, tracing.BalanceChangeTransfer)
	s.AddBalance(to, amount, tracing.BalanceChangeTransfer)
	return nil
}

func (s *StateDB) GetDeposit(addr common.Address) *uint256.Int {
	return s.getAccount(addr).deposit.Clone()
}

func (s *StateDB) SetDeposit(addr common.Address, amount *uint256.Int) {
	acc := s.getAccount(addr)
	s.journal.append(depositChange{addr: addr, prev: acc.deposit})
	acc.deposit = amount.Clone()
	acc.dirty = true
}

func (s *StateDB) GetCodeHash(addr common.Address) common.Hash {
	return s.getAccount(addr).codeHash
}

func (s *StateDB) SetCodeHash(addr common.Address, codeHash common.Hash) {
	acc := s.getAccount(addr)
	s.journal.append(codeChange{addr: addr, prev: acc.codeHash})
	acc.codeHash = codeHash
	acc.dirty = true
}

// HasCode reports whether a contract lives at addr.
func (s *StateDB) HasCode(addr common.Address) bool {
	return s.GetCodeHash(addr) != (common.Hash{})
}

// HasSelfDestructed reports whether addr was destroyed since the last commit.
func (s *StateDB) HasSelfDestructed(addr common.Address) bool {
	acc, ok := s.accounts[addr]
	return ok && acc.destroyed
}

func (s *StateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	acc := s.getAccount(addr)
	if val, ok := acc.storage[key]; ok {
		return val
	}
	var val common.Hash
	if !acc.wiped {
		raw, err := s.db.Get(storageKey(addr, key))
		switch {
		case errors.Is(err, database.ErrNotFound):
		case err != nil:
			s.setLoadErr(fmt.Errorf("failed to load slot %s of %s: %w", key, addr, err))
		default:
			val = common.BytesToHash(raw)
		}
	}
	acc.storage[key] = val
	return val
}

func (s *StateDB) SetState(addr common.Address, key common.Hash, value common.Hash) {
	prev := s.GetState(addr, key)
	acc := s.getAccount(addr)
	s.journal.append(storageChange{addr: addr, key: key, prev: prev})
	acc.storage[key] = value
	acc.dirtySlots[key] = struct{}{}
	acc.dirty = true
}

// SelfDestruct removes the contract at addr and credits its balance and
// deposit to beneficiary. It returns the credited amount.
func (s *StateDB) SelfDestruct(addr common.Address, beneficiary common.Address) *uint256.Int {
	acc := s.getAccount(addr)
	balance := acc.balance.Clone()
	deposit := acc.deposit.Clone()

	if !balance.IsZero() {
		s.SubBalance(addr, balance, tracing.BalanceDecreaseSelfdestruct)
		s.AddBalance(beneficiary, balance, tracing.BalanceIncreaseSelfdestruct)
	}
	if !deposit.IsZero() {
		s.SetDeposit(addr, new(uint256.Int))
		s.AddBalance(beneficiary, deposit, tracing.BalanceIncreaseSelfdestruct)
	}

	s.journal.append(destructChange{
		addr:      addr,
		codeHash:  acc.codeHash,
		storage:   acc.storage,
		dirty:     acc.dirtySlots,
		wiped:     acc.wiped,
		destroyed: acc.destroyed,
	})
	acc.codeHash = common.Hash{}
	acc.storage = make(map[common.Hash]common.Hash)
	acc.dirtySlots = make(map[common.Hash]struct{})
	acc.wiped = true
	acc.destroyed = true
	acc.dirty = true

	return new(uint256.Int).Add(balance, deposit)
}

func (s *StateDB) AddLog(l *ethtypes.Log) {
	l.Index = uint(len(s.logs))
	s.logs = append(s.logs, l)
	s.journal.append(logChange{})
}

// Logs returns the logs emitted since the last commit.
func (s *StateDB) Logs() []*ethtypes.Log {
	return slices.Clone(s.logs)
}

// Snapshot returns an identifier for the current revision of the state.
func (s *StateDB) Snapshot() int {
	return s.journal.length()
}

// RevertToSnapshot undoes all changes made after snapshot was taken.
func (s *StateDB) RevertToSnapshot(snapshot int) {
	s.journal.revertTo(s, snapshot)
}

// Commit writes every dirty account and slot to the database and starts a
// new journal. Logs are dropped.
func (s *StateDB) Commit() error {
	if s.loadErr != nil {
		return s.loadErr
	}

	batch := s.db.NewBatch()
	for addr, acc := range s.accounts {
		if !acc.dirty {
			continue
		}
		if acc.wiped {
			if err := s.wipeStorage(batch, addr); err != nil {
				return err
			}
		}
		if acc.empty() {
			if err := batch.Delete(accountKey(addr)); err != nil {
				return err
			}
		} else {
			record := make([]byte, 0, accountRecordLen)
			record = append(record, acc.balance.PaddedBytes(32)...)
			record = append(record, acc.codeHash.Bytes()...)
			record = append(record, acc.deposit.PaddedBytes(32)...)
			if err := batch.Put(accountKey(addr), record); err != nil {
				return err
			}
		}
		for key := range acc.dirtySlots {
			val := acc.storage[key]
			var err error
			if val == (common.Hash{}) {
				err = batch.Delete(storageKey(addr, key))
			} else {
				err = batch.Put(storageKey(addr, key), val.Bytes())
			}
			if err != nil {
				return err
			}
		}
	}
	if err := batch.Write(); err != nil {
		return fmt.Errorf("failed to write state batch: %w", err)
	}

	for _, acc := range s.accounts {
		acc.dirty = false
		acc.wiped = false
		acc.destroyed = false
		acc.dirtySlots = make(map[common.Hash]struct{})
	}
	s.journal.reset()
	s.logs = nil
	return nil
}

func (s *StateDB) wipeStorage(batch database.Batch, addr common.Address) error {
	it := s.db.NewIteratorWithPrefix(storagePrefix(addr))
	defer it.Release()
	for it.Next() {
		if err := batch.Delete(slices.Clone(it.Key())); err != nil {
			return err
		}
	}
	return it.Error()
}
