// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

import (
	"encoding/binary"
	"fmt"

	"github.com/luxfi/geth/common"
	"github.com/zeebo/blake3"
)

// Salt derivation for cell deployments.
//
// The host derives a cell's address from (deployer, code hash, salt), so a
// salt that is cheap to guess lets an observer compute cell addresses ahead
// of time. Every input below is either public before the block (block
// number, timestamp) or a counter, so this is a best-effort mitigation and
// not a commitment scheme. A host offering a verifiable random source can
// plug it in through SaltDeriver without touching the routing logic.

const saltPreimageLen = 1 + common.AddressLength + 8 + 8 + 8

// Salt strategy names
const (
	SaltKeccak256 = "keccak256"
	SaltBlake3    = "blake3"
)

// SaltInput collects the entropy mixed into one cell's salt.
type SaltInput struct {
	Hops        uint8
	Router      common.Address
	Nonce       uint64
	BlockNumber uint64
	Timestamp   uint64
}

// Preimage lays the input out as
// [hops][router][nonce LE][block LE][timestamp LE].
func (in SaltInput) Preimage() []byte {
	out := make([]byte, saltPreimageLen)
	out[0] = in.Hops
	copy(out[1:21], in.Router.Bytes())
	binary.LittleEndian.PutUint64(out[21:29], in.Nonce)
	binary.LittleEndian.PutUint64(out[29:37], in.BlockNumber)
	binary.LittleEndian.PutUint64(out[37:45], in.Timestamp)
	return out
}

// SaltDeriver turns a SaltInput into the 32-byte deployment salt.
type SaltDeriver interface {
	Name() string
	DeriveSalt(in SaltInput) common.Hash
}

// KeccakSalt hashes the preimage with keccak-256.
type KeccakSalt struct{}

func (KeccakSalt) Name() string { return SaltKeccak256 }

func (KeccakSalt) DeriveSalt(in SaltInput) common.Hash {
	return common.Keccak256Hash(in.Preimage())
}

// Blake3Salt hashes the preimage with BLAKE3.
type Blake3Salt struct{}

func (Blake3Salt) Name() string { return SaltBlake3 }

func (Blake3Salt) DeriveSalt(in SaltInput) common.Hash {
	h := blake3.New()
	h.Write(in.Preimage())
	var salt common.Hash
	h.Digest().Read(salt[:])
	return salt
}

// SaltDeriverByName resolves a strategy name. The empty name selects keccak.
func SaltDeriverByName(name string) (SaltDeriver, error) {
	switch name {
	case "", SaltKeccak256:
		return KeccakSalt{}, nil
	case SaltBlake3:
		return Blake3Salt{}, nil
	default:
		return nil, fmt.Errorf("unknown salt strategy %q", name)
	}
}

// CellNonce is the nonce a cell contributes when deploying its successor.
// It folds the successor's hop count, the gas left in the deploying frame
// and the low 32 bits of the gas price into one word.
func CellNonce(next uint8, gasLeft uint64, gasPrice uint64) uint64 {
	var b [16]byte
	b[0] = next
	binary.LittleEndian.PutUint64(b[1:9], gasLeft)
	binary.LittleEndian.PutUint32(b[9:13], uint32(gasPrice))
	return binary.LittleEndian.Uint64(b[0:8]) ^ binary.LittleEndian.Uint64(b[8:16])
}
