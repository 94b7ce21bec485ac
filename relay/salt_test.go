// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

import (
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
)

var testSaltInput = SaltInput{
	Hops:        12,
	Router:      common.HexToAddress("0x00000000000000000000000000000000000000aa"),
	Nonce:       0x0102,
	BlockNumber: 7,
	Timestamp:   0x11223344,
}

func TestSaltPreimageLayout(t *testing.T) {
	require := require.New(t)
	preimage := testSaltInput.Preimage()
	require.Len(preimage, 45)

	require.Equal(byte(12), preimage[0])
	require.Equal(testSaltInput.Router.Bytes(), preimage[1:21])
	require.Equal([]byte{0x02, 0x01, 0, 0, 0, 0, 0, 0}, preimage[21:29])
	require.Equal([]byte{0x07, 0, 0, 0, 0, 0, 0, 0}, preimage[29:37])
	require.Equal([]byte{0x44, 0x33, 0x22, 0x11, 0, 0, 0, 0}, preimage[37:45])
}

func TestSaltDerivers(t *testing.T) {
	require := require.New(t)
	preimage := testSaltInput.Preimage()

	keccak := KeccakSalt{}.DeriveSalt(testSaltInput)
	require.Equal(common.Keccak256Hash(preimage), keccak)

	b3 := Blake3Salt{}.DeriveSalt(testSaltInput)
	require.Equal(common.Hash(blake3.Sum256(preimage)), b3)
	require.NotEqual(keccak, b3)

	for _, d := range []SaltDeriver{KeccakSalt{}, Blake3Salt{}} {
		next := testSaltInput
		next.Nonce++
		require.NotEqual(d.DeriveSalt(testSaltInput), d.DeriveSalt(next), d.Name())

		later := testSaltInput
		later.Timestamp++
		require.NotEqual(d.DeriveSalt(testSaltInput), d.DeriveSalt(later), d.Name())
	}
}

func TestSaltDeriverByName(t *testing.T) {
	require := require.New(t)

	for name, want := range map[string]SaltDeriver{
		"":            KeccakSalt{},
		SaltKeccak256: KeccakSalt{},
		SaltBlake3:    Blake3Salt{},
	} {
		d, err := SaltDeriverByName(name)
		require.NoError(err)
		require.Equal(want, d)
	}

	_, err := SaltDeriverByName("sha256")
	require.ErrorContains(err, "unknown salt strategy")
}

func TestCellNonce(t *testing.T) {
	require := require.New(t)

	require.Equal(uint64(11), CellNonce(11, 0, 0))
	require.Equal(uint64(0x010201), CellNonce(1, 0x0102, 0))
	require.Equal(uint64(0xaabbccdd00), CellNonce(0, 0, 0xaabbccdd))

	// only the low 32 bits of the gas price contribute
	require.Equal(CellNonce(3, 1_000_000, 5), CellNonce(3, 1_000_000, 1<<32|5))
	require.NotEqual(CellNonce(3, 1_000_000, 5), CellNonce(3, 1_000_000, 6))
	require.NotEqual(CellNonce(3, 1_000_000, 0), CellNonce(3, 999_999, 0))
}
