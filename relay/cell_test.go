// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCellTransitions(t *testing.T) {
	tests := []struct {
		name  string
		hops  uint8
		phase Phase
		next  uint8
	}{
		{"first hop", 12, PhaseIntermediate, 11},
		{"second to last hop", 2, PhaseIntermediate, 1},
		{"last hop", 1, PhaseTerminal, 0},
		{"zero hops delivers", 0, PhaseTerminal, 0},
		{"clamped hops", 200, PhaseIntermediate, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			c := NewCell(tt.hops, testRouter, DefaultHopCount)
			require.Equal(PhaseCreated, c.Phase())
			require.Equal(testRouter, c.Router())
			require.Equal(tt.next, c.Next())

			phase, err := c.Advance()
			require.NoError(err)
			require.Equal(tt.phase, phase)
			require.Equal(tt.phase, c.Phase())

			require.NoError(c.Destroy())
			require.Equal(PhaseDestroyed, c.Phase())
		})
	}
}

func TestCellInvalidTransitions(t *testing.T) {
	require := require.New(t)
	c := NewCell(3, testRouter, DefaultHopCount)

	_, err := c.Advance()
	require.NoError(err)
	_, err = c.Advance()
	require.ErrorIs(err, ErrInvalidTransition)

	require.NoError(c.Destroy())
	require.ErrorIs(c.Destroy(), ErrInvalidTransition)
	_, err = c.Advance()
	require.ErrorIs(err, ErrInvalidTransition)
}

func TestCellDestroyWithoutForwarding(t *testing.T) {
	require := require.New(t)
	c := NewCell(5, testRouter, DefaultHopCount)
	c.Absorb(ErrFatal)
	require.NoError(c.Destroy())
	require.Equal(PhaseDestroyed, c.Phase())
}

func TestCellAbsorbKeepsFirstFailure(t *testing.T) {
	require := require.New(t)
	c := NewCell(1, testRouter, DefaultHopCount)
	require.NoError(c.Failure())

	first := errors.New("first")
	c.Absorb(nil)
	c.Absorb(first)
	c.Absorb(errors.New("second"))
	require.Equal(first, c.Failure())
	require.Equal(PhaseCreated, c.Phase())
}

func TestPhaseString(t *testing.T) {
	require := require.New(t)
	require.Equal("created", PhaseCreated.String())
	require.Equal("intermediate", PhaseIntermediate.String())
	require.Equal("terminal", PhaseTerminal.String())
	require.Equal("destroyed", PhaseDestroyed.String())
	require.Equal("phase(9)", Phase(9).String())
}
