// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"relaysim", "--config", "relaysim.toml"}, args...))
	return out.String(), err
}

func TestRun(t *testing.T) {
	require := require.New(t)

	out, err := run(t, "run")
	require.NoError(err)
	require.Contains(out, "step 0 route: ok")
	require.Contains(out, "step 1 advance: block=2")
	require.Contains(out, "step 2 route: ok")
	require.Contains(out, "hop 12 ")
	require.Contains(out, "log Routed")
	require.Contains(out, "step 3 withdraw: ok")
	require.Contains(out, "withdrawn 2000000000000000")
	require.Contains(out, "fees=0 nonce=2")
}

func TestRouteAfterSteps(t *testing.T) {
	require := require.New(t)

	out, err := run(t, "route",
		"--from", "0x0000000000000000000000000000000000000b0b",
		"--to", "0x0000000000000000000000000000000000000d06",
		"--value", "1000",
	)
	require.NoError(err)
	require.Contains(out, "step 4 route: failed: insufficient fee")
	require.Contains(out, "nonce=2")
}

func TestWithdrawNotOwner(t *testing.T) {
	require := require.New(t)

	out, err := run(t, "withdraw", "--from", "0x0000000000000000000000000000000000000b0b")
	require.NoError(err)
	require.Contains(out, "step 4 withdraw: failed: not owner")
}

func TestInspect(t *testing.T) {
	require := require.New(t)

	out, err := run(t, "--metrics", "inspect")
	require.NoError(err)
	require.Contains(out, "routing fee      1000000000000000")
	require.Contains(out, "hop count        12")
	require.Contains(out, "route gas        12500000")
	require.Contains(out, "fees=0 nonce=0")
	require.Contains(out, "hoprelay_host_deployments_total 1")
}

func TestMissingConfig(t *testing.T) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run([]string{"relaysim", "--config", "missing.toml", "inspect"})
	require.Error(t, err)
}
