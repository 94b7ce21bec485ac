// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"io"

	"github.com/luxfi/geth/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/luxfi/hoprelay/relay"
	"github.com/luxfi/hoprelay/sim"
)

type printer struct {
	w     io.Writer
	trace bool
}

func (p *printer) result(i int, res *sim.Result) {
	if res.Receipt == nil {
		fmt.Fprintf(p.w, "step %d %s: block=%d timestamp=%d\n", i, res.Step.Action, res.Block.Number, res.Block.Timestamp)
		return
	}

	r := res.Receipt
	status := "ok"
	if !r.Succeeded() {
		status = "failed: " + string(r.ReturnData)
	}
	fmt.Fprintf(p.w, "step %d %s: %s gas=%d block=%d\n", i, res.Step.Action, status, r.GasUsed, res.Block.Number)

	if res.FirstCell != (common.Address{}) {
		fmt.Fprintf(p.w, "  first cell %s\n", res.FirstCell.Hex())
	}
	for n, hop := range res.Hops {
		fmt.Fprintf(p.w, "  hop %2d cell=%s hops=%d terminated=%t", n+1, hop.Cell.Hex(), hop.Hops, hop.Terminated)
		if hop.Swept != nil && !hop.Swept.IsZero() {
			fmt.Fprintf(p.w, " swept=%s", hop.Swept.Dec())
		}
		fmt.Fprintln(p.w)
	}
	if res.Withdrawn != nil {
		fmt.Fprintf(p.w, "  withdrawn %s\n", res.Withdrawn.Dec())
	}
	for _, l := range r.Logs {
		if len(l.Topics) == 0 {
			continue
		}
		name := l.Topics[0].Hex()
		switch l.Topics[0] {
		case relay.RoutedEvent:
			name = "Routed"
		case relay.WithdrawnEvent:
			name = "Withdrawn"
		}
		fmt.Fprintf(p.w, "  log %s from %s\n", name, l.Address.Hex())
	}
	if p.trace {
		for _, e := range r.Trace {
			fmt.Fprintf(p.w, "  %s\n", e)
		}
	}
}

func (p *printer) params(s *sim.Simulator) {
	params := s.Params()
	fmt.Fprintf(p.w, "code hash        %s\n", s.CodeHash().Hex())
	fmt.Fprintf(p.w, "routing fee      %s\n", params.RoutingFee.Dec())
	fmt.Fprintf(p.w, "hop count        %d\n", params.HopCount)
	fmt.Fprintf(p.w, "deployment gas   %d\n", params.DeploymentGas)
	fmt.Fprintf(p.w, "forward gas      %d\n", params.ForwardGas)
	fmt.Fprintf(p.w, "max gas per cell %d\n", params.MaxGasPerCell)
	fmt.Fprintf(p.w, "route gas        %d\n", params.RequiredRouteGas())
}

func (p *printer) routerState(s *sim.Simulator) {
	state := s.RouterState()
	fmt.Fprintf(p.w, "router %s owner=%s fees=%s nonce=%d balance=%s\n",
		s.Router().Hex(),
		state.Owner.Hex(),
		state.FeesCollected.Dec(),
		state.Nonce,
		s.Host().State().GetBalance(s.Router()).Dec(),
	)
}

func (p *printer) metrics(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(p.w, mf); err != nil {
			return err
		}
	}
	return nil
}
