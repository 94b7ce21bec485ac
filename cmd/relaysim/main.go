// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// relaysim runs relay scenarios on an in-memory host and prints the
// receipts and the hop trace of every message.
package main

import (
	"fmt"
	"os"

	log "github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/luxfi/hoprelay/config"
	"github.com/luxfi/hoprelay/sim"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "relaysim",
		Usage: "simulate multi-hop value relays",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "simulation file",
				Value:   "relaysim.toml",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "print the host metrics after the command",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print every frame of every message",
			},
		},
		Commands: []*cli.Command{
			commandRun(),
			commandRoute(),
			commandWithdraw(),
			commandInspect(),
		},
	}
}

func commandRun() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "execute the steps of the simulation file",
		Action: func(c *cli.Context) error {
			return withSimulator(c, func(s *sim.Simulator, p *printer) error {
				results, err := s.Run(c.Context)
				for i, res := range results {
					p.result(i, res)
				}
				if err != nil {
					return err
				}
				p.routerState(s)
				return nil
			})
		},
	}
}

func commandRoute() *cli.Command {
	return &cli.Command{
		Name:  "route",
		Usage: "execute the simulation steps, then route value to a destination",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true},
			&cli.StringFlag{Name: "to", Required: true},
			&cli.StringFlag{Name: "value", Required: true, Usage: "amount in the smallest unit"},
			&cli.Uint64Flag{Name: "gas", Usage: "gas limit, 0 for the route budget"},
		},
		Action: func(c *cli.Context) error {
			return withSimulator(c, func(s *sim.Simulator, p *printer) error {
				if _, err := s.Run(c.Context); err != nil {
					return err
				}
				step := config.Step{
					Action:      config.ActionRoute,
					From:        c.String("from"),
					Destination: c.String("to"),
					Value:       c.String("value"),
					Gas:         c.Uint64("gas"),
				}
				res, err := s.Apply(step)
				if err != nil {
					return err
				}
				p.result(len(s.Steps()), res)
				p.routerState(s)
				return nil
			})
		},
	}
}

func commandWithdraw() *cli.Command {
	return &cli.Command{
		Name:  "withdraw",
		Usage: "execute the simulation steps, then withdraw the router fees",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "sender, defaults to the owner"},
			&cli.Uint64Flag{Name: "gas", Value: config.DefaultWithdrawGas},
		},
		Action: func(c *cli.Context) error {
			return withSimulator(c, func(s *sim.Simulator, p *printer) error {
				if _, err := s.Run(c.Context); err != nil {
					return err
				}
				from := s.Owner()
				if c.IsSet("from") {
					var err error
					if from, err = config.ParseAddress(c.String("from")); err != nil {
						return err
					}
				}
				res, err := s.Withdraw(from, c.Uint64("gas"))
				if err != nil {
					return err
				}
				res.Step = config.Step{Action: config.ActionWithdraw, From: from.Hex()}
				p.result(len(s.Steps()), res)
				p.routerState(s)
				return nil
			})
		},
	}
}

func commandInspect() *cli.Command {
	return &cli.Command{
		Name:   "inspect",
		Usage:  "print the relay parameters and the deployed router",
		Action: func(c *cli.Context) error {
			return withSimulator(c, func(s *sim.Simulator, p *printer) error {
				p.params(s)
				p.routerState(s)
				return nil
			})
		},
	}
}

// withSimulator loads the configured simulation and runs fn on it.
func withSimulator(c *cli.Context, fn func(*sim.Simulator, *printer) error) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	logger := log.Root()
	registry := prometheus.NewRegistry()
	s, err := sim.New(cfg, sim.WithLogger(logger), sim.WithRegisterer(registry))
	if err != nil {
		return err
	}

	p := &printer{w: c.App.Writer, trace: c.Bool("trace")}
	if err := fn(s, p); err != nil {
		return err
	}
	if c.Bool("metrics") {
		return p.metrics(registry)
	}
	return nil
}
