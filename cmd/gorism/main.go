/*
 * main.go, part of gorism.
 *
 * Copyright 2025 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//gorism solves the 3D integral equations of liquid theory for a pure solvent
//and for a solute immersed in it.
//
//	gorism solvent --solvent hcl --out run1
//	gorism solute --solvent water --solute lj --load-chi run1/chi.bin --out run2
//	gorism bgy --solvent hcl --config bgy.yaml --plot
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rmera/gorism/config"
	"github.com/spf13/cobra"
)

type flags struct {
	config  string
	solvent string
	solute  string
	out     string
	saveChi string
	loadChi string
	restart string
	plot    bool
	verbose bool
}

//setup returns the configuration and the logger for a run, and creates the output directory.
func (f *flags) setup() (*config.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, nil, err
	}
	if f.out != "" {
		if err := os.MkdirAll(f.out, 0755); err != nil {
			return nil, nil, err
		}
	}
	return cfg, log, nil
}

func newRoot() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "gorism",
		Short:         "3D integral equation solvation solver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "YAML settings file, on top of the defaults")
	pf.StringVar(&f.solvent, "solvent", "hcl", "solvent: a built in molecule or a TOML file")
	pf.StringVar(&f.out, "out", ".", "output directory")
	pf.BoolVar(&f.plot, "plot", false, "plot the radial distribution functions")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log every iteration")

	solv := &cobra.Command{
		Use:   "solvent",
		Short: "Solve the HNC equations for the pure solvent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolvent(cmd.Context(), f)
		},
	}
	solv.Flags().StringVar(&f.saveChi, "save-chi", "", "write the solvent susceptibility to this file")

	solu := &cobra.Command{
		Use:   "solute",
		Short: "Solve the HNC equations for a solute in the solvent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolute(cmd.Context(), f)
		},
	}
	solu.Flags().StringVar(&f.solute, "solute", "", "solute: a built in molecule or a TOML file")
	solu.Flags().StringVar(&f.loadChi, "load-chi", "", "read the solvent susceptibility from this file instead of solving the solvent")
	solu.Flags().StringVar(&f.saveChi, "save-chi", "", "write the solvent susceptibility to this file")
	solu.Flags().StringVar(&f.restart, "restart", "", "start from this restart file, if it exists, and update it at the end")
	solu.MarkFlagRequired("solute")

	b := &cobra.Command{
		Use:   "bgy",
		Short: "Solve the BGY3D equations for the pure solvent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBGY(cmd.Context(), f)
		},
	}
	root.AddCommand(solv, solu, b)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRoot().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "gorism:", err)
		stop()
		os.Exit(1)
	}
}
