/*
 * run.go, part of gorism.
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

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/bgy"
	"github.com/rmera/gorism/config"
	"github.com/rmera/gorism/grid"
	"github.com/rmera/gorism/hnc"
	"github.com/rmera/gorism/radial"
	"github.com/rmera/gorism/store"
)

func runSolvent(ctx context.Context, f *flags) error {
	cfg, log, err := f.setup()
	if err != nil {
		return err
	}
	pd, err := cfg.ProblemData()
	if err != nil {
		return err
	}
	mol, err := config.Molecule(f.solvent)
	if err != nil {
		return err
	}
	res, err := hnc.SolventSolve(ctx, pd, mol, cfg.HNCOptions(log))
	if err != nil {
		return err
	}
	log.Info("solvent done", "result", res)
	fmt.Printf("Chemical potentials (kcal/mol):\n%s\n", res.Mu)
	if f.saveChi != "" {
		if err := store.SaveChi(f.saveChi, res.Chi); err != nil {
			return err
		}
	}
	if err := writePairs(f, cfg, log, "solvent", res.G, names(mol)); err != nil {
		return err
	}
	return cfg.WriteYAML(filepath.Join(f.out, "solvent.yaml"))
}

func runSolute(ctx context.Context, f *flags) error {
	cfg, log, err := f.setup()
	if err != nil {
		return err
	}
	pd, err := cfg.ProblemData()
	if err != nil {
		return err
	}
	solv, err := config.Molecule(f.solvent)
	if err != nil {
		return err
	}
	sol, err := config.Molecule(f.solute)
	if err != nil {
		return err
	}
	o := cfg.HNCOptions(log)
	var chi *grid.KPairs
	if f.loadChi != "" {
		if chi, err = store.LoadChi(f.loadChi); err != nil {
			return err
		}
	} else {
		sr, err := hnc.SolventSolve(ctx, pd, solv, o)
		if err != nil {
			return err
		}
		log.Info("solvent done", "result", sr)
		chi = sr.Chi
		if f.saveChi != "" {
			if err := store.SaveChi(f.saveChi, chi); err != nil {
				return err
			}
		}
	}
	var rst *hnc.Restart
	if f.restart != "" {
		rst, err = store.LoadRestart(f.restart)
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("no restart file, starting from zero", "file", f.restart)
			rst, err = nil, nil
		}
		if err != nil {
			return err
		}
	}
	res, err := hnc.SoluteSolve(ctx, pd, solv, sol, chi, rst, o)
	if err != nil {
		return err
	}
	log.Info("solute done", "result", res)
	fmt.Printf("Solute-solvent interaction energy: %.6f kcal/mol\nChemical potentials (kcal/mol):\n%s\n", res.Energy, res.Mu)
	fmt.Println("Forces on the solute sites (kcal/mol/Å):")
	for i, v := range res.Forces {
		fmt.Printf("%-4s %12.6f %12.6f %12.6f\n", sol.Sites[i].Name, v[0], v[1], v[2])
	}
	if f.restart != "" {
		if err := store.SaveRestart(f.restart, res.Restart); err != nil {
			return err
		}
	}
	sn := names(solv)
	for i, g := range res.G {
		if err := store.SaveField(filepath.Join(f.out, "g_"+sn[i]+".bin"), g); err != nil {
			return err
		}
	}
	prof := radial.Sites(res.G, sn, centroid(sol), cfg.Radial.DR, cfg.Radial.RMax)
	if err := writeProfiles(f, log, "solute", prof); err != nil {
		return err
	}
	return cfg.WriteYAML(filepath.Join(f.out, "solute.yaml"))
}

func runBGY(ctx context.Context, f *flags) error {
	cfg, log, err := f.setup()
	if err != nil {
		return err
	}
	pd, err := cfg.ProblemData()
	if err != nil {
		return err
	}
	mol, err := config.Molecule(f.solvent)
	if err != nil {
		return err
	}
	res, err := bgy.Solve(ctx, pd, mol, cfg.BGYOptions(log))
	if err != nil {
		return err
	}
	if !res.Converged() {
		log.Warn("bgy did not converge at full strength", "levels", len(res.Levels))
	}
	if err := writePairs(f, cfg, log, "bgy", res.G, names(mol)); err != nil {
		return err
	}
	return cfg.WriteYAML(filepath.Join(f.out, "bgy.yaml"))
}

//writePairs saves the pair fields and their radial profiles.
func writePairs(f *flags, cfg *config.Config, log *slog.Logger, prefix string, g *grid.Pairs, sn []string) error {
	m := g.M()
	for i := 0; i < m; i++ {
		for j := i; j < m; j++ {
			name := filepath.Join(f.out, fmt.Sprintf("%s_g_%s-%s.bin", prefix, sn[i], sn[j]))
			if err := store.SaveField(name, g.At(i, j)); err != nil {
				return err
			}
		}
	}
	prof := radial.Pairs(g, sn, cfg.Radial.DR, cfg.Radial.RMax)
	return writeProfiles(f, log, prefix, prof.Unique())
}

func writeProfiles(f *flags, log *slog.Logger, prefix string, prof []*radial.Profile) error {
	csv := filepath.Join(f.out, prefix+"_g.csv")
	if err := store.SaveProfilesCSV(csv, prof...); err != nil {
		return err
	}
	log.Info("radial profiles written", "file", csv)
	if !f.plot {
		return nil
	}
	png := filepath.Join(f.out, prefix+"_g.png")
	if err := store.PlotProfiles(png, prefix, prof...); err != nil {
		return err
	}
	log.Info("plot written", "file", png)
	return nil
}

func names(mol *rism.Molecule) []string {
	ret := make([]string, mol.Len())
	for i, s := range mol.Sites {
		ret[i] = s.Name
	}
	return ret
}

//centroid returns the geometric center of the sites of mol.
func centroid(mol *rism.Molecule) [3]float64 {
	var ret [3]float64
	for _, s := range mol.Sites {
		for i := range ret {
			ret[i] += s.X[i]
		}
	}
	for i := range ret {
		ret[i] /= float64(mol.Len())
	}
	return ret
}
