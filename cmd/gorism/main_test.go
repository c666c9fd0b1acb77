/*
 * main_test.go, part of gorism.
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
	"os"
	"path/filepath"
	"testing"

	rism "github.com/rmera/gorism"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const small = `
N: 8
L: 4.0
zpad: 3.0
max_iter: 4
radial:
  dr: 0.5
  rmax: 4.0
`

func run(Te *testing.T, args ...string) {
	Te.Helper()
	root := newRoot()
	root.SetArgs(args)
	require.NoError(Te, root.Execute(), args)
}

func TestCommands(Te *testing.T) {
	dir := Te.TempDir()
	cfg := filepath.Join(dir, "small.yaml")
	require.NoError(Te, os.WriteFile(cfg, []byte(small), 0644))
	chi := filepath.Join(dir, "chi.bin")
	rst := filepath.Join(dir, "solute.rst")

	run(Te, "solvent", "--config", cfg, "--out", dir, "--save-chi", chi)
	for _, v := range []string{"chi.bin", "solvent_g.csv", "solvent.yaml", "solvent_g_h-o.bin", "solvent_g_o-o.bin"} {
		assert.FileExists(Te, filepath.Join(dir, v))
	}
	run(Te, "solute", "--config", cfg, "--out", dir, "--solute", "lj", "--load-chi", chi, "--restart", rst)
	assert.FileExists(Te, rst)
	assert.FileExists(Te, filepath.Join(dir, "g_h.bin"))
	//now the restart file exists and is read back
	run(Te, "solute", "--config", cfg, "--out", dir, "--solute", "lj", "--load-chi", chi, "--restart", rst)

	run(Te, "bgy", "--config", cfg, "--out", dir, "--plot")
	assert.FileExists(Te, filepath.Join(dir, "bgy_g.png"))

	root := newRoot()
	root.SetArgs([]string{"solute", "--config", cfg, "--out", dir})
	assert.Error(Te, root.Execute())
	root = newRoot()
	root.SetArgs([]string{"solvent", "--solvent", "nothing-like-this", "--out", dir})
	assert.Error(Te, root.Execute())
}

func TestCentroid(Te *testing.T) {
	m, _ := rism.BuiltIn("hcl")
	c := centroid(m)
	assert.InDelta(Te, 0, c[0], 1e-12)
	assert.Equal(Te, []string{"h", "o"}, names(m))
}
