/*
 * config_test.go, part of gorism.
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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/bgy"
	"github.com/rmera/gorism/fft"
	"github.com/rmera/gorism/hnc"
	"github.com/rmera/gorism/regularize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(Te *testing.T) {
	c, err := Load("")
	require.NoError(Te, err)
	pd, err := c.ProblemData()
	require.NoError(Te, err)
	assert.Equal(Te, rism.DefaultProblem(), pd)
	assert.Equal(Te, regularize.DefaultConfig(), c.Regularize)
	assert.Equal(Te, bgy.DefaultMixing(), c.Mixing)
	o := c.HNCOptions(nil)
	assert.Equal(Te, hnc.Picard, o.Solver())
	assert.Equal(Te, fft.Gonum, o.FFT())
	assert.Equal(Te, 20, o.Krylov())
}

func TestLoad(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "run.yaml")
	data := "rho: 0.5\nN: 16\nL: 8\nclosure: PSE\npse_order: 3\nsolver: newton\nmixing:\n  lookback: 5\n"
	require.NoError(Te, os.WriteFile(name, []byte(data), 0644))
	c, err := Load(name)
	require.NoError(Te, err)
	pd, err := c.ProblemData()
	require.NoError(Te, err)
	assert.Equal(Te, 0.5, pd.Rho)
	assert.Equal(Te, [3]int{16, 16, 16}, pd.N)
	assert.Equal(Te, [3]float64{16, 16, 16}, pd.L)
	assert.Equal(Te, rism.PSE, pd.Closure)
	assert.Equal(Te, 3, pd.Order)
	//untouched keys keep their defaults
	assert.Equal(Te, 1.6889, pd.Beta)
	assert.Equal(Te, 5, c.Mixing.Lookback)
	assert.Equal(Te, 20, c.Mixing.Warmup)
	assert.Equal(Te, hnc.Newton, c.HNCOptions(nil).Solver())

	//an explicit order wins over pse_order
	c.Closure = "PSE-4"
	pd, err = c.ProblemData()
	require.NoError(Te, err)
	assert.Equal(Te, 4, pd.Order)

	//the written file loads back to the same settings
	out := filepath.Join(dir, "out.yaml")
	require.NoError(Te, c.WriteYAML(out))
	d, err := Load(out)
	require.NoError(Te, err)
	assert.Equal(Te, c, d)

	for _, bad := range []string{"N: 15\n", "closure: XYZ\n", "fft: fftw\n", "solver: broyden\n", "regularize:\n  floor: 0\n", "radial:\n  dr: -1\n", "rho: [1, 2]\n"} {
		require.NoError(Te, os.WriteFile(name, []byte(bad), 0644))
		_, err := Load(name)
		assert.Error(Te, err, bad)
	}
	_, err = Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(Te, err)
	c.Closure = "XYZ"
	_, err = c.ProblemData()
	assert.True(Te, errors.Is(err, rism.ErrClosure))
}

const hclTOML = `
name = "hcl-file"

[[site]]
name = "h"
x = [0.6373, 0.0, 0.0]
sigma = 2.735
epsilon = 0.03971
charge = 0.2

[[site]]
name = "cl"
x = [-0.6373, 0.0, 0.0]
sigma = 3.353
epsilon = 0.51434
charge = -0.2
`

func TestMolecule(Te *testing.T) {
	m, err := ReadMolecule(strings.NewReader(hclTOML))
	require.NoError(Te, err)
	assert.Equal(Te, "hcl-file", m.Name)
	require.Equal(Te, 2, m.Len())
	assert.Equal(Te, "cl", m.Sites[1].Name)
	assert.Equal(Te, [3]float64{-0.6373, 0, 0}, m.Sites[1].X)
	assert.InDelta(Te, 0, m.Charge(), 1e-12)
	b, err := m.Bonds()
	require.NoError(Te, err)
	assert.InDelta(Te, 1.2746, b[0][1], 1e-12)

	//keys after the last [[site]] belong to it, so the bonds go first.
	withBonds := "bonds = [[0.0, 1.5], [1.5, 0.0]]\n" + hclTOML
	m, err = ReadMolecule(strings.NewReader(withBonds))
	require.NoError(Te, err)
	b, err = m.Bonds()
	require.NoError(Te, err)
	assert.Equal(Te, 1.5, b[1][0])

	_, err = ReadMolecule(strings.NewReader("bonds = [[0.0]]\n" + hclTOML))
	assert.True(Te, errors.Is(err, rism.ErrBondShape))
	_, err = ReadMolecule(strings.NewReader(strings.Replace(hclTOML, `"cl"`, `"h"`, 1)))
	assert.True(Te, errors.Is(err, rism.ErrMolecule))
	_, err = ReadMolecule(strings.NewReader(`name = "empty"`))
	assert.True(Te, errors.Is(err, rism.ErrMolecule))

	w, err := Molecule("water")
	require.NoError(Te, err)
	assert.Equal(Te, 3, w.Len())
	name := filepath.Join(Te.TempDir(), "hcl.toml")
	require.NoError(Te, os.WriteFile(name, []byte(hclTOML), 0644))
	m, err = Molecule(name)
	require.NoError(Te, err)
	assert.Equal(Te, "hcl-file", m.Name)
	_, err = Molecule("no-such-molecule")
	assert.Error(Te, err)
}
