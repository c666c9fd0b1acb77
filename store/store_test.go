/*
 * store_test.go, part of gorism.
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

package store

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/grid"
	"github.com/rmera/gorism/hnc"
	"github.com/rmera/gorism/radial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid() *grid.Grid {
	return grid.New([3]int{4, 6, 8}, [3]float64{4, 6, 8}, 1)
}

func TestField(Te *testing.T) {
	g := testGrid()
	f := grid.NewField(g)
	for i := range f.Raw() {
		f.Raw()[i] = math.Sin(float64(i)) * 1e3
	}
	f.SetOrigin(grid.Corner)
	var b bytes.Buffer
	require.NoError(Te, WriteField(&b, f))
	r, err := ReadField(&b)
	require.NoError(Te, err)
	assert.Equal(Te, f.Raw(), r.Raw())
	assert.Equal(Te, grid.Corner, r.Origin())
	assert.Equal(Te, g.N, r.Grid().N)
	assert.Equal(Te, g.L, r.Grid().L)

	k := grid.NewKField(g)
	for i := range k.Raw() {
		k.Raw()[i] = complex(float64(i), -0.5*float64(i))
	}
	b.Reset()
	require.NoError(Te, WriteKField(&b, k))
	rk, err := ReadKField(&b)
	require.NoError(Te, err)
	assert.Equal(Te, k.Raw(), rk.Raw())

	//a complex field is not a real one.
	b.Reset()
	require.NoError(Te, WriteKField(&b, k))
	_, err = ReadField(&b)
	assert.Error(Te, err)

	name := filepath.Join(Te.TempDir(), "g.fld")
	require.NoError(Te, SaveField(name, f))
	r, err = LoadField(name)
	require.NoError(Te, err)
	assert.Equal(Te, f.Raw(), r.Raw())
	_, err = LoadField(filepath.Join(Te.TempDir(), "missing"))
	assert.Error(Te, err)
}

func TestRestart(Te *testing.T) {
	g := testGrid()
	r := &hnc.Restart{N: g.N, L: g.L, M: 2, T: make([]float64, 2*g.Len())}
	for i := range r.T {
		r.T[i] = float64(i%17) - 8
	}
	name := filepath.Join(Te.TempDir(), "rst")
	require.NoError(Te, SaveRestart(name, r))
	q, err := LoadRestart(name)
	require.NoError(Te, err)
	assert.Equal(Te, r, q)

	bad := &hnc.Restart{N: g.N, L: g.L, M: 3, T: r.T}
	err = EncodeRestart(&bytes.Buffer{}, bad)
	assert.True(Te, errors.Is(err, rism.ErrRestart))

	//a truncated file
	raw, err := os.ReadFile(name)
	require.NoError(Te, err)
	_, err = DecodeRestart(bytes.NewReader(raw[:len(raw)/2]))
	assert.Error(Te, err)
}

func TestChi(Te *testing.T) {
	g := testGrid()
	for _, nodia := range []bool{false, true} {
		var chi *grid.KPairs
		if nodia {
			chi = grid.NewKPairsNoDiagonal(g, 3)
		} else {
			chi = grid.NewKPairs(g, 3)
		}
		for n, v := range chi.Unique() {
			if v == nil {
				continue
			}
			for i := range v.Raw() {
				v.Raw()[i] = complex(float64(n), float64(i))
			}
			v.SetOrigin(grid.Corner)
		}
		var b bytes.Buffer
		require.NoError(Te, WriteChi(&b, chi))
		r, err := ReadChi(&b)
		require.NoError(Te, err)
		assert.Equal(Te, nodia, r.NoDiagonal())
		assert.Equal(Te, 3, r.M())
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if nodia && i == j {
					assert.Nil(Te, r.At(i, j))
					continue
				}
				assert.Equal(Te, chi.At(i, j).Raw(), r.At(i, j).Raw())
				assert.Equal(Te, grid.Corner, r.At(i, j).Origin())
			}
		}
	}
}

//Headers asking for absurd sizes are rejected before anything is allocated.
func TestHugeHeaders(Te *testing.T) {
	raw := func(h header) *bytes.Reader {
		var b bytes.Buffer
		z, err := newWriter(&b)
		require.NoError(Te, err)
		require.NoError(Te, h.write(z))
		require.NoError(Te, z.Close())
		return bytes.NewReader(b.Bytes())
	}
	l := [3]float64{10, 10, 10}
	_, err := DecodeRestart(raw(header{magic: magicRst, n: [3]int{1 << 20, 1 << 20, 1 << 20}, l: l, m: 2}))
	assert.Error(Te, err)
	//the product overflows int64
	_, err = DecodeRestart(raw(header{magic: magicRst, n: [3]int{1 << 25, 1 << 25, 1 << 25}, l: l, m: 2}))
	assert.Error(Te, err)
	_, err = DecodeRestart(raw(header{magic: magicRst, n: [3]int{8, 8, 8}, l: l, m: 0}))
	assert.Error(Te, err)
	_, err = ReadChi(raw(header{magic: magicChi, n: [3]int{8, 8, 8}, l: l, m: 1 << 20}))
	assert.Error(Te, err)
	_, err = ReadChi(raw(header{magic: magicChi, n: [3]int{512, 512, 512}, l: l, m: 4}))
	assert.Error(Te, err)
	_, err = ReadField(raw(header{magic: magicField, n: [3]int{8, 8, 8}, l: l, origin: 7, m: 1}))
	assert.Error(Te, err)
	//a sane header with no payload fails on the data, not the header
	_, err = ReadField(raw(header{magic: magicField, n: [3]int{8, 8, 8}, l: l, m: 1}))
	require.Error(Te, err)
	assert.NotContains(Te, err.Error(), "header")
}

func TestProfilesCSV(Te *testing.T) {
	a := radial.NewProfile("O-O", []float64{0, 1, 2, 3})
	a.AddPoints([]float64{0.5, 1.5, 1.2}, []float64{0, 2, 4})
	c := radial.NewProfile("O-H", []float64{0, 1, 2, 3})
	c.AddPoints([]float64{2.5}, []float64{1})
	var b bytes.Buffer
	require.NoError(Te, WriteProfilesCSV(&b, a, c))
	assert.True(Te, strings.HasPrefix(b.String(), "profile,r,average,count"))
	t, err := ReadProfilesCSV(&b)
	require.NoError(Te, err)
	require.Len(Te, t["O-O"], 2) //the last shell is empty
	require.Len(Te, t["O-H"], 1)
	assert.Equal(Te, 1.5, t["O-O"][1].R)
	assert.Equal(Te, 3.0, t["O-O"][1].Average)
	assert.Equal(Te, 2.0, t["O-O"][1].Count)
	assert.Equal(Te, 2.5, t["O-H"][0].R)
}

func TestPlot(Te *testing.T) {
	a := radial.NewProfile("O-O", radial.Dividers(0.5, 4))
	r := make([]float64, 40)
	v := make([]float64, 40)
	for i := range r {
		r[i] = 0.1 * float64(i)
		v[i] = 1 - math.Exp(-r[i])
	}
	a.AddPoints(r, v)
	name := filepath.Join(Te.TempDir(), "g.png")
	require.NoError(Te, PlotProfiles(name, "test", a))
	st, err := os.Stat(name)
	require.NoError(Te, err)
	assert.True(Te, st.Size() > 0)
}
