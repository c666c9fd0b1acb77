/*
 * root_test.go, part of gorism.
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

package rism

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBonds(Te *testing.T) {
	m, ok := BuiltIn("hcl")
	require.True(Te, ok)
	b, err := m.Bonds()
	require.NoError(Te, err)
	assert.InDelta(Te, 1.2746, b[0][1], 1e-10)
	assert.Equal(Te, b[0][1], b[1][0])
	assert.Equal(Te, 0.0, b[0][0])
	require.NoError(Te, m.Validate())
}

func TestBondShape(Te *testing.T) {
	m, _ := BuiltIn("hcl")
	m.BondTable = [][]float64{{0, 1, 2}}
	_, err := m.Bonds()
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, ErrBondShape), err.Error())
	err = m.Validate()
	assert.True(Te, errors.Is(err, ErrBondShape), err.Error())
}

func TestValidateMolecule(Te *testing.T) {
	m := &Molecule{Name: "bad", Sites: []Site{{Name: "a", Sigma: 1}, {Name: "a", Sigma: 1}}}
	assert.True(Te, errors.Is(m.Validate(), ErrMolecule))
	empty := &Molecule{Name: "empty"}
	assert.Error(Te, empty.Validate())
}

func TestParseClosure(Te *testing.T) {
	k, o, err := ParseClosure("pse-3")
	require.NoError(Te, err)
	assert.Equal(Te, PSE, k)
	assert.Equal(Te, 3, o)
	k, _, err = ParseClosure("kh")
	require.NoError(Te, err)
	assert.Equal(Te, KH, k)
	_, _, err = ParseClosure("MSA")
	assert.True(Te, errors.Is(err, ErrClosure))
}

func TestProblemValidate(Te *testing.T) {
	p := DefaultProblem()
	require.NoError(Te, p.Validate())
	assert.InDelta(Te, 8000.0, p.Volume(), 1e-9)
	assert.InDelta(Te, 8000.0/32768, p.CellVolume(), 1e-12)
	p.N[1] = 31
	assert.True(Te, errors.Is(p.Validate(), ErrGrid))
	p = DefaultProblem()
	p.MaxIter = 0
	assert.Error(Te, p.Validate())
}

func TestDecorate(Te *testing.T) {
	err := Decorate(errorf(ErrSingular, "solve", "mode %d", 3), "driver")
	assert.True(Te, errors.Is(err, ErrSingular))
	var e Error
	require.True(Te, errors.As(err, &e))
	assert.True(Te, e.Critical())
}
