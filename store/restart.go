/*
 * restart.go, part of gorism.
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
	"io"
	"os"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/grid"
	"github.com/rmera/gorism/hnc"
)

//EncodeRestart writes the restart token r to w.
func EncodeRestart(w io.Writer, r *hnc.Restart) error {
	if r == nil {
		return rism.NewError("nil restart token", "store.EncodeRestart", true)
	}
	n := r.N[0] * r.N[1] * r.N[2]
	if r.M <= 0 || len(r.T) != r.M*n {
		return rism.Errorf(rism.ErrRestart, "store.EncodeRestart", "%d values for %d sites on %v", len(r.T), r.M, r.N)
	}
	z, err := newWriter(w)
	if err != nil {
		return errDecorate(err, "EncodeRestart")
	}
	h := header{magic: magicRst, n: r.N, l: r.L, m: r.M}
	if err := h.write(z); err != nil {
		z.Close()
		return errDecorate(err, "EncodeRestart")
	}
	if err := writeFloats(z, r.T); err != nil {
		z.Close()
		return errDecorate(err, "EncodeRestart")
	}
	return errDecorate(z.Close(), "EncodeRestart")
}

//DecodeRestart reads a restart token written by EncodeRestart.
func DecodeRestart(r io.Reader) (*hnc.Restart, error) {
	br, c, err := newReader(r)
	if err != nil {
		return nil, errDecorate(err, "DecodeRestart")
	}
	defer c.Close()
	h, err := readHeader(br, magicRst)
	if err != nil {
		return nil, errDecorate(err, "DecodeRestart")
	}
	ret := &hnc.Restart{N: h.n, L: h.l, M: h.m}
	ret.T = make([]float64, h.m*h.n[0]*h.n[1]*h.n[2])
	if err := readFloats(br, ret.T); err != nil {
		return nil, errDecorate(err, "DecodeRestart")
	}
	return ret, nil
}

//WriteChi writes the solvent susceptibility chi to w. The diagonal
//fields are omitted when chi has none.
func WriteChi(w io.Writer, chi *grid.KPairs) error {
	var g *grid.Grid
	var origin grid.Origin
	for _, v := range chi.Unique() {
		if v != nil {
			g = v.Grid()
			origin = v.Origin()
			break
		}
	}
	if g == nil {
		return rism.NewError("empty susceptibility", "store.WriteChi", true)
	}
	z, err := newWriter(w)
	if err != nil {
		return errDecorate(err, "WriteChi")
	}
	h := header{magic: magicChi, n: g.N, l: g.L, origin: origin, m: chi.M()}
	if chi.NoDiagonal() {
		h.extra = 1
	}
	if err := h.write(z); err != nil {
		z.Close()
		return errDecorate(err, "WriteChi")
	}
	for _, v := range chi.Unique() {
		if v == nil {
			continue
		}
		if err := writeComplex(z, v.Raw()); err != nil {
			z.Close()
			return errDecorate(err, "WriteChi")
		}
	}
	return errDecorate(z.Close(), "WriteChi")
}

//ReadChi reads a susceptibility written by WriteChi.
func ReadChi(r io.Reader) (*grid.KPairs, error) {
	br, c, err := newReader(r)
	if err != nil {
		return nil, errDecorate(err, "ReadChi")
	}
	defer c.Close()
	h, err := readHeader(br, magicChi)
	if err != nil {
		return nil, errDecorate(err, "ReadChi")
	}
	g := h.grid()
	var ret *grid.KPairs
	if h.extra == 1 {
		ret = grid.NewKPairsNoDiagonal(g, h.m)
	} else {
		ret = grid.NewKPairs(g, h.m)
	}
	for _, v := range ret.Unique() {
		if v == nil {
			continue
		}
		if err := readComplex(br, v.Raw()); err != nil {
			return nil, errDecorate(err, "ReadChi")
		}
		v.SetOrigin(h.origin)
	}
	return ret, nil
}

//SaveRestart writes r to the file name.
func SaveRestart(name string, r *hnc.Restart) error {
	return save(name, "SaveRestart", func(w io.Writer) error { return EncodeRestart(w, r) })
}

//LoadRestart reads a restart token from the file name.
func LoadRestart(name string) (*hnc.Restart, error) {
	var ret *hnc.Restart
	err := load(name, "LoadRestart", func(r io.Reader) (err error) {
		ret, err = DecodeRestart(r)
		return err
	})
	return ret, err
}

//SaveChi writes chi to the file name.
func SaveChi(name string, chi *grid.KPairs) error {
	return save(name, "SaveChi", func(w io.Writer) error { return WriteChi(w, chi) })
}

//LoadChi reads a susceptibility from the file name.
func LoadChi(name string) (*grid.KPairs, error) {
	var ret *grid.KPairs
	err := load(name, "LoadChi", func(r io.Reader) (err error) {
		ret, err = ReadChi(r)
		return err
	})
	return ret, err
}

func save(name, caller string, f func(io.Writer) error) error {
	fout, err := os.Create(name)
	if err != nil {
		return errDecorate(err, caller)
	}
	if err := f(fout); err != nil {
		fout.Close()
		return errDecorate(err, caller)
	}
	return errDecorate(fout.Close(), caller)
}

func load(name, caller string, f func(io.Reader) error) error {
	fin, err := os.Open(name)
	if err != nil {
		return errDecorate(err, caller)
	}
	defer fin.Close()
	return errDecorate(f(fin), caller)
}
