/*
 * field.go, part of gorism.
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

//Package store reads and writes the fields and tokens produced by the solvers,
//and writes profiles as CSV tables and plots.
//Binary files have a one-line text header followed by little-endian
//float64 data, and are compressed with z-standard.
package store

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/grid"
)

const (
	magicField  = "GORISM-FIELD"
	magicKField = "GORISM-KFIELD"
	magicChi    = "GORISM-CHI"
	magicRst    = "GORISM-RESTART"
)

//Why couldn't *zstd.Decoder implement io.ReadCloser? :-(
type zreader struct {
	*zstd.Decoder
}

func (z zreader) Close() error {
	z.Decoder.Close()
	return nil
}

func newWriter(w io.Writer) (*zstd.Encoder, error) {
	return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
}

func newReader(r io.Reader) (*bufio.Reader, io.Closer, error) {
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, nil, err
	}
	return bufio.NewReader(d), zreader{d}, nil
}

func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	return rism.Decorate(err, "store."+caller)
}

//header is the first line of each file
type header struct {
	magic  string
	n      [3]int
	l      [3]float64
	origin grid.Origin
	m      int //number of fields
	extra  int //kind-specific
}

func (h header) write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s %d %d %d %g %g %g %d %d %d\n", h.magic, h.n[0], h.n[1], h.n[2], h.l[0], h.l[1], h.l[2], h.origin, h.m, h.extra)
	return err
}

//Limits on what a header can ask for. A header beyond them is taken as corrupted.
const (
	maxPoints = 1 << 27 //points per field, 512³
	maxSites  = 64
	maxValues = 1 << 28 //float64 values in a file
)

func readHeader(r *bufio.Reader, magic string) (header, error) {
	var h header
	b, err := r.ReadSlice('\n')
	if err != nil {
		return h, fmt.Errorf("reading header: %w", err)
	}
	line := string(b)
	var o int
	_, err = fmt.Sscanf(strings.TrimSpace(line), "%s %d %d %d %g %g %g %d %d %d", &h.magic, &h.n[0], &h.n[1], &h.n[2], &h.l[0], &h.l[1], &h.l[2], &o, &h.m, &h.extra)
	if err != nil {
		return h, fmt.Errorf("malformed header %q: %w", line, err)
	}
	if h.magic != magic {
		return h, fmt.Errorf("expected a %s file, got %s", magic, h.magic)
	}
	points := 1
	for i := range h.n {
		if h.n[i] <= 0 || h.n[i] > maxPoints || h.l[i] <= 0 || math.IsInf(h.l[i], 0) {
			return h, fmt.Errorf("bad grid in header %q", line)
		}
		points *= h.n[i]
		if points > maxPoints {
			return h, fmt.Errorf("grid too large in header %q", line)
		}
	}
	if o != int(grid.Center) && o != int(grid.Corner) {
		return h, fmt.Errorf("bad origin in header %q", line)
	}
	h.origin = grid.Origin(o)
	perPoint := 1
	switch magic {
	case magicKField:
		perPoint = 2
	case magicRst, magicChi:
		if h.m <= 0 || h.m > maxSites {
			return h, fmt.Errorf("bad number of sites in header %q", line)
		}
		perPoint = h.m
		if magic == magicChi {
			perPoint = h.m * (h.m + 1)
		}
	}
	if perPoint*points > maxValues {
		return h, fmt.Errorf("header %q asks for %d values", line, perPoint*points)
	}
	return h, nil
}

func (h header) grid() *grid.Grid {
	return grid.New(h.n, h.l)
}

func writeFloats(w io.Writer, d []float64) error {
	buf := make([]byte, 8*1024)
	for len(d) > 0 {
		n := len(d)
		if n > 1024 {
			n = 1024
		}
		for i, v := range d[:n] {
			binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
		}
		if _, err := w.Write(buf[:8*n]); err != nil {
			return err
		}
		d = d[n:]
	}
	return nil
}

func readFloats(r io.Reader, d []float64) error {
	buf := make([]byte, 8*1024)
	for len(d) > 0 {
		n := len(d)
		if n > 1024 {
			n = 1024
		}
		if _, err := io.ReadFull(r, buf[:8*n]); err != nil {
			return err
		}
		for i := range d[:n] {
			d[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[8*i:]))
		}
		d = d[n:]
	}
	return nil
}

func writeComplex(w io.Writer, d []complex128) error {
	tmp := make([]float64, 2*len(d))
	for i, v := range d {
		tmp[2*i], tmp[2*i+1] = real(v), imag(v)
	}
	return writeFloats(w, tmp)
}

func readComplex(r io.Reader, d []complex128) error {
	tmp := make([]float64, 2*len(d))
	if err := readFloats(r, tmp); err != nil {
		return err
	}
	for i := range d {
		d[i] = complex(tmp[2*i], tmp[2*i+1])
	}
	return nil
}

//WriteField writes the compressed field f to w.
func WriteField(w io.Writer, f *grid.Field) error {
	g := f.Grid()
	z, err := newWriter(w)
	if err != nil {
		return errDecorate(err, "WriteField")
	}
	h := header{magic: magicField, n: g.N, l: g.L, origin: f.Origin(), m: 1}
	if err := h.write(z); err != nil {
		z.Close()
		return errDecorate(err, "WriteField")
	}
	if err := writeFloats(z, f.Raw()); err != nil {
		z.Close()
		return errDecorate(err, "WriteField")
	}
	return errDecorate(z.Close(), "WriteField")
}

//ReadField reads a field written by WriteField. The field is
//on a new grid.
func ReadField(r io.Reader) (*grid.Field, error) {
	br, c, err := newReader(r)
	if err != nil {
		return nil, errDecorate(err, "ReadField")
	}
	defer c.Close()
	h, err := readHeader(br, magicField)
	if err != nil {
		return nil, errDecorate(err, "ReadField")
	}
	f := grid.NewField(h.grid())
	if err := readFloats(br, f.Raw()); err != nil {
		return nil, errDecorate(err, "ReadField")
	}
	f.SetOrigin(h.origin)
	return f, nil
}

//WriteKField writes the compressed complex field f to w.
func WriteKField(w io.Writer, f *grid.KField) error {
	g := f.Grid()
	z, err := newWriter(w)
	if err != nil {
		return errDecorate(err, "WriteKField")
	}
	h := header{magic: magicKField, n: g.N, l: g.L, origin: f.Origin(), m: 1}
	if err := h.write(z); err != nil {
		z.Close()
		return errDecorate(err, "WriteKField")
	}
	if err := writeComplex(z, f.Raw()); err != nil {
		z.Close()
		return errDecorate(err, "WriteKField")
	}
	return errDecorate(z.Close(), "WriteKField")
}

//ReadKField reads a complex field written by WriteKField.
func ReadKField(r io.Reader) (*grid.KField, error) {
	br, c, err := newReader(r)
	if err != nil {
		return nil, errDecorate(err, "ReadKField")
	}
	defer c.Close()
	h, err := readHeader(br, magicKField)
	if err != nil {
		return nil, errDecorate(err, "ReadKField")
	}
	f := grid.NewKField(h.grid())
	if err := readComplex(br, f.Raw()); err != nil {
		return nil, errDecorate(err, "ReadKField")
	}
	f.SetOrigin(h.origin)
	return f, nil
}

//SaveField writes f to the file name.
func SaveField(name string, f *grid.Field) error {
	fout, err := os.Create(name)
	if err != nil {
		return errDecorate(err, "SaveField")
	}
	if err := WriteField(fout, f); err != nil {
		fout.Close()
		return err
	}
	return errDecorate(fout.Close(), "SaveField")
}

//LoadField reads a field from the file name.
func LoadField(name string) (*grid.Field, error) {
	fin, err := os.Open(name)
	if err != nil {
		return nil, errDecorate(err, "LoadField")
	}
	defer fin.Close()
	return ReadField(fin)
}
