/*
 * problem.go, part of gorism.
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
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

//ClosureKind identifies a closure relation.
type ClosureKind int

const (
	HNC ClosureKind = iota
	KH
	PY
	PSE
)

var closureNames = map[ClosureKind]string{HNC: "HNC", KH: "KH", PY: "PY", PSE: "PSE"}

func (c ClosureKind) String() string {
	if s, ok := closureNames[c]; ok {
		return s
	}
	return "ClosureKind(" + strconv.Itoa(int(c)) + ")"
}

//ParseClosure parses a closure name. "PSE3" and "PSE-3" give PSE with order 3.
//For other closures the order returned is 0, except KH, which is PSE of order 1.
func ParseClosure(s string) (ClosureKind, int, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	switch u {
	case "HNC":
		return HNC, 0, nil
	case "KH":
		return KH, 1, nil
	case "PY":
		return PY, 0, nil
	}
	if strings.HasPrefix(u, "PSE") {
		n := strings.TrimPrefix(strings.TrimPrefix(u, "PSE"), "-")
		if n == "" {
			return PSE, 2, nil
		}
		o, err := strconv.Atoi(n)
		if err != nil || o < 1 {
			return 0, 0, errorf(ErrClosure, "ParseClosure", "bad PSE order in %q", s)
		}
		return PSE, o, nil
	}
	return 0, 0, errorf(ErrClosure, "ParseClosure", "%q", s)
}

//ProblemData contains the parameters of one calculation. It is not modified by
//the solvers.
type ProblemData struct {
	N       [3]int     //Number of grid points per dimension
	L       [3]float64 //Full edge of the box
	Beta    float64    //Inverse temperature, mol/kcal
	Rho     float64    //Solvent number density
	Lambda  float64    //Mixing parameter
	Damp    float64    //Initial damping factor
	NormTol float64
	MaxIter int
	Closure ClosureKind
	Order   int     //For PSE-n closures
	Zpad    float64 //radius of the domain that is not zero-padded.
}

//DefaultProblem returns a problem with the usual parameters, a 32³ grid
//on a 20 Å box and the HNC closure.
func DefaultProblem() *ProblemData {
	return &ProblemData{
		N:       [3]int{32, 32, 32},
		L:       [3]float64{20, 20, 20},
		Beta:    1.6889, //kT at 298.15 K, in kcal/mol
		Rho:     0.033,
		Lambda:  0.1,
		Damp:    1,
		NormTol: 1e-7,
		MaxIter: 100,
		Closure: HNC,
		Zpad:    10,
	}
}

//H returns the grid spacing
func (P *ProblemData) H() [3]float64 {
	return [3]float64{P.L[0] / float64(P.N[0]), P.L[1] / float64(P.N[1]), P.L[2] / float64(P.N[2])}
}

//Volume returns the volume of the box
func (P *ProblemData) Volume() float64 {
	return P.L[0] * P.L[1] * P.L[2]
}

//CellVolume returns the volume of one grid cell, h³
func (P *ProblemData) CellVolume() float64 {
	h := P.H()
	return h[0] * h[1] * h[2]
}

//Points returns the total number of grid points.
func (P *ProblemData) Points() int {
	return P.N[0] * P.N[1] * P.N[2]
}

//Validate checks that the problem makes sense.
func (P *ProblemData) Validate() error {
	for i := 0; i < 3; i++ {
		if P.N[i] < 2 || P.N[i]%2 != 0 {
			return errorf(ErrGrid, "ProblemData.Validate", "N[%d]=%d must be even and at least 2", i, P.N[i])
		}
		if P.L[i] <= 0 {
			return errorf(ErrGrid, "ProblemData.Validate", "L[%d]=%g must be positive", i, P.L[i])
		}
	}
	if P.Beta <= 0 {
		return NewError(fmt.Sprintf("beta must be positive, got %g", P.Beta), "ProblemData.Validate", true)
	}
	if P.Rho < 0 {
		return NewError(fmt.Sprintf("negative density %g", P.Rho), "ProblemData.Validate", true)
	}
	if P.MaxIter < 1 {
		return NewError(fmt.Sprintf("max_iter must be at least 1, got %d", P.MaxIter), "ProblemData.Validate", true)
	}
	if P.NormTol <= 0 {
		return NewError(fmt.Sprintf("norm_tol must be positive, got %g", P.NormTol), "ProblemData.Validate", true)
	}
	if _, ok := closureNames[P.Closure]; !ok {
		return errorf(ErrClosure, "ProblemData.Validate", "%v", P.Closure)
	}
	if P.Closure == PSE && P.Order < 1 {
		return errorf(ErrClosure, "ProblemData.Validate", "PSE order %d", P.Order)
	}
	return nil
}

//ClosureName returns the name of the closure, including the order for PSE.
func (P *ProblemData) ClosureName() string {
	if P.Closure == PSE {
		return fmt.Sprintf("PSE-%d", P.Order)
	}
	return P.Closure.String()
}

//LogValue implements slog.LogValuer
func (P *ProblemData) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("N", P.N),
		slog.Any("L", P.L),
		slog.Float64("beta", P.Beta),
		slog.Float64("rho", P.Rho),
		slog.Float64("lambda", P.Lambda),
		slog.Float64("damp", P.Damp),
		slog.Float64("norm_tol", P.NormTol),
		slog.Int("max_iter", P.MaxIter),
		slog.String("closure", P.ClosureName()),
		slog.Float64("zpad", P.Zpad),
	)
}
