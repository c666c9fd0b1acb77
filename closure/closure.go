/*
 * closure.go, part of gorism.
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

package closure

import (
	"fmt"
	"math"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/grid"
)

//Closure is a pointwise relation c = closure(v, t) between the direct
//correlation c, the (short-range) potential v and the indirect correlation t.
type Closure interface {
	//Apply returns c for the given β, v and t.
	Apply(beta, v, t float64) float64
	//Derivative returns dc for an increment dt of t.
	Derivative(beta, v, t, dt float64) float64
	Kind() rism.ClosureKind
	String() string
}

//New returns the closure of the given kind. order is only used
//for PSE closures.
func New(kind rism.ClosureKind, order int) (Closure, error) {
	switch kind {
	case rism.HNC:
		return HNC{}, nil
	case rism.KH:
		return KH{}, nil
	case rism.PY:
		return PY{}, nil
	case rism.PSE:
		if order < 1 {
			return nil, rism.Errorf(rism.ErrClosure, "closure.New", "PSE order %d", order)
		}
		return PSE{Order: order}, nil
	}
	return nil, rism.Errorf(rism.ErrClosure, "closure.New", "%v", kind)
}

//FromProblem returns the closure set in pd.
func FromProblem(pd *rism.ProblemData) (Closure, error) {
	return New(pd.Closure, pd.Order)
}

//HNC is the hypernetted chain closure, c = exp(-βv+t) - 1 - t
type HNC struct{}

func (HNC) Apply(beta, v, t float64) float64 {
	return math.Exp(-beta*v+t) - 1 - t
}

func (HNC) Derivative(beta, v, t, dt float64) float64 {
	return (math.Exp(-beta*v+t) - 1) * dt
}

func (HNC) Kind() rism.ClosureKind { return rism.HNC }

func (HNC) String() string { return "HNC" }

//KH is the Kovalenko-Hirata closure: HNC where x=-βv+t is not positive,
//linearized elsewhere.
type KH struct{}

func (KH) Apply(beta, v, t float64) float64 {
	x := -beta*v + t
	if x <= 0 {
		return math.Exp(x) - 1 - t
	}
	return x - t
}

func (KH) Derivative(beta, v, t, dt float64) float64 {
	x := -beta*v + t
	if x <= 0 {
		return (math.Exp(x) - 1) * dt
	}
	return 0
}

func (KH) Kind() rism.ClosureKind { return rism.KH }

func (KH) String() string { return "KH" }

//PY is the Percus-Yevick closure, c = (1+t)(exp(-βv)-1)
type PY struct{}

func (PY) Apply(beta, v, t float64) float64 {
	return (1 + t) * (math.Exp(-beta*v) - 1)
}

func (PY) Derivative(beta, v, t, dt float64) float64 {
	return (math.Exp(-beta*v) - 1) * dt
}

func (PY) Kind() rism.ClosureKind { return rism.PY }

func (PY) String() string { return "PY" }

//PSE is the partial series expansion of order Order. For x=-βv+t > 0
//the exponential is replaced by its Taylor series up to x^Order.
//PSE of order 1 is KH.
type PSE struct {
	Order int
}

//taylor returns Σ_{i=0..n} x^i/i!
func taylor(x float64, n int) float64 {
	sum, term := 1.0, 1.0
	for i := 1; i <= n; i++ {
		term *= x / float64(i)
		sum += term
	}
	return sum
}

func (p PSE) Apply(beta, v, t float64) float64 {
	x := -beta*v + t
	if x <= 0 {
		return math.Exp(x) - 1 - t
	}
	return taylor(x, p.Order) - 1 - t
}

func (p PSE) Derivative(beta, v, t, dt float64) float64 {
	x := -beta*v + t
	if x <= 0 {
		return (math.Exp(x) - 1) * dt
	}
	return (taylor(x, p.Order-1) - 1) * dt
}

func (PSE) Kind() rism.ClosureKind { return rism.PSE }

func (p PSE) String() string { return fmt.Sprintf("PSE-%d", p.Order) }

//Fields puts closure(v, t) in c, point by point. c can be t.
func Fields(cl Closure, beta float64, c, v, t *grid.Field) {
	c.Map2(v, t, func(v, t float64) float64 {
		return cl.Apply(beta, v, t)
	})
}

//DerivFields puts the derivative of the closure, for an increment dt, in dc.
func DerivFields(cl Closure, beta float64, dc, v, t, dt *grid.Field) {
	dc.Map3(v, t, dt, func(v, t, dt float64) float64 {
		return cl.Derivative(beta, v, t, dt)
	})
}
