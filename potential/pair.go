/*
 * pair.go, part of gorism.
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

package potential

import (
	"math"

	rism "github.com/rmera/gorism"
)

//Constants of the potential model. Energies are in kcal/mol, distances in Å.
const (
	EPSILON0INV = 331.84 //1/(4πε₀) in kcal·Å/(mol·e²)
	G           = 1.2    //Inverse range of the long-range Coulomb part, Å⁻¹
	Cutoff      = 1.0e4  //Potentials saturate at ε·Cutoff
)

//coulombCap is the largest absolute value allowed for a Coulomb term, for unit charges.
const coulombCap = EPSILON0INV * Cutoff * 1.0e-5

var twoGOverSqrtPi = 2 * G / math.Sqrt(math.Pi)

//Pair holds the combined parameters for the interaction of 2 sites.
type Pair struct {
	E2 float64 //sqrt(εa·εb)
	S2 float64 //(σa+σb)/2
	Q2 float64 //qa·qb
}

//Mix returns the pair parameters for sites a and b using the Lorentz-Berthelot rules.
func Mix(a, b rism.Site) Pair {
	return Pair{
		E2: math.Sqrt(a.Epsilon * b.Epsilon),
		S2: 0.5 * (a.Sigma + b.Sigma),
		Q2: a.Charge * b.Charge,
	}
}

//LennardJones returns 4ε[(σ/r)^12-(σ/r)^6], saturated at ε·Cutoff.
func LennardJones(r, epsilon, sigma float64) float64 {
	if epsilon == 0 {
		return 0
	}
	if r == 0 {
		return epsilon * Cutoff
	}
	sr6 := math.Pow(sigma/r, 6)
	re := 4 * epsilon * (sr6*sr6 - sr6)
	if math.Abs(re) > epsilon*Cutoff {
		return epsilon * Cutoff
	}
	return re
}

//LennardJonesGrad returns the component along rx of the gradient of the LJ potential.
func LennardJonesGrad(r, rx, epsilon, sigma float64) float64 {
	if rx == 0 || epsilon == 0 {
		return 0
	}
	sr6 := math.Pow(sigma/r, 6)
	re := 4 * epsilon * (-12*sr6*sr6 + 6*sr6) * rx / (r * r)
	if math.Abs(re) > epsilon*Cutoff {
		return math.Copysign(epsilon*Cutoff, re)
	}
	return re
}

//LJRepulsive returns 4ε(σ/r)^12, saturated at ε·Cutoff.
func LJRepulsive(r, epsilon, sigma float64) float64 {
	if epsilon == 0 {
		return 0
	}
	if r == 0 {
		return epsilon * Cutoff
	}
	sr6 := math.Pow(sigma/r, 6)
	re := 4 * epsilon * sr6 * sr6
	if math.Abs(re) > epsilon*Cutoff {
		return epsilon * Cutoff
	}
	return re
}

//CoulombShort returns the screened Coulomb potential EPSILON0INV·q2·erfc(Gr)/r.
//Large values, and r=0, give EPSILON0INV·q2·Cutoff·1e-5.
func CoulombShort(r, q2 float64) float64 {
	lim := coulombCap * q2
	if r == 0 {
		return lim
	}
	re := EPSILON0INV * q2 * math.Erfc(G*r) / r
	if math.Abs(re) > math.Abs(lim) {
		return lim
	}
	return re
}

//CoulombShortGrad returns the component along rx of the gradient of CoulombShort.
func CoulombShortGrad(r, rx, q2 float64) float64 {
	lim := coulombCap * q2
	if rx == 0 {
		return 0
	}
	if r == 0 {
		return -lim
	}
	re := -EPSILON0INV * q2 * (math.Erfc(G*r) + twoGOverSqrtPi*r*math.Exp(-G*G*r*r)) * rx / (r * r * r)
	if math.Abs(re) > math.Abs(lim) {
		return -lim
	}
	return re
}

//CoulombLong returns EPSILON0INV·q2·erf(Gr)/r, the smooth part of the Coulomb
//potential. It is finite at r=0.
func CoulombLong(r, q2 float64) float64 {
	if r == 0 {
		return EPSILON0INV * q2 * twoGOverSqrtPi
	}
	return EPSILON0INV * q2 * math.Erf(G*r) / r
}

//CoulombLongGrad returns the component along rx of the gradient of CoulombLong.
func CoulombLongGrad(r, rx, q2 float64) float64 {
	if r == 0 {
		return 0
	}
	return -EPSILON0INV * q2 * (math.Erf(G*r) - twoGOverSqrtPi*r*math.Exp(-G*G*r*r)) * rx / (r * r * r)
}

//Short returns damp·(LJ + CoulombShort) for the pair p at distance r.
func (p Pair) Short(r, damp float64) float64 {
	return damp * (LennardJones(r, p.E2, p.S2) + CoulombShort(r, p.Q2))
}
