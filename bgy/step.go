/*
 * step.go, part of gorism.
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

package bgy

import (
	"math"

	rism "github.com/rmera/gorism"
)

//MixingConfig controls the adaptive step of the BGY iteration.
type MixingConfig struct {
	Lookback   int     `yaml:"lookback"`    //the large step is used every Lookback iterations
	Warmup     int     `yaml:"warmup"`      //no step reduction before this iteration
	StallCount int     `yaml:"stall_count"` //iterations without reduction before the step grows
	GrowCap    float64 `yaml:"grow_cap"`    //the step is doubled only up to this value
	ResetStep  float64 `yaml:"reset_step"`  //step set when it can't be doubled
}

//DefaultMixing returns the usual mixing parameters.
func DefaultMixing() MixingConfig {
	return MixingConfig{Lookback: 10, Warmup: 20, StallCount: 20, GrowCap: 0.5, ResetStep: 1.0}
}

func (m MixingConfig) Validate() error {
	if m.Lookback < 1 || m.StallCount < 1 || m.Warmup < 0 || m.GrowCap <= 0 || m.ResetStep <= 0 {
		return rism.NewError("invalid mixing parameters", "bgy.MixingConfig.Validate", true)
	}
	return nil
}

//State is the state of the step control.
type State int

const (
	Ramping State = iota //a new damping level just started
	Iterating
	DivergenceDetected //the step was halved
	Stalled            //the step was enlarged
	Converged
)

func (s State) String() string {
	return [...]string{"ramping", "iterating", "divergence", "stalled", "converged"}[s]
}

//stepper keeps the adaptive step a1 and the history needed to change it.
type stepper struct {
	cfg     MixingConfig
	a0, a1  float64
	count   int
	upwards bool
	old     []float64
	state   State
}

func newStepper(cfg MixingConfig, a0 float64, ntasks int) *stepper {
	s := &stepper{cfg: cfg, a0: a0, old: make([]float64, ntasks)}
	s.reset()
	return s
}

//reset prepares the stepper for a new damping level.
func (s *stepper) reset() {
	s.a1 = s.a0
	s.count = 0
	s.upwards = false
	s.state = Ramping
	for i := range s.old {
		s.old[i] = math.Inf(1)
	}
}

//step returns the mixing parameter for the iteration iter.
func (s *stepper) step(iter int) float64 {
	if iter > 0 && iter%s.cfg.Lookback == 0 {
		return s.a1
	}
	return s.a0
}

//update processes the norms obtained in iteration iter, and returns the new state.
func (s *stepper) update(iter int, norms []float64, tol float64) State {
	s.count++
	s.state = Iterating
	up := false
	for i, v := range norms {
		if s.old[i] < v {
			up = true
		}
	}
	lb := s.cfg.Lookback
	switch {
	case (iter-1)%lb != 0 && up:
		s.upwards = true
	case iter > s.cfg.Warmup && (iter-1)%lb == 0 && !s.upwards && up:
		s.a1 /= 2
		if s.a1 < s.a0 {
			s.a1 = s.a0
		}
		s.count = 0
		s.state = DivergenceDetected
	default:
		s.upwards = false
	}
	if s.count > s.cfg.StallCount {
		if s.a1 <= s.cfg.GrowCap {
			s.a1 *= 2
		} else {
			s.a1 = s.cfg.ResetStep
		}
		s.count = 0
		s.state = Stalled
	}
	copy(s.old, norms)
	conv := true
	for _, v := range norms {
		if !(v <= tol) {
			conv = false
		}
	}
	if conv {
		s.state = Converged
	}
	return s.state
}
