/*
 * config.go, part of gorism.
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

//Package config loads the settings of a calculation from YAML files, and
//molecules from TOML tables.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	rism "github.com/rmera/gorism"
	"github.com/rmera/gorism/bgy"
	"github.com/rmera/gorism/fft"
	"github.com/rmera/gorism/hnc"
	"github.com/rmera/gorism/regularize"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

//Config holds the settings of a calculation.
type Config struct {
	Rho       float64 `yaml:"rho"`
	Beta      float64 `yaml:"beta"`
	NormTol   float64 `yaml:"norm_tol"`
	MaxIter   int     `yaml:"max_iter"`
	Lambda    float64 `yaml:"lambda"`
	DampStart float64 `yaml:"damp_start"`
	Zpad      float64 `yaml:"zpad"`
	L         float64 `yaml:"L"` //half the box edge
	N         int     `yaml:"N"`
	Closure   string  `yaml:"closure"`
	PSEOrder  int     `yaml:"pse_order"`
	Solver    string  `yaml:"solver"`
	FFT       string  `yaml:"fft"`
	Cpus      int     `yaml:"cpus"`
	Krylov    int     `yaml:"krylov"`
	LinTol    float64 `yaml:"lin_tol"`

	Regularize regularize.Config `yaml:"regularize"`
	Mixing     bgy.MixingConfig  `yaml:"mixing"`
	Radial     RadialConfig      `yaml:"radial"`
}

//RadialConfig sets the shells of the radial profiles written by the program.
type RadialConfig struct {
	DR   float64 `yaml:"dr"`
	RMax float64 `yaml:"rmax"`
}

//Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic("config: malformed embedded defaults: " + err.Error())
	}
	return cfg
}

//Load reads the YAML file path on top of the defaults. Only the keys
//present in the file are changed. An empty path gives the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

//Validate checks the settings that the problem data can't check.
func (c *Config) Validate() error {
	if _, err := c.ProblemData(); err != nil {
		return err
	}
	if _, err := hnc.ParseSolver(c.Solver); err != nil {
		return err
	}
	if _, err := fft.ParseKind(c.FFT); err != nil {
		return err
	}
	if err := c.Regularize.Validate(); err != nil {
		return err
	}
	if err := c.Mixing.Validate(); err != nil {
		return err
	}
	if c.Radial.DR <= 0 || c.Radial.RMax < c.Radial.DR {
		return fmt.Errorf("bad radial shells: dr %g rmax %g", c.Radial.DR, c.Radial.RMax)
	}
	return nil
}

//ProblemData returns the validated problem described by c.
func (c *Config) ProblemData() (*rism.ProblemData, error) {
	kind, order, err := rism.ParseClosure(c.Closure)
	if err != nil {
		return nil, err
	}
	if kind == rism.PSE && !strings.ContainsAny(c.Closure, "0123456789") && c.PSEOrder > 0 {
		order = c.PSEOrder
	}
	if kind != rism.PSE {
		order = 0
	}
	pd := &rism.ProblemData{
		N:       [3]int{c.N, c.N, c.N},
		L:       [3]float64{2 * c.L, 2 * c.L, 2 * c.L},
		Beta:    c.Beta,
		Rho:     c.Rho,
		Lambda:  c.Lambda,
		Damp:    c.DampStart,
		NormTol: c.NormTol,
		MaxIter: c.MaxIter,
		Closure: kind,
		Order:   order,
		Zpad:    c.Zpad,
	}
	if err := pd.Validate(); err != nil {
		return nil, err
	}
	return pd, nil
}

func (c *Config) cpus() int {
	if c.Cpus > 0 {
		return c.Cpus
	}
	return runtime.NumCPU()
}

//HNCOptions returns the options for the HNC drivers. The config should have been validated.
func (c *Config) HNCOptions(logger *slog.Logger) *hnc.Options {
	o := hnc.DefaultOptions()
	o.Cpus(c.cpus())
	s, _ := hnc.ParseSolver(c.Solver)
	o.Solver(s)
	k, _ := fft.ParseKind(c.FFT)
	o.FFT(k)
	o.Krylov(c.Krylov)
	o.LinTol(c.LinTol)
	o.Logger(logger)
	return o
}

//BGYOptions returns the options for the BGY driver.
func (c *Config) BGYOptions(logger *slog.Logger) *bgy.Options {
	o := bgy.DefaultOptions()
	o.Cpus(c.cpus())
	k, _ := fft.ParseKind(c.FFT)
	o.FFT(k)
	o.Mixing(c.Mixing)
	o.Regularize(c.Regularize)
	o.Logger(logger)
	return o
}

//WriteYAML writes the settings in c to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
