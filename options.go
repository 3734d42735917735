/*
 * options.go, part of gocryo.
 *
 *
 * Copyright 2023 Raul Mera rauldotmeraatusachdotcl
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
 *
 *
 */

package cryo

import (
	"runtime"

	"github.com/rmera/gocryo/coords"
)

//Options contains the optional settings for building potentials and
//rasterizing atoms. The zero values mean "leave it alone": no padding
//beyond the data, no crop, no filter, no explicit grid.
type Options struct {
	padScale  float64
	padMode   PadMode
	padValue  float64
	cropScale float64
	filter    Filter
	grid      *coords.Grid
	factors   map[int]ScatteringFactors
	rtol      float64
	atol      float64
	cpus      int
}

//DefaultOptions returns the default settings: no padding (scale 1) with
//constant zero fill, no crop, no filter, no explicit coordinate grid,
//the usual closeness tolerances, and all logical CPUs.
func DefaultOptions() *Options {
	r := new(Options)
	r.padScale = 1.0
	r.padMode = PadConstant
	r.padValue = 0
	r.cropScale = 0
	r.rtol = 1e-05
	r.atol = 1e-08
	r.cpus = runtime.NumCPU()
	return r
}

//pickOptions returns the first given option set, or the defaults.
func pickOptions(options []*Options) *Options {
	if len(options) > 0 && options[0] != nil {
		return options[0]
	}
	return DefaultOptions()
}

//PadScale returns the factor by which volumes are padded before their
//Fourier transform, and sets it, if a value is given. The resulting dims
//are truncated, not rounded. Values below 1 are left for the builders to
//reject.
func (O *Options) PadScale(s ...float64) float64 {
	ret := O.padScale
	if len(s) > 0 {
		O.padScale = s[0]
	}
	return ret
}

//PadMode returns how padded entries are produced, and sets it, if a
//valid value is given.
func (O *Options) PadMode(m ...PadMode) PadMode {
	ret := O.padMode
	if len(m) > 0 {
		switch m[0] {
		case PadConstant, PadEdge, PadWrap:
			O.padMode = m[0]
		}
	}
	return ret
}

//PadValue returns the fill value used by the constant padding mode, and
//sets it, if given.
func (O *Options) PadValue(v ...float64) float64 {
	ret := O.padValue
	if len(v) > 0 {
		O.padValue = v[0]
	}
	return ret
}

//CropScale returns the factor by which real-space volumes are cropped
//after construction, and sets it, if a value is given. Zero means no
//crop; values above 1 are left for the builders to reject.
func (O *Options) CropScale(s ...float64) float64 {
	ret := O.cropScale
	if len(s) > 0 {
		O.cropScale = s[0]
	}
	return ret
}

//Filter returns the Fourier-space filter applied while building a
//potential, and sets it, if given. A nil filter means none.
func (O *Options) Filter(f ...Filter) Filter {
	ret := O.filter
	if len(f) > 0 {
		O.filter = f[0]
	}
	return ret
}

//CoordinateGrid returns the explicit coordinate grid a real-space
//potential should carry instead of a synthesized one, and sets it, if
//given.
func (O *Options) CoordinateGrid(g ...*coords.Grid) *coords.Grid {
	ret := O.grid
	if len(g) > 0 {
		O.grid = g[0]
	}
	return ret
}

//FactorTable returns the scattering factor table used when building
//potentials from atoms, and sets it, if given. Nil means the built-in
//table.
func (O *Options) FactorTable(t ...map[int]ScatteringFactors) map[int]ScatteringFactors {
	ret := O.factors
	if len(t) > 0 {
		O.factors = t[0]
	}
	return ret
}

//Rtol returns the relative tolerance used when deciding that a voxel is
//close enough to zero to drop, and sets it, if a valid value is given.
func (O *Options) Rtol(t ...float64) float64 {
	ret := O.rtol
	if len(t) > 0 && t[0] >= 0 {
		O.rtol = t[0]
	}
	return ret
}

//Atol returns the absolute tolerance used when deciding that a voxel is
//close enough to zero to drop, and sets it, if a valid value is given.
func (O *Options) Atol(t ...float64) float64 {
	ret := O.atol
	if len(t) > 0 && t[0] >= 0 {
		O.atol = t[0]
	}
	return ret
}

//Cpus returns the number of goroutines used by the concurrent
//rasterizer, and sets it, if a valid value is given.
func (O *Options) Cpus(cpus ...int) int {
	ret := O.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		O.cpus = cpus[0]
	}
	return ret
}
