/*
 * filter.go, part of gocryo.
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
	"math"

	"gorgonia.org/tensor"
)

//LowpassFilter zeroes every Fourier component above its cutoff, given
//as a fraction of the Nyquist frequency. A cutoff of 1 keeps everything
//up to Nyquist.
type LowpassFilter struct {
	cutoff float64
}

//NewLowpassFilter returns a sharp low-pass filter with the given
//cutoff, as a fraction of Nyquist. The cutoff must be positive.
func NewLowpassFilter(cutoff float64) (*LowpassFilter, error) {
	if cutoff <= 0 {
		return nil, CError{"the low-pass cutoff must be positive", []string{"NewLowpassFilter"}}
	}
	return &LowpassFilter{cutoff: cutoff}, nil
}

//Apply returns the filtered transform. The argument must be a
//corner-origin complex spectrum, and is not modified.
func (F *LowpassFilter) Apply(ft *tensor.Dense) (*tensor.Dense, error) {
	data, err := asComplexes(ft, "LowpassFilter.Apply")
	if err != nil {
		return nil, err
	}
	shape := ft.Shape()
	out := make([]complex128, len(data))
	limit := F.cutoff * 0.5
	limit *= limit
	idx := make([]int, len(shape))
	for o := range data {
		r2 := 0.0
		for ax, v := range idx {
			f := fftFreq(v, shape[ax])
			r2 += f * f
		}
		if r2 <= limit {
			out[o] = data[o]
		}
		odometer(idx, shape)
	}
	return tensor.New(tensor.WithShape(cloneInts(shape)...), tensor.WithBacking(out)), nil
}

//BFactorFilter dampens a spectrum with the Gaussian envelope
//exp(-B*|f|^2/4). With a voxel size the frequencies are taken in
//inverse angstroms, so B is in square angstroms as usual; without one
//they stay in cycles per voxel. B of zero leaves the spectrum alone,
//and negative values sharpen instead.
type BFactorFilter struct {
	b  float64
	vs float64
}

//NewBFactorFilter returns a B-factor envelope. The optional voxel size,
//in angstroms, must be positive when given.
func NewBFactorFilter(b float64, voxelSize ...float64) (*BFactorFilter, error) {
	vs := 0.0
	if len(voxelSize) > 0 {
		vs = voxelSize[0]
		if vs <= 0 {
			return nil, CError{BadVoxelSize, []string{"NewBFactorFilter"}}
		}
	}
	return &BFactorFilter{b: b, vs: vs}, nil
}

//Apply returns the dampened transform. The argument must be a
//corner-origin complex spectrum, and is not modified.
func (F *BFactorFilter) Apply(ft *tensor.Dense) (*tensor.Dense, error) {
	data, err := asComplexes(ft, "BFactorFilter.Apply")
	if err != nil {
		return nil, err
	}
	shape := ft.Shape()
	out := make([]complex128, len(data))
	conv := 1.0
	if F.vs > 0 {
		conv = 1 / (F.vs * F.vs)
	}
	idx := make([]int, len(shape))
	for o := range data {
		r2 := 0.0
		for ax, v := range idx {
			f := fftFreq(v, shape[ax])
			r2 += f * f
		}
		w := math.Exp(-F.b * r2 * conv / 4)
		out[o] = complex(w*real(data[o]), w*imag(data[o]))
		odometer(idx, shape)
	}
	return tensor.New(tensor.WithShape(cloneInts(shape)...), tensor.WithBacking(out)), nil
}
