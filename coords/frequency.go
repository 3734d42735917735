/*
 * frequency.go, part of gocryo.
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

package coords

import (
	"fmt"

	"gorgonia.org/tensor"
)

//FrequencySlice is the central kz = 0 plane of the Fourier-space
//coordinate system of a volume: a (1,N1,N2,3) tensor holding at (0,a,b)
//the centered frequencies (f1[a], f2[b], 0), with f[i] = (i - n/2)/n
//along each axis. The leading singleton axis keeps the plane a
//degenerate volume, which is what rotations expect to act on.
type FrequencySlice struct {
	*tensor.Dense
}

//NewFrequencySlice builds the central frequency plane for a volume whose
//first two dims are the given ones. spacing is the real-space sample
//distance and defaults to 1, so the frequencies come out in cycles per
//voxel; building with the voxel size instead gives cycles per angstrom.
func NewFrequencySlice(dims []int, spacing ...float64) (*FrequencySlice, error) {
	sp := 1.0
	if len(spacing) > 0 {
		sp = spacing[0]
	}
	if len(dims) != 2 {
		return nil, Error{fmt.Sprintf("a frequency slice needs 2 dims, got %d", len(dims)), []string{"NewFrequencySlice"}, true}
	}
	for _, n := range dims {
		if n <= 0 {
			return nil, Error{fmt.Sprintf("non-positive dim in %v", dims), []string{"NewFrequencySlice"}, true}
		}
	}
	if sp <= 0 {
		return nil, Error{fmt.Sprintf("non-positive spacing %v", sp), []string{"NewFrequencySlice"}, true}
	}
	n1, n2 := dims[0], dims[1]
	backing := make([]float64, n1*n2*3)
	p := 0
	for a := 0; a < n1; a++ {
		f1 := float64(a-n1/2) / (float64(n1) * sp)
		for b := 0; b < n2; b++ {
			backing[p] = f1
			backing[p+1] = float64(b-n2/2) / (float64(n2) * sp)
			backing[p+2] = 0
			p += 3
		}
	}
	return &FrequencySlice{tensor.New(tensor.WithShape(1, n1, n2, 3), tensor.WithBacking(backing))}, nil
}

//FrequencySliceFromTensor wraps an already-built frequency tensor, of
//shape (1,N1,N2,3), as a FrequencySlice. Rotated slices come through
//here, so no regularity is checked, only the shape.
func FrequencySliceFromTensor(t *tensor.Dense) (*FrequencySlice, error) {
	if t == nil {
		return nil, Error{"nil tensor", []string{"FrequencySliceFromTensor"}, true}
	}
	s := t.Shape()
	if len(s) != 4 || s[0] != 1 || s[3] != 3 {
		return nil, Error{fmt.Sprintf("a frequency slice needs shape (1,N1,N2,3), got %v", s), []string{"FrequencySliceFromTensor"}, true}
	}
	if _, ok := t.Data().([]float64); !ok {
		return nil, Error{"a frequency slice needs float64 entries", []string{"FrequencySliceFromTensor"}, true}
	}
	return &FrequencySlice{t}, nil
}

//At returns the three frequency components at (a,b) on the plane.
func (F *FrequencySlice) At(a, b int) (float64, float64, float64) {
	s := F.Shape()
	if a < 0 || a >= s[1] || b < 0 || b >= s[2] {
		panic(ErrOutOfRange)
	}
	d := F.Data().([]float64)
	p := (a*s[2] + b) * 3
	return d[p], d[p+1], d[p+2]
}

//Scaled returns a fresh slice with every component multiplied by s.
func (F *FrequencySlice) Scaled(s float64) *FrequencySlice {
	d := F.Data().([]float64)
	out := make([]float64, len(d))
	for i, v := range d {
		out[i] = v * s
	}
	sh := F.Shape()
	return &FrequencySlice{tensor.New(tensor.WithShape(sh...), tensor.WithBacking(out))}
}

//HalfSpace reports whether the slice spans only the Hermitian half of
//the transform. Slices built here always span the full plane.
func (F *FrequencySlice) HalfSpace() bool { return false }
