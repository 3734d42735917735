/*
 * spline.go, part of gocryo.
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

package interp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

//SplineCoefficients solves the cubic-spline systems for the samples in
//input, one axis at a time starting from the last one, and returns the
//coefficient tensor, two entries longer along every axis. Every axis
//needs at least 3 samples. For integer inputs the coefficients come back
//as float64; complex inputs give complex coefficients.
func SplineCoefficients(input *tensor.Dense) (*tensor.Dense, error) {
	if input == nil {
		return nil, Error{NilInput, []string{"SplineCoefficients"}, true}
	}
	if len(input.Shape()) == 0 {
		return nil, Error{ScalarInput, []string{"SplineCoefficients"}, true}
	}
	vals, dt, err := asComplex(input)
	if err != nil {
		return nil, errDecorate(err, "SplineCoefficients")
	}
	vals, shape, err := solveCoefficients(vals, cloneInts(input.Shape()), dt != tensor.Complex128)
	if err != nil {
		return nil, errDecorate(err, "SplineCoefficients")
	}
	if dt != tensor.Complex128 {
		dt = tensor.Float64
	}
	return fromComplex(vals, dt, shape), nil
}

//MapCoordinatesWithSpline is the evaluation half of cubic MapCoordinates,
//for callers that keep precomputed coefficients around. coordinates are
//given in the frame of the original samples; gathers run over the padded
//coefficient array, so the boundary modes see its two extra entries per
//axis.
func MapCoordinatesWithSpline(coefficients *tensor.Dense, coordinates []*tensor.Dense, options ...*Options) (*tensor.Dense, error) {
	var o *Options
	if len(options) > 0 {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if coefficients == nil {
		return nil, Error{NilCoefficients, []string{"MapCoordinatesWithSpline"}, true}
	}
	ndim := len(coefficients.Shape())
	if ndim == 0 {
		return nil, Error{ScalarInput, []string{"MapCoordinatesWithSpline"}, true}
	}
	if len(coordinates) != ndim {
		return nil, Error{fmt.Sprintf("coordinates must have one array per coefficient axis, but %d != %d", len(coordinates), ndim), []string{"MapCoordinatesWithSpline"}, true}
	}
	pts, qshape, err := flattenCoordinates(coordinates)
	if err != nil {
		return nil, errDecorate(err, "MapCoordinatesWithSpline")
	}
	vals, dt, err := asComplex(coefficients)
	if err != nil {
		return nil, errDecorate(err, "MapCoordinatesWithSpline")
	}
	shape := cloneInts(coefficients.Shape())
	vol := &volume{data: vals, shape: shape, strides: rowMajorStrides(shape), mode: o.mode, fill: complex(o.fill, 0)}
	return fromComplex(vol.gather(pts, 3), dt, qshape), nil
}

//solveCoefficients runs the per-axis solves, last axis first. Each pass
//grows the solved axis by two entries, so later passes already see the
//earlier ones padded.
func solveCoefficients(vals []complex128, shape []int, isReal bool) ([]complex128, []int, error) {
	for ax, n := range shape {
		if n < 3 {
			return nil, nil, Error{fmt.Sprintf("axis %d has %d samples, the spline solve needs at least 3", ax, n), []string{"solveCoefficients"}, true}
		}
	}
	var err error
	for ax := len(shape) - 1; ax >= 0; ax-- {
		vals, shape, err = splineAxis(vals, shape, ax, isReal)
		if err != nil {
			return nil, nil, errDecorate(err, "solveCoefficients")
		}
	}
	return vals, shape, nil
}

//splineAxis solves every 1D line along axis ax. The interior coefficients
//come from one tridiagonal system (diagonal 4, off-diagonals 1, one column
//per line; complex data contributes a second block of columns for the
//imaginary parts), and the four outer coefficients from the closure
//c2 = s[0]/6, c1 = 2*c2 - cs[0] and its mirror. The line ends up two
//entries longer. With exactly 3 samples the two boundary writes to the
//single interior row collide and the second one wins, which leaves the
//middle node only approximately interpolated; that quirk is part of the
//contract.
func splineAxis(vals []complex128, shape []int, ax int, isReal bool) ([]complex128, []int, error) {
	n := shape[ax]
	size := n - 2
	total := 1
	for _, s := range shape {
		total *= s
	}
	m := total / n
	strides := rowMajorStrides(shape)
	outShape := cloneInts(shape)
	outShape[ax] = n + 2
	outStrides := rowMajorStrides(outShape)

	//base offsets of every line, in the input and output layouts
	inBase := make([]int, 0, m)
	outBase := make([]int, 0, m)
	counters := make([]int, len(shape))
	for {
		in0, out0 := 0, 0
		for a, c := range counters {
			in0 += c * strides[a]
			out0 += c * outStrides[a]
		}
		inBase = append(inBase, in0)
		outBase = append(outBase, out0)
		a := len(shape) - 1
		for a >= 0 {
			if a == ax {
				a--
				continue
			}
			counters[a]++
			if counters[a] < shape[a] {
				break
			}
			counters[a] = 0
			a--
		}
		if a < 0 {
			break
		}
	}

	step := strides[ax]
	ostep := outStrides[ax]
	cols := m
	if !isReal {
		cols = 2 * m
	}
	b := mat.NewDense(size, cols, nil)
	c2s := make([]complex128, m)
	cn2s := make([]complex128, m)
	for li, base := range inBase {
		c2s[li] = scale(1.0/6.0, vals[base])
		cn2s[li] = scale(1.0/6.0, vals[base+(n-1)*step])
		for r := 0; r < size; r++ {
			v := vals[base+(r+1)*step]
			b.Set(r, li, real(v))
			if !isReal {
				b.Set(r, m+li, imag(v))
			}
		}
		//boundary rows, in this order: with size 1 the second write wins
		b.Set(0, li, real(vals[base+step])-real(c2s[li]))
		b.Set(size-1, li, real(vals[base+(n-2)*step])-real(cn2s[li]))
		if !isReal {
			b.Set(0, m+li, imag(vals[base+step])-imag(c2s[li]))
			b.Set(size-1, m+li, imag(vals[base+(n-2)*step])-imag(cn2s[li]))
		}
	}

	d := make([]float64, size)
	for i := range d {
		d[i] = 4
	}
	var dl, du []float64
	if size > 1 {
		dl = make([]float64, size-1)
		du = make([]float64, size-1)
		for i := range dl {
			dl[i] = 1
			du[i] = 1
		}
	}
	op := mat.NewTridiag(size, dl, d, du)
	var sol mat.Dense
	if err := op.SolveTo(&sol, false, b); err != nil {
		return nil, nil, Error{SingularSpline, []string{"splineAxis"}, true}
	}

	out := make([]complex128, m*(n+2))
	for li, ob := range outBase {
		at := func(r int) complex128 {
			if isReal {
				return complex(sol.At(r, li), 0)
			}
			return complex(sol.At(r, li), sol.At(r, m+li))
		}
		c2 := c2s[li]
		cn2 := cn2s[li]
		out[ob] = scale(2, c2) - at(0)
		out[ob+ostep] = c2
		for r := 0; r < size; r++ {
			out[ob+(r+2)*ostep] = at(r)
		}
		out[ob+(size+2)*ostep] = cn2
		out[ob+(size+3)*ostep] = scale(2, cn2) - at(size-1)
	}
	return out, outShape, nil
}
