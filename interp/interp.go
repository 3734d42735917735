/*
 * interp.go, part of gocryo.
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
	"math"

	"gorgonia.org/tensor"
)

//Mode selects what gathers do with indexes that fall outside the array.
type Mode string

const (
	//Fill makes any gather with an out-of-range index return the fill value.
	Fill Mode = "fill"
	//Clip clamps out-of-range indexes to the nearest valid one.
	Clip Mode = "clip"
	//Wrap treats every axis as periodic.
	Wrap Mode = "wrap"
)

//Options contains the optional settings for the interpolation functions.
type Options struct {
	mode Mode
	fill float64
}

//DefaultOptions returns the default settings: gathers outside the array
//return zero.
func DefaultOptions() *Options {
	r := new(Options)
	r.mode = Fill
	r.fill = 0
	return r
}

//Mode returns the current out-of-range handling and sets it,
//if a valid value is given.
func (O *Options) Mode(mode ...Mode) Mode {
	ret := O.mode
	if len(mode) > 0 {
		switch mode[0] {
		case Fill, Clip, Wrap:
			O.mode = mode[0]
		}
	}
	return ret
}

//FillValue returns the value gathered outside the array in the Fill mode
//and sets it, if given. For complex volumes the value is taken as purely
//real.
func (O *Options) FillValue(fill ...float64) float64 {
	ret := O.fill
	if len(fill) > 0 {
		O.fill = fill[0]
	}
	return ret
}

//MapCoordinates evaluates input at a set of fractional indexes, with
//nearest-neighbor (order 0), multilinear (order 1) or cubic-spline
//(order 3) interpolation. coordinates carries one float64 tensor per
//input axis, all with a common shape; the result has that shape and the
//element type of input. Integer inputs are evaluated in float64 and
//rounded half away from zero at the end. Whole-integer coordinates
//reproduce the corresponding samples (except for the 3-sample spline
//case, where the middle node is only approximate).
func MapCoordinates(input *tensor.Dense, coordinates []*tensor.Dense, order int, options ...*Options) (*tensor.Dense, error) {
	var o *Options
	if len(options) > 0 {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if input == nil {
		return nil, Error{NilInput, []string{"MapCoordinates"}, true}
	}
	ndim := len(input.Shape())
	if ndim == 0 {
		return nil, Error{ScalarInput, []string{"MapCoordinates"}, true}
	}
	//the coordinate count is checked before the order, so a caller that got
	//both wrong hears about the coordinates first.
	if len(coordinates) != ndim {
		return nil, Error{fmt.Sprintf("coordinates must have one array per input axis, but %d != %d", len(coordinates), ndim), []string{"MapCoordinates"}, true}
	}
	if order != 0 && order != 1 && order != 3 {
		return nil, Error{UnsupportedOrder, []string{"MapCoordinates"}, true}
	}
	pts, qshape, err := flattenCoordinates(coordinates)
	if err != nil {
		return nil, errDecorate(err, "MapCoordinates")
	}
	vals, dt, err := asComplex(input)
	if err != nil {
		return nil, errDecorate(err, "MapCoordinates")
	}
	shape := cloneInts(input.Shape())
	if order == 3 {
		vals, shape, err = solveCoefficients(vals, shape, dt != tensor.Complex128)
		if err != nil {
			return nil, errDecorate(err, "MapCoordinates")
		}
	}
	vol := &volume{data: vals, shape: shape, strides: rowMajorStrides(shape), mode: o.mode, fill: complex(o.fill, 0)}
	return fromComplex(vol.gather(pts, order), dt, qshape), nil
}

//a dense row-major view over the samples (or, for the cubic path, over
//the padded spline coefficients) with the out-of-range policy baked in.
type volume struct {
	data    []complex128
	shape   []int
	strides []int
	mode    Mode
	fill    complex128
}

func (v *volume) at(idx []int) complex128 {
	off := 0
	for ax, i := range idx {
		n := v.shape[ax]
		switch v.mode {
		case Clip:
			if i < 0 {
				i = 0
			} else if i >= n {
				i = n - 1
			}
		case Wrap:
			i = i % n
			if i < 0 {
				i += n
			}
		default:
			if i < 0 || i >= n {
				return v.fill
			}
		}
		off += i * v.strides[ax]
	}
	return v.data[off]
}

//gather evaluates every query point. pts holds one flattened coordinate
//slice per axis, all of the same length.
func (v *volume) gather(pts [][]float64, order int) []complex128 {
	ndim := len(v.shape)
	out := make([]complex128, len(pts[0]))
	t := make([]taps, ndim)
	counters := make([]int, ndim)
	idx := make([]int, ndim)
	for p := range out {
		for ax := 0; ax < ndim; ax++ {
			t[ax] = tapsFor(pts[ax][p], order)
		}
		out[p] = v.sample(t, counters, idx)
	}
	return out
}

//sample accumulates the tensor-product stencil for one point: up to 4
//taps per axis, every combination visited once.
func (v *volume) sample(t []taps, counters, idx []int) complex128 {
	for ax := range counters {
		counters[ax] = 0
	}
	var sum complex128
	for {
		w := 1.0
		for ax := range t {
			k := counters[ax]
			w *= t[ax].w[k]
			idx[ax] = t[ax].idx[k]
		}
		sum += scale(w, v.at(idx))
		ax := len(t) - 1
		for ax >= 0 {
			counters[ax]++
			if counters[ax] < t[ax].n {
				break
			}
			counters[ax] = 0
			ax--
		}
		if ax < 0 {
			break
		}
	}
	return sum
}

//the 1D stencil of one coordinate along one axis.
type taps struct {
	idx [4]int
	w   [4]float64
	n   int
}

func tapsFor(x float64, order int) taps {
	switch order {
	case 0:
		//math.Round rounds halves away from zero
		return taps{idx: [4]int{int(math.Round(x))}, w: [4]float64{1}, n: 1}
	case 1:
		lo := math.Floor(x)
		f := x - lo
		i := int(lo)
		return taps{idx: [4]int{i, i + 1}, w: [4]float64{1 - f, f}, n: 2}
	default:
		//cubic: four taps into the padded coefficient array, basis argument
		//shifted by the one-entry pad.
		lo := int(math.Floor(x))
		var tp taps
		tp.n = 4
		for k := 0; k < 4; k++ {
			i := lo + k
			tp.idx[k] = i
			tp.w[k] = splineBasis(x - float64(i) + 1)
		}
		return tp
	}
}

//the unnormalized cubic B-spline basis; the missing 1/6 lives in the
//coefficient equations instead.
func splineBasis(t float64) float64 {
	at := math.Abs(t)
	if at >= 1 {
		if at <= 2 {
			d := 2 - at
			return d * d * d
		}
		return 0
	}
	return 4 - 6*at*at + 3*at*at*at
}

//scale multiplies a complex value by a real weight without a full
//complex product.
func scale(w float64, v complex128) complex128 {
	return complex(w*real(v), w*imag(v))
}

//flattenCoordinates checks that all coordinate tensors are float64 with
//one common shape and returns their backings plus that shape.
func flattenCoordinates(coordinates []*tensor.Dense) ([][]float64, []int, error) {
	pts := make([][]float64, len(coordinates))
	var qshape tensor.Shape
	for i, c := range coordinates {
		if c == nil {
			return nil, nil, Error{BadCoordinates, []string{"flattenCoordinates"}, true}
		}
		if qshape == nil {
			qshape = c.Shape()
		} else if !sameShape(qshape, c.Shape()) {
			return nil, nil, Error{BadCoordinates, []string{"flattenCoordinates"}, true}
		}
		d, ok := c.Data().([]float64)
		if !ok {
			return nil, nil, Error{BadCoordinates, []string{"flattenCoordinates"}, true}
		}
		pts[i] = d
	}
	return pts, cloneInts(qshape), nil
}

func sameShape(a, b tensor.Shape) bool {
	if len(a) != len(b) {
		return false
	}
	for i, v := range a {
		if v != b[i] {
			return false
		}
	}
	return true
}

//asComplex flattens the contents of t to complex numbers, keeping note
//of the original element type for the trip back.
func asComplex(t *tensor.Dense) ([]complex128, tensor.Dtype, error) {
	var out []complex128
	switch d := t.Data().(type) {
	case []float64:
		out = make([]complex128, len(d))
		for i, v := range d {
			out[i] = complex(v, 0)
		}
	case []complex128:
		out = make([]complex128, len(d))
		copy(out, d)
	case []int:
		out = make([]complex128, len(d))
		for i, v := range d {
			out[i] = complex(float64(v), 0)
		}
	case []int32:
		out = make([]complex128, len(d))
		for i, v := range d {
			out[i] = complex(float64(v), 0)
		}
	case []int64:
		out = make([]complex128, len(d))
		for i, v := range d {
			out[i] = complex(float64(v), 0)
		}
	default:
		return nil, tensor.Dtype{}, Error{UnsupportedDtype, []string{"asComplex"}, true}
	}
	return out, t.Dtype(), nil
}

//fromComplex builds a tensor of the given shape from vals, cast back to
//the element type dt. Integer results are rounded half away from zero.
func fromComplex(vals []complex128, dt tensor.Dtype, shape []int) *tensor.Dense {
	switch dt {
	case tensor.Complex128:
		out := make([]complex128, len(vals))
		copy(out, vals)
		return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(out))
	case tensor.Int:
		out := make([]int, len(vals))
		for i, v := range vals {
			out[i] = int(math.Round(real(v)))
		}
		return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(out))
	case tensor.Int32:
		out := make([]int32, len(vals))
		for i, v := range vals {
			out[i] = int32(math.Round(real(v)))
		}
		return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(out))
	case tensor.Int64:
		out := make([]int64, len(vals))
		for i, v := range vals {
			out[i] = int64(math.Round(real(v)))
		}
		return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(out))
	default:
		out := make([]float64, len(vals))
		for i, v := range vals {
			out[i] = real(v)
		}
		return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(out))
	}
}

func cloneInts(s []int) []int {
	r := make([]int, len(s))
	copy(r, s)
	return r
}

func rowMajorStrides(shape []int) []int {
	r := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		r[i] = acc
		acc *= shape[i]
	}
	return r
}

//Errors

//Error is the error type for this package. It implements cryo.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

//Decorate adds the dec string to the decoration slice of strings of the
//error, and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

//the same as cryo.Error but avoids a circular import.
type errorInt interface {
	Error() string
	Critical() bool
	Decorate(string) []string
}

//errDecorate asserts that err implements errorInt and adds the caller's
//name to its decoration before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(errorInt)
	err2.Decorate(caller)
	return err2
}

const (
	NilInput         = "nil input tensor"
	NilCoefficients  = "nil spline coefficients tensor"
	ScalarInput      = "input must have at least one axis"
	UnsupportedOrder = "interpolation requires order = 0, 1, or 3"
	BadCoordinates   = "coordinate arrays must have float64 elements and a common shape"
	UnsupportedDtype = "elements must be float64, complex128, int, int32 or int64"
	SingularSpline   = "could not solve for the spline coefficients"
)
