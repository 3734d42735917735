/*
 * shapes.go, part of gocryo.
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
	"fmt"

	"gorgonia.org/tensor"
)

//PadMode selects how entries outside the original data are produced
//when padding.
type PadMode string

const (
	//PadConstant fills new entries with a constant value.
	PadConstant PadMode = "constant"
	//PadEdge repeats the nearest edge entry.
	PadEdge PadMode = "edge"
	//PadWrap wraps around, so the data becomes periodic.
	PadWrap PadMode = "wrap"
)

//PadToShape returns a new tensor with the given shape where the input
//sits centered, the extra entries produced according to the padding
//mode in the options. When the extra room on an axis is odd, the extra
//entry goes to the high side. The target shape cannot be smaller than
//the input on any axis.
func PadToShape(t *tensor.Dense, shape []int, options ...*Options) (*tensor.Dense, error) {
	opt := pickOptions(options)
	if t == nil {
		return nil, CError{NilTensor, []string{"PadToShape"}}
	}
	cur := t.Shape()
	if len(shape) != len(cur) {
		return nil, CError{fmt.Sprintf("target shape must have %d axes, not %d", len(cur), len(shape)), []string{"PadToShape"}}
	}
	left := make([]int, len(cur))
	for i, s := range shape {
		if s < cur[i] {
			return nil, CError{fmt.Sprintf("target axis %d is smaller than the input (%d < %d)", i, s, cur[i]), []string{"PadToShape"}}
		}
		left[i] = (s - cur[i]) / 2
	}
	srcStr := rowMajorStrides(cur)
	total := 1
	for _, s := range shape {
		total *= s
	}
	idx := make([]int, len(shape))
	switch data := t.Data().(type) {
	case []float64:
		dst := make([]float64, total)
		for o := 0; o < total; o++ {
			src, in := padSource(idx, left, cur, srcStr, opt.padMode)
			if in {
				dst[o] = data[src]
			} else {
				dst[o] = opt.padValue
			}
			odometer(idx, shape)
		}
		return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(dst)), nil
	case []complex128:
		dst := make([]complex128, total)
		for o := 0; o < total; o++ {
			src, in := padSource(idx, left, cur, srcStr, opt.padMode)
			if in {
				dst[o] = data[src]
			} else {
				dst[o] = complex(opt.padValue, 0)
			}
			odometer(idx, shape)
		}
		return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(dst)), nil
	default:
		return nil, CError{NonNumericalTensor, []string{"PadToShape"}}
	}
}

//padSource maps one output multi-index to a flat offset in the source
//data. The boolean is false only in the constant mode, when the index
//falls outside the source.
func padSource(idx, left, cur, strides []int, mode PadMode) (int, bool) {
	src := 0
	for ax, v := range idx {
		s := v - left[ax]
		n := cur[ax]
		if s < 0 || s >= n {
			switch mode {
			case PadEdge:
				if s < 0 {
					s = 0
				} else {
					s = n - 1
				}
			case PadWrap:
				s = ((s % n) + n) % n
			default:
				return 0, false
			}
		}
		src += s * strides[ax]
	}
	return src, true
}

//CropToShape returns a new tensor with the given shape holding the
//centered block of the input. When the trimmed amount on an axis is
//odd, the extra entry comes off the high side. The target shape must be
//positive and cannot exceed the input on any axis.
func CropToShape(t *tensor.Dense, shape []int) (*tensor.Dense, error) {
	if t == nil {
		return nil, CError{NilTensor, []string{"CropToShape"}}
	}
	cur := t.Shape()
	if len(shape) != len(cur) {
		return nil, CError{fmt.Sprintf("target shape must have %d axes, not %d", len(cur), len(shape)), []string{"CropToShape"}}
	}
	start := make([]int, len(cur))
	for i, s := range shape {
		if s < 1 || s > cur[i] {
			return nil, CError{fmt.Sprintf("target axis %d must be between 1 and %d, not %d", i, cur[i], s), []string{"CropToShape"}}
		}
		start[i] = (cur[i] - s) / 2
	}
	srcStr := rowMajorStrides(cur)
	total := 1
	for _, s := range shape {
		total *= s
	}
	idx := make([]int, len(shape))
	src := func() int {
		r := 0
		for ax, v := range idx {
			r += (v + start[ax]) * srcStr[ax]
		}
		return r
	}
	switch data := t.Data().(type) {
	case []float64:
		dst := make([]float64, total)
		for o := 0; o < total; o++ {
			dst[o] = data[src()]
			odometer(idx, shape)
		}
		return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(dst)), nil
	case []complex128:
		dst := make([]complex128, total)
		for o := 0; o < total; o++ {
			dst[o] = data[src()]
			odometer(idx, shape)
		}
		return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(dst)), nil
	default:
		return nil, CError{NonNumericalTensor, []string{"CropToShape"}}
	}
}

//SwapAxes01 returns a new tensor with the first two axes exchanged, so
//out[i,j,...] equals in[j,i,...]. The input needs at least two axes.
func SwapAxes01(t *tensor.Dense) (*tensor.Dense, error) {
	if t == nil {
		return nil, CError{NilTensor, []string{"SwapAxes01"}}
	}
	cur := t.Shape()
	if len(cur) < 2 {
		return nil, CError{fmt.Sprintf("need at least 2 axes to swap, got %d", len(cur)), []string{"SwapAxes01"}}
	}
	shape := cloneInts(cur)
	shape[0], shape[1] = shape[1], shape[0]
	dstStr := rowMajorStrides(shape)
	dstStr[0], dstStr[1] = dstStr[1], dstStr[0]
	total := 1
	for _, s := range cur {
		total *= s
	}
	idx := make([]int, len(cur))
	dst := func() int {
		r := 0
		for ax, v := range idx {
			r += v * dstStr[ax]
		}
		return r
	}
	switch data := t.Data().(type) {
	case []float64:
		out := make([]float64, total)
		for o := 0; o < total; o++ {
			out[dst()] = data[o]
			odometer(idx, cur)
		}
		return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(out)), nil
	case []complex128:
		out := make([]complex128, total)
		for o := 0; o < total; o++ {
			out[dst()] = data[o]
			odometer(idx, cur)
		}
		return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(out)), nil
	default:
		return nil, CError{NonNumericalTensor, []string{"SwapAxes01"}}
	}
}

//odometer advances a row-major multi-index by one step within shape.
func odometer(idx, shape []int) {
	for ax := len(idx) - 1; ax >= 0; ax-- {
		idx[ax]++
		if idx[ax] < shape[ax] {
			return
		}
		idx[ax] = 0
	}
}

func rowMajorStrides(shape []int) []int {
	str := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		str[i] = acc
		acc *= shape[i]
	}
	return str
}

func cloneInts(s []int) []int {
	r := make([]int, len(s))
	copy(r, s)
	return r
}

//asFloats returns the backing of a float64 tensor.
func asFloats(t *tensor.Dense, caller string) ([]float64, error) {
	if t == nil {
		return nil, CError{NilTensor, []string{caller}}
	}
	data, ok := t.Data().([]float64)
	if !ok {
		return nil, CError{RealTensorNeeded, []string{caller}}
	}
	return data, nil
}

//asComplexes returns the backing of a complex128 tensor.
func asComplexes(t *tensor.Dense, caller string) ([]complex128, error) {
	if t == nil {
		return nil, CError{NilTensor, []string{caller}}
	}
	data, ok := t.Data().([]complex128)
	if !ok {
		return nil, CError{ComplexNeeded, []string{caller}}
	}
	return data, nil
}

//toFloat64 casts any numerical tensor to a fresh float64 one. Complex
//input keeps only the real part.
func toFloat64(t *tensor.Dense, caller string) (*tensor.Dense, error) {
	if t == nil {
		return nil, CError{NilTensor, []string{caller}}
	}
	shape := cloneInts(t.Shape())
	var out []float64
	switch data := t.Data().(type) {
	case []float64:
		out = make([]float64, len(data))
		copy(out, data)
	case []float32:
		out = make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
	case []complex128:
		out = make([]float64, len(data))
		for i, v := range data {
			out[i] = real(v)
		}
	case []int:
		out = make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
	case []int32:
		out = make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
	case []int64:
		out = make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
	default:
		return nil, CError{NonNumericalTensor, []string{caller}}
	}
	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(out)), nil
}
