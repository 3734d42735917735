/*
 * fourier.go, part of gocryo.
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
	"gonum.org/v1/gonum/dsp/fourier"
	"gorgonia.org/tensor"
)

//FFTN returns the discrete Fourier transform of t over every axis,
//with the zero frequency at the first entry of each axis and no
//normalization. Real input is promoted to complex first.
func FFTN(t *tensor.Dense) (*tensor.Dense, error) {
	data, shape, err := complexCopy(t, "FFTN")
	if err != nil {
		return nil, err
	}
	plans := make(map[int]*fourier.CmplxFFT)
	for ax := range shape {
		transformAxis(data, shape, ax, false, plans)
	}
	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(data)), nil
}

//IFFTN returns the inverse discrete Fourier transform of t over every
//axis, normalized by the total number of entries.
func IFFTN(t *tensor.Dense) (*tensor.Dense, error) {
	data, shape, err := complexCopy(t, "IFFTN")
	if err != nil {
		return nil, err
	}
	plans := make(map[int]*fourier.CmplxFFT)
	for ax := range shape {
		transformAxis(data, shape, ax, true, plans)
	}
	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(data)), nil
}

//FFT returns the Fourier transform of data whose origin sits at the
//center of the array. The result keeps the zero frequency in the
//corner, ready for corner-origin filters.
func FFT(t *tensor.Dense) (*tensor.Dense, error) {
	s, err := IFFTShift(t)
	if err != nil {
		return nil, errDecorate(err, "FFT")
	}
	r, err := FFTN(s)
	if err != nil {
		return nil, errDecorate(err, "FFT")
	}
	return r, nil
}

//IFFT returns the inverse Fourier transform of a corner-origin
//spectrum, with the origin of the result moved back to the center of
//the array.
func IFFT(t *tensor.Dense) (*tensor.Dense, error) {
	r, err := IFFTN(t)
	if err != nil {
		return nil, errDecorate(err, "IFFT")
	}
	s, err := FFTShift(r)
	if err != nil {
		return nil, errDecorate(err, "IFFT")
	}
	return s, nil
}

//IFFTReal behaves as IFFT but returns only the real part, for spectra
//known to come from real data.
func IFFTReal(t *tensor.Dense) (*tensor.Dense, error) {
	c, err := IFFT(t)
	if err != nil {
		return nil, errDecorate(err, "IFFTReal")
	}
	data := c.Data().([]complex128)
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = real(v)
	}
	return tensor.New(tensor.WithShape(c.Shape()...), tensor.WithBacking(out)), nil
}

//FFTShift rolls every axis by half its length, moving the zero
//frequency from the corner to the center.
func FFTShift(t *tensor.Dense) (*tensor.Dense, error) {
	return shiftAxes(t, false, "FFTShift")
}

//IFFTShift undoes FFTShift, moving the center of the array back to the
//corner. For even lengths the two are the same roll.
func IFFTShift(t *tensor.Dense) (*tensor.Dense, error) {
	return shiftAxes(t, true, "IFFTShift")
}

func shiftAxes(t *tensor.Dense, inverse bool, caller string) (*tensor.Dense, error) {
	if t == nil {
		return nil, CError{NilTensor, []string{caller}}
	}
	shape := cloneInts(t.Shape())
	shifts := make([]int, len(shape))
	for i, n := range shape {
		if inverse {
			shifts[i] = (n - n/2) % n
		} else {
			shifts[i] = n / 2
		}
	}
	switch data := t.Data().(type) {
	case []float64:
		out := make([]float64, len(data))
		rollInto(shape, shifts, func(dst, src int) { out[dst] = data[src] })
		return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(out)), nil
	case []complex128:
		out := make([]complex128, len(data))
		rollInto(shape, shifts, func(dst, src int) { out[dst] = data[src] })
		return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(out)), nil
	default:
		return nil, CError{NonNumericalTensor, []string{caller}}
	}
}

//rollInto calls set once per entry, with the destination offset of the
//rolled array and the source offset it takes its value from. Rolling by
//k sends entry i to i+k, modulo the axis length.
func rollInto(shape, shifts []int, set func(dst, src int)) {
	str := rowMajorStrides(shape)
	total := 1
	for _, s := range shape {
		total *= s
	}
	idx := make([]int, len(shape))
	for o := 0; o < total; o++ {
		src := 0
		for ax, v := range idx {
			n := shape[ax]
			src += ((v-shifts[ax])%n + n) % n * str[ax]
		}
		set(o, src)
		odometer(idx, shape)
	}
}

//transformAxis runs a forward or inverse FFT along one axis of a
//row-major array, in place. The inverse divides by the axis length, so
//running it over every axis leaves the usual 1/N normalization.
func transformAxis(data []complex128, shape []int, ax int, inverse bool, plans map[int]*fourier.CmplxFFT) {
	n := shape[ax]
	plan, ok := plans[n]
	if !ok {
		plan = fourier.NewCmplxFFT(n)
		plans[n] = plan
	}
	str := rowMajorStrides(shape)
	step := str[ax]
	red := cloneInts(shape)
	red[ax] = 1
	lines := 1
	for _, s := range red {
		lines *= s
	}
	idx := make([]int, len(shape))
	line := make([]complex128, n)
	for l := 0; l < lines; l++ {
		base := 0
		for i, v := range idx {
			base += v * str[i]
		}
		for i := 0; i < n; i++ {
			line[i] = data[base+i*step]
		}
		if inverse {
			plan.Sequence(line, line)
			for i := range line {
				line[i] /= complex(float64(n), 0)
			}
		} else {
			plan.Coefficients(line, line)
		}
		for i := 0; i < n; i++ {
			data[base+i*step] = line[i]
		}
		odometer(idx, red)
	}
}

//complexCopy returns a fresh complex128 copy of the data in t.
func complexCopy(t *tensor.Dense, caller string) ([]complex128, []int, error) {
	if t == nil {
		return nil, nil, CError{NilTensor, []string{caller}}
	}
	shape := cloneInts(t.Shape())
	switch data := t.Data().(type) {
	case []complex128:
		out := make([]complex128, len(data))
		copy(out, data)
		return out, shape, nil
	case []float64:
		out := make([]complex128, len(data))
		for i, v := range data {
			out[i] = complex(v, 0)
		}
		return out, shape, nil
	default:
		return nil, nil, CError{NonNumericalTensor, []string{caller}}
	}
}

//fftFreq returns the frequency, in cycles per sample, of index i on an
//axis of length n of a corner-origin spectrum.
func fftFreq(i, n int) float64 {
	f := i
	if i >= (n+1)/2 {
		f -= n
	}
	return float64(f) / float64(n)
}
