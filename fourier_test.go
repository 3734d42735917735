/*
 * fourier_test.go, part of gocryo.
 *
 *
 * Copyright 2023 Raul Mera rauldotmeraatusachdotcl
 *
 *
 * This program, including its test files, is free software; you can
 * redistribute it and/or modify it under the terms of the GNU Lesser
 * General Public License as published by the Free Software Foundation;
 * either version 2.1 of the License, or (at your option) any later
 * version.
 *
 * This program is distributed in the hope that it will be useful, but
 * WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public
 * License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package cryo

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"

	"gorgonia.org/tensor"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func capprox(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) <= tol
}

func fdata(Te *testing.T, t *tensor.Dense) []float64 {
	d, ok := t.Data().([]float64)
	if !ok {
		Te.Fatalf("expected a float64 tensor, got %v", t.Dtype())
	}
	return d
}

func cdata(Te *testing.T, t *tensor.Dense) []complex128 {
	d, ok := t.Data().([]complex128)
	if !ok {
		Te.Fatalf("expected a complex128 tensor, got %v", t.Dtype())
	}
	return d
}

func TestFFTShift(Te *testing.T) {
	even := tensor.New(tensor.WithShape(4), tensor.WithBacking([]float64{0, 1, 2, 3}))
	s, err := FFTShift(even)
	if err != nil {
		Te.Fatal(err)
	}
	got := fdata(Te, s)
	want := []float64{2, 3, 0, 1}
	for i, w := range want {
		if got[i] != w {
			Te.Errorf("even-length shift: got %v, want %v", got, want)
			break
		}
	}
	odd := tensor.New(tensor.WithShape(5), tensor.WithBacking([]float64{0, 1, 2, 3, 4}))
	s, err = FFTShift(odd)
	if err != nil {
		Te.Fatal(err)
	}
	got = fdata(Te, s)
	want = []float64{3, 4, 0, 1, 2}
	for i, w := range want {
		if got[i] != w {
			Te.Errorf("odd-length shift: got %v, want %v", got, want)
			break
		}
	}
	back, err := IFFTShift(s)
	if err != nil {
		Te.Fatal(err)
	}
	got = fdata(Te, back)
	for i := 0; i < 5; i++ {
		if got[i] != float64(i) {
			Te.Errorf("inverse shift did not undo the shift: %v", got)
			break
		}
	}
	fmt.Println("shifted and unshifted:", got)
}

func TestFFTShiftVolume(Te *testing.T) {
	data := make([]float64, 3*4*5)
	for i := range data {
		data[i] = float64(i)
	}
	v := tensor.New(tensor.WithShape(3, 4, 5), tensor.WithBacking(data))
	s, err := FFTShift(v)
	if err != nil {
		Te.Fatal(err)
	}
	back, err := IFFTShift(s)
	if err != nil {
		Te.Fatal(err)
	}
	got := fdata(Te, back)
	for i := range data {
		if got[i] != data[i] {
			Te.Errorf("3D shift round trip broken at %d: got %v, want %v", i, got[i], data[i])
			break
		}
	}
}

func TestFFTNKnown(Te *testing.T) {
	//a delta at the origin transforms to a constant spectrum
	delta := tensor.New(tensor.WithShape(8), tensor.WithBacking([]complex128{1, 0, 0, 0, 0, 0, 0, 0}))
	ft, err := FFTN(delta)
	if err != nil {
		Te.Fatal(err)
	}
	sp := cdata(Te, ft)
	for i, v := range sp {
		if !capprox(v, 1, 1e-12) {
			Te.Errorf("delta spectrum should be flat, got %v at %d", v, i)
		}
	}
	//and the constant transforms back to the delta
	back, err := IFFTN(ft)
	if err != nil {
		Te.Fatal(err)
	}
	b := cdata(Te, back)
	if !capprox(b[0], 1, 1e-12) {
		Te.Errorf("inverse transform lost the delta: %v", b[0])
	}
	for i := 1; i < 8; i++ {
		if !capprox(b[i], 0, 1e-12) {
			Te.Errorf("inverse transform leaked into bin %d: %v", i, b[i])
		}
	}
}

func TestFFTNDC(Te *testing.T) {
	data := make([]complex128, 4*4*4)
	sum := complex(0, 0)
	for i := range data {
		data[i] = complex(float64(i%7)+0.5, 0)
		sum += data[i]
	}
	v := tensor.New(tensor.WithShape(4, 4, 4), tensor.WithBacking(data))
	ft, err := FFTN(v)
	if err != nil {
		Te.Fatal(err)
	}
	dc := cdata(Te, ft)[0]
	if !capprox(dc, sum, 1e-9) {
		Te.Errorf("the zero-frequency bin should hold the sum: got %v, want %v", dc, sum)
	}
	fmt.Println("DC component:", dc)
}

func TestFourierRoundTrip(Te *testing.T) {
	data := make([]float64, 4*4*4)
	for i := range data {
		data[i] = math.Sin(float64(i)) + 0.25*float64(i%5)
	}
	v := tensor.New(tensor.WithShape(4, 4, 4), tensor.WithBacking(data))
	ft, err := FFT(v)
	if err != nil {
		Te.Fatal(err)
	}
	back, err := IFFTReal(ft)
	if err != nil {
		Te.Fatal(err)
	}
	got := fdata(Te, back)
	for i := range data {
		if !approx(got[i], data[i], 1e-10) {
			Te.Errorf("round trip broken at %d: got %v, want %v", i, got[i], data[i])
			break
		}
	}
	fmt.Println("Fourier round trip within 1e-10")
}

func TestCenteredDelta(Te *testing.T) {
	//with the centered convention, a delta at the geometric center
	//transforms to a flat spectrum
	n := 4
	data := make([]float64, n)
	data[n/2] = 1
	v := tensor.New(tensor.WithShape(n), tensor.WithBacking(data))
	ft, err := FFT(v)
	if err != nil {
		Te.Fatal(err)
	}
	sp := cdata(Te, ft)
	for i, c := range sp {
		if !capprox(c, 1, 1e-12) {
			Te.Errorf("centered delta should give a flat spectrum, got %v at %d", c, i)
		}
	}
}

func TestFFTErrors(Te *testing.T) {
	_, err := FFTN(nil)
	if err == nil {
		Te.Error("a nil tensor should not transform")
	}
	ints := tensor.New(tensor.WithShape(2), tensor.WithBacking([]int{1, 2}))
	_, err = FFTShift(ints)
	if err == nil {
		Te.Error("an int tensor should not shift")
	}
	fmt.Println("expected failure:", err)
}
