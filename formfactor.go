/*
 * formfactor.go, part of gocryo.
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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//ScatteringFactors holds the 5-Gaussian fit of the electron scattering
//factor of one element: amplitudes A, in angstroms, and widths B, in
//square angstroms, from Peng et al., Acta Cryst. A52 (1996).
type ScatteringFactors struct {
	A [5]float64 `json:"a"`
	B [5]float64 `json:"b"`
}

//The elements that show up in biological specimens. Anything more
//exotic can be fed in through ReadFormFactors.
var electronFactors = map[int]ScatteringFactors{
	1:  {A: [5]float64{0.0349, 0.1201, 0.1970, 0.0573, 0.1195}, B: [5]float64{0.5347, 3.5867, 12.3471, 18.9525, 38.6269}},
	6:  {A: [5]float64{0.0893, 0.2563, 0.7570, 1.0487, 0.3575}, B: [5]float64{0.2465, 1.7100, 6.4094, 18.6113, 50.2523}},
	7:  {A: [5]float64{0.1022, 0.3219, 0.7982, 0.8197, 0.1715}, B: [5]float64{0.2451, 1.7481, 6.1925, 17.3894, 48.1431}},
	8:  {A: [5]float64{0.0974, 0.2921, 0.6910, 0.6990, 0.2039}, B: [5]float64{0.2067, 1.3815, 4.6943, 12.7105, 32.4726}},
	15: {A: [5]float64{0.2548, 0.6106, 1.4541, 2.3204, 0.8477}, B: [5]float64{0.2908, 1.8740, 8.5176, 24.3434, 63.2996}},
	16: {A: [5]float64{0.2497, 0.5628, 1.3899, 2.1865, 0.7715}, B: [5]float64{0.2681, 1.6711, 7.0267, 19.5377, 50.3888}},
	26: {A: [5]float64{0.3946, 1.2725, 1.7031, 2.3140, 1.4795}, B: [5]float64{0.2717, 2.0443, 7.6007, 29.9714, 86.2265}},
}

var symbolZ = map[string]int{
	"H":  1,
	"C":  6,
	"N":  7,
	"O":  8,
	"Na": 11,
	"Mg": 12,
	"P":  15,
	"S":  16,
	"Cl": 17,
	"K":  19,
	"Ca": 20,
	"Mn": 25,
	"Fe": 26,
	"Zn": 30,
	"Se": 34,
}

//AtomicNumber returns the atomic number for an element symbol. The
//symbol can come in any capitalization, as PDB files like to shout.
func AtomicNumber(symbol string) (int, error) {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return 0, CError{"empty element symbol", []string{"AtomicNumber"}}
	}
	s = strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	z, ok := symbolZ[s]
	if !ok {
		return 0, CError{fmt.Sprintf("unknown element symbol %q", symbol), []string{"AtomicNumber"}}
	}
	return z, nil
}

//FormFactors gathers the Gaussian amplitudes and widths for a set of
//atoms, one row of 5 per atom, ready for the rasterizer. An alternative
//table, e.g. one read with ReadFormFactors, replaces the built-in one.
//Elements missing from the table are an error.
func FormFactors(atomicNumbers []int, table ...map[int]ScatteringFactors) (*mat.Dense, *mat.Dense, error) {
	tab := electronFactors
	if len(table) > 0 && table[0] != nil {
		tab = table[0]
	}
	n := len(atomicNumbers)
	if n == 0 {
		return nil, nil, CError{"need at least one atom", []string{"FormFactors"}}
	}
	a := mat.NewDense(n, 5, nil)
	b := mat.NewDense(n, 5, nil)
	for i, z := range atomicNumbers {
		f, ok := tab[z]
		if !ok {
			return nil, nil, CError{fmt.Sprintf("no scattering factors for element %d", z), []string{"FormFactors"}}
		}
		for j := 0; j < 5; j++ {
			a.Set(i, j, f.A[j])
			b.Set(i, j, f.B[j])
		}
	}
	return a, b, nil
}

type factorEntry struct {
	Z int        `json:"z"`
	A [5]float64 `json:"a"`
	B [5]float64 `json:"b"`
}

//ReadFormFactors reads a scattering factor table from a JSON stream, an
//array of objects with fields z, a and b. It can hold only the elements
//that differ from the built-in table, or a whole replacement.
func ReadFormFactors(r io.Reader) (map[int]ScatteringFactors, error) {
	var entries []factorEntry
	dec := json.NewDecoder(r)
	if err := dec.Decode(&entries); err != nil {
		return nil, CError{fmt.Sprintf("scattering factor table: %v", err), []string{"ReadFormFactors"}}
	}
	table := make(map[int]ScatteringFactors, len(entries)+len(electronFactors))
	for z, f := range electronFactors {
		table[z] = f
	}
	for _, e := range entries {
		if e.Z < 1 {
			return nil, CError{fmt.Sprintf("scattering factor table: atomic number %d", e.Z), []string{"ReadFormFactors"}}
		}
		table[e.Z] = ScatteringFactors{A: e.A, B: e.B}
	}
	return table, nil
}
