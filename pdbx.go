/*
 * pdbx.go, part of gocryo.
 *
 *
 * Copyright 2024 Raul Mera rauldotmeraatusachdotcl
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
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/rmera/gocryo/coords"
)

var tl func(string) string = strings.ToLower

//PDBxRead reads the _atom_site loop of the first model in an mmCIF
//stream and returns the same triple as PDBRead: coordinates in
//angstroms, atomic numbers and B-factors, in file order. Atoms whose
//element cannot be determined are skipped with a note to the log.
func PDBxRead(r io.Reader) (*coords.List, []int, []float64, error) {
	buf := bufio.NewReader(r)
	list, numbers, bfactors, err := pdbxBufIORead(buf)
	return list, numbers, bfactors, errDecorate(err, "PDBxRead")
}

//PDBxFileRead reads an mmCIF file as PDBxRead does, decompressing it
//first when the name ends in .gz.
func PDBxFileRead(path string) (*coords.List, []int, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, CError{fmt.Sprintf("mmCIF: %v", err), []string{"PDBxFileRead"}}
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, nil, CError{fmt.Sprintf("mmCIF: %v", err), []string{"PDBxFileRead"}}
		}
		defer gz.Close()
		r = gz
	}
	return PDBxRead(r)
}

//pdbxNextLoop advances the reader past the next "loop_" line.
func pdbxNextLoop(r *bufio.Reader) (*bufio.Reader, string, error) {
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return r, line, err
		}
		if strings.HasPrefix(tl(line), "loop_") {
			return r, line, nil
		}
	}
}

type pdbxmap map[string]int

//add sets the index for s, if s is one of the pre-seeded keys. If not,
//it does nothing. Returns the map.
func (m pdbxmap) add(s string, i int) pdbxmap {
	s = strings.TrimSpace(s)
	s = strings.Replace(s, "\n", "", -1)
	if _, ok := m[s]; ok {
		m[s] = i
	}
	return m
}

//get returns the index recorded for s, or -1 if s is not a key in the
//map.
func (m pdbxmap) get(s string) int {
	if i, ok := m[s]; ok {
		return i
	}
	return -1
}

//newPdbxMap returns a fresh map of the _atom_site fields the
//rasterizer cares about. Each call gets its own copy so the indices of
//one file never leak into the next.
func newPdbxMap() pdbxmap {
	return pdbxmap{
		"_atom_site.type_symbol":        -1,
		"_atom_site.label_atom_id":      -1,
		"_atom_site.auth_atom_id":       -1,
		"_atom_site.cartn_x":            -1,
		"_atom_site.cartn_y":            -1,
		"_atom_site.cartn_z":            -1,
		"_atom_site.b_iso_or_equiv":     -1,
		"_atom_site.pdbx_pdb_model_num": -1,
	}
}

func pdbxBufIORead(pdbx *bufio.Reader) (*coords.List, []int, []float64, error) {
	m := newPdbxMap()
	positions := make([]float64, 0, 300)
	numbers := make([]int, 0, 100)
	bfactors := make([]float64, 0, 100)
	var reading bool
	field := 0
	natom := 0
	hp := strings.HasPrefix
	trimall := func(s string) string { return strings.TrimSpace(strings.Replace(s, "\n", "", -1)) }
	for {
		line, err := pdbx.ReadString('\n')
		if err != nil {
			break
		}
		if hp(line, "#") || hp(line, ";") || trimall(line) == "" {
			continue
		}
		if !reading && hp(tl(line), "_atom_site") {
			reading = true
			field = 0
		}
		if !reading {
			pdbx, line, err = pdbxNextLoop(pdbx)
			if err != nil {
				break
			}
			continue
		}
		if hp(line, "loop_") { //a new section starts
			reading = false
			continue
		}
		if hp(line, "_") {
			lt := tl(line)
			if !hp(lt, "_atom_site") || hp(lt, "_atom_site_anisotrop") { //a new section started
				reading = false
				continue
			}
			m.add(lt, field)
			field++
			continue
		}
		//here line holds the values for one atom
		data := strings.Fields(line)
		if k := m.get("_atom_site.pdbx_pdb_model_num"); k >= 0 && k < len(data) {
			//only the first model gets rasterized
			if model, err := strconv.Atoi(data[k]); err == nil && model > 1 {
				break
			}
		}
		natom++
		x, y, z, znum, bfac, err := readPDBxAtom(data, m, natom)
		if err != nil {
			return nil, nil, nil, err
		}
		if znum == 0 {
			continue
		}
		positions = append(positions, x, y, z)
		numbers = append(numbers, znum)
		bfactors = append(bfactors, bfac)
	}
	if len(numbers) == 0 {
		return nil, nil, nil, CError{"the mmCIF has no readable atoms", []string{"pdbxBufIORead"}}
	}
	list, err := coords.NewList(positions)
	if err != nil {
		return nil, nil, nil, errDecorate(err, "pdbxBufIORead")
	}
	return list, numbers, bfactors, nil
}

//readPDBxAtom parses the fields of one _atom_site row. A zero atomic
//number signals an atom to skip. The type_symbol field is used when
//present, the atom name otherwise.
func readPDBxAtom(data []string, m pdbxmap, natom int) (x, y, z float64, znum int, bfac float64, rerr error) {
	get := func(key string) (string, bool) {
		k := m.get(key)
		if k < 0 || k >= len(data) {
			return "", false
		}
		return data[k], true
	}
	var xyz [3]float64
	for i, key := range []string{"_atom_site.cartn_x", "_atom_site.cartn_y", "_atom_site.cartn_z"} {
		s, ok := get(key)
		if !ok {
			return 0, 0, 0, 0, 0, CError{fmt.Sprintf("atom %d: missing %s", natom, key), []string{"readPDBxAtom"}}
		}
		fl, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, 0, 0, 0, 0, CError{fmt.Sprintf("atom %d: %v", natom, err), []string{"readPDBxAtom"}}
		}
		xyz[i] = fl
	}
	//files without refinement data mark b-factors with "?" or ".",
	//or omit the field, so a missing one is not an error
	if s, ok := get("_atom_site.b_iso_or_equiv"); ok {
		bfac, _ = strconv.ParseFloat(s, 64)
	}
	symbol, _ := get("_atom_site.type_symbol")
	if symbol == "?" || symbol == "." {
		symbol = ""
	}
	name, ok := get("_atom_site.auth_atom_id")
	if !ok {
		name, _ = get("_atom_site.label_atom_id")
	}
	name = strings.Trim(name, `"'`)
	if symbol == "" {
		symbol, _ = elementFromName(name)
	}
	if symbol == "" {
		log.Printf("gocryo: skipping atom %q (entry %d): no element", name, natom)
		return 0, 0, 0, 0, 0, nil
	}
	znum, err := AtomicNumber(symbol)
	if err != nil {
		log.Printf("gocryo: skipping atom %q (entry %d): unknown element %q", name, natom, symbol)
		return 0, 0, 0, 0, 0, nil
	}
	return xyz[0], xyz[1], xyz[2], znum, bfac, nil
}
