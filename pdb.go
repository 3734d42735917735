/*
 * pdb.go, part of gocryo.
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

//PDBRead reads the atoms of the first model in a PDB stream and returns
//their coordinates in angstroms, their atomic numbers and their
//B-factors, all in file order. Atoms whose element cannot be determined
//are skipped with a note to the log. Only the fields the rasterizer
//needs are read; everything else in the file is ignored.
func PDBRead(pdb io.Reader) (*coords.List, []int, []float64, error) {
	positions := make([]float64, 0, 300)
	numbers := make([]int, 0, 100)
	bfactors := make([]float64, 0, 100)
	scanner := bufio.NewScanner(pdb)
	nline := 0
	for scanner.Scan() {
		nline++
		line := scanner.Text()
		if strings.HasPrefix(line, "ENDMDL") || strings.HasPrefix(line, "END ") || line == "END" {
			break
		}
		if !strings.HasPrefix(line, "ATOM") && !strings.HasPrefix(line, "HETATM") {
			continue
		}
		x, y, z, znum, bfac, err := readPDBLine(line, nline)
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
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, CError{fmt.Sprintf("PDB: %v", err), []string{"PDBRead"}}
	}
	if len(numbers) == 0 {
		return nil, nil, nil, CError{"the PDB has no readable atoms", []string{"PDBRead"}}
	}
	list, err := coords.NewList(positions)
	if err != nil {
		return nil, nil, nil, errDecorate(err, "PDBRead")
	}
	return list, numbers, bfactors, nil
}

//PDBFileRead reads a PDB file as PDBRead does, decompressing it first
//when the name ends in .gz.
func PDBFileRead(path string) (*coords.List, []int, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, CError{fmt.Sprintf("PDB: %v", err), []string{"PDBFileRead"}}
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, nil, CError{fmt.Sprintf("PDB: %v", err), []string{"PDBFileRead"}}
		}
		defer gz.Close()
		r = gz
	}
	return PDBRead(r)
}

//readPDBLine parses one ATOM or HETATM line. A zero atomic number
//signals an atom to skip. The element column is used when present, the
//atom name otherwise.
func readPDBLine(line string, nline int) (x, y, z float64, znum int, bfac float64, rerr error) {
	if len(line) < 54 {
		return 0, 0, 0, 0, 0, CError{fmt.Sprintf("line %d: too short for an atom entry", nline), []string{"readPDBLine"}}
	}
	errs := make([]error, 3)
	x, errs[0] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	y, errs[1] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	z, errs[2] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	for _, err := range errs {
		if err != nil {
			return 0, 0, 0, 0, 0, CError{fmt.Sprintf("line %d: %v", nline, err), []string{"readPDBLine"}}
		}
	}
	//the b-factor column is often dropped in minimal files, so a
	//missing one is not an error
	if len(line) >= 66 {
		bfac, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	}
	symbol := ""
	if len(line) >= 78 {
		symbol = strings.TrimSpace(line[76:78])
	}
	name := strings.TrimSpace(line[12:16])
	if symbol == "" {
		symbol, _ = elementFromName(name)
	}
	if symbol == "" {
		log.Printf("gocryo: skipping atom %q on line %d: no element", name, nline)
		return 0, 0, 0, 0, 0, nil
	}
	znum, err := AtomicNumber(symbol)
	if err != nil {
		log.Printf("gocryo: skipping atom %q on line %d: unknown element %q", name, nline, symbol)
		return 0, 0, 0, 0, 0, nil
	}
	return x, y, z, znum, bfac, nil
}

//elementFromName guesses a chemical element from a PDB atom name.
//Mostly based on AMBER names.
func elementFromName(name string) (string, error) {
	switch {
	case name == "":
	case strings.HasPrefix(name, "H"):
		return "H", nil
	case strings.HasPrefix(name, "CL"):
		return "Cl", nil
	case strings.HasPrefix(name, "C"):
		return "C", nil
	case strings.HasPrefix(name, "NA"):
		return "Na", nil
	case strings.HasPrefix(name, "N"):
		return "N", nil
	case strings.HasPrefix(name, "O"):
		return "O", nil
	case strings.HasPrefix(name, "P"):
		return "P", nil
	case strings.HasPrefix(name, "SE"):
		return "Se", nil
	case strings.HasPrefix(name, "S"):
		return "S", nil
	case strings.HasPrefix(name, "ZN"):
		return "Zn", nil
	case strings.HasPrefix(name, "FE"):
		return "Fe", nil
	case strings.HasPrefix(name, "MG"):
		return "Mg", nil
	case strings.HasPrefix(name, "MN"):
		return "Mn", nil
	case strings.HasPrefix(name, "K"):
		return "K", nil
	}
	return "", CError{fmt.Sprintf("cannot guess an element from the atom name %q", name), []string{"elementFromName"}}
}
