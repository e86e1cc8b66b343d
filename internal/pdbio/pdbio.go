// Package pdbio provides the minimal in-scope trajectory I/O the core
// owns: fixed-column ATOM/HETATM parsing and multi-model trajectory
// output. General PDB/CIF/FASTA parsing is an external collaborator
// (spec.md §1 out-of-scope list); this package only reads/writes the
// coarse-grained backbone/CA frames the sampler itself produces and
// consumes, so it stays on the standard library rather than reaching
// for a bioinformatics format library — see DESIGN.md.
//
// Grounded directly on the teacher's parser.ParsePDB/parseAtomLine
// (backend/internal/parser/pdb_parser.go): same fixed-column slicing,
// same field set, generalized to also emit MODEL/ENDMDL-delimited
// multi-frame trajectories rather than reading a single structure.
package pdbio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bioshell-go/bioshell/internal/bioshellerr"
	"github.com/bioshell-go/bioshell/internal/vecmath"
)

// Atom is one parsed ATOM/HETATM record.
type Atom struct {
	Serial  int
	Name    string
	AltLoc  string
	ResName string
	ChainID string
	ResSeq  int
	Pos     vecmath.Vec3
	Element string
}

// Frame is one MODEL's worth of atoms (or the whole file, if it never
// uses MODEL/ENDMDL records).
type Frame struct {
	Model int
	Atoms []Atom
}

// ParseTrajectory reads every MODEL...ENDMDL block from r, or treats
// the entire stream as a single frame if no MODEL record appears.
func ParseTrajectory(r io.Reader) ([]Frame, error) {
	scanner := bufio.NewScanner(r)
	var frames []Frame
	current := Frame{Model: 1}
	sawModel := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "MODEL"):
			sawModel = true
			if len(current.Atoms) > 0 {
				frames = append(frames, current)
			}
			n, _ := strconv.Atoi(strings.TrimSpace(line[5:]))
			current = Frame{Model: n}
		case strings.HasPrefix(line, "ENDMDL"):
			frames = append(frames, current)
			current = Frame{Model: current.Model + 1}
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			atom, err := parseAtomLine(line)
			if err != nil {
				return nil, bioshellerr.New(bioshellerr.KindParseError, "atom record", lineNo, err)
			}
			current.Atoms = append(current.Atoms, atom)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, bioshellerr.New(bioshellerr.KindIoError, "trajectory read", lineNo, err)
	}
	if !sawModel && len(current.Atoms) > 0 {
		frames = append(frames, current)
	}
	return frames, nil
}

// parseAtomLine decodes one fixed-column ATOM/HETATM record:
// cols 7-11 serial, 13-16 name, 17 altLoc, 18-20 resName, 22 chainID,
// 23-26 resSeq, 31-38/39-46/47-54 xyz, 77-78 element.
func parseAtomLine(line string) (Atom, error) {
	if len(line) < 54 {
		return Atom{}, fmt.Errorf("line too short: %d columns", len(line))
	}
	for len(line) < 80 {
		line += " "
	}

	atom := Atom{}
	serial, err := strconv.Atoi(strings.TrimSpace(line[6:11]))
	if err != nil {
		return Atom{}, fmt.Errorf("serial: %w", err)
	}
	atom.Serial = serial
	atom.Name = strings.TrimSpace(line[12:16])
	atom.AltLoc = strings.TrimSpace(line[16:17])
	atom.ResName = strings.TrimSpace(line[17:20])
	atom.ChainID = strings.TrimSpace(line[21:22])

	resSeq, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return Atom{}, fmt.Errorf("resSeq: %w", err)
	}
	atom.ResSeq = resSeq

	x, err := strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	if err != nil {
		return Atom{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	if err != nil {
		return Atom{}, fmt.Errorf("y: %w", err)
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	if err != nil {
		return Atom{}, fmt.Errorf("z: %w", err)
	}
	atom.Pos = vecmath.NewVec3(x, y, z)

	if len(line) >= 78 {
		atom.Element = strings.TrimSpace(line[76:78])
	}
	return atom, nil
}

// formatAtomLine renders one fixed-column ATOM record.
func formatAtomLine(a Atom) string {
	name := a.Name
	if len(name) < 4 {
		name = " " + name + strings.Repeat(" ", 3-len(name))
	}
	return fmt.Sprintf("ATOM  %5d %-4s%1s%-3s %1s%4d    %8.3f%8.3f%8.3f  1.00  0.00          %2s",
		a.Serial, name, a.AltLoc, a.ResName, a.ChainID, a.ResSeq, a.Pos.X, a.Pos.Y, a.Pos.Z, a.Element)
}

// WriteTrajectory writes frames as a MODEL/ENDMDL-delimited multi-model
// trajectory.
func WriteTrajectory(w io.Writer, frames []Frame) error {
	bw := bufio.NewWriter(w)
	for _, f := range frames {
		if _, err := fmt.Fprintf(bw, "MODEL     %4d\n", f.Model); err != nil {
			return bioshellerr.New(bioshellerr.KindIoError, "write MODEL", 0, err)
		}
		for _, a := range f.Atoms {
			if _, err := fmt.Fprintln(bw, formatAtomLine(a)); err != nil {
				return bioshellerr.New(bioshellerr.KindIoError, "write ATOM", 0, err)
			}
		}
		if _, err := fmt.Fprintln(bw, "ENDMDL"); err != nil {
			return bioshellerr.New(bioshellerr.KindIoError, "write ENDMDL", 0, err)
		}
	}
	return bw.Flush()
}
