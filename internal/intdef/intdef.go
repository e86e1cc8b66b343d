// Package intdef parses the tabular internal-coordinate-definition
// files described in spec.md §6: one row per atom definition, with
// locator+name pairs for a/b/c, the new atom's name/element, bond
// length, planar and dihedral angles in degrees (converted to radians
// at load time), and an optional dihedral name.
//
// Grounded directly on the teacher's parser package's own fixed-format
// tabular readers (residue/rotamer library loading used
// encoding/csv-style row splitting); this format is simple enough,
// and specific enough to BioShell's own file layout, that no
// third-party tabular-parsing library in the pack improves on
// encoding/csv plus per-field validation — see DESIGN.md.
package intdef

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bioshell-go/bioshell/internal/bioshellerr"
	"github.com/bioshell-go/bioshell/internal/kintree"
)

// Row is one parsed atom definition row, ready to feed into
// kintree.InternalAtomDefinition once the caller resolves the residue
// selector against its own residue-definition table.
type Row struct {
	ResidueSelector string
	A, B, C         kintree.AtomRef
	AtomName        string
	Element         string
	R               float64
	PlanarRad       float64
	DihedralRad     float64
	DihedralName    string
}

func parseLocator(s string) (kintree.Locator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prev":
		return kintree.LocatorPrev, nil
	case "this":
		return kintree.LocatorThis, nil
	case "next":
		return kintree.LocatorNext, nil
	default:
		return 0, fmt.Errorf("intdef: unknown locator %q", s)
	}
}

func parseRef(locator, name string) (kintree.AtomRef, error) {
	loc, err := parseLocator(locator)
	if err != nil {
		return kintree.AtomRef{}, err
	}
	return kintree.AtomRef{Locator: loc, Name: strings.TrimSpace(name)}, nil
}

// Parse reads rows from r. Column order: residue_selector, a_locator,
// a_name, b_locator, b_name, c_locator, c_name, atom_name, element, r,
// planar_deg, dihedral_deg, dihedral_name (last column optional).
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []Row
	lineNo := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				lineNo = pe.Line
			}
			return nil, bioshellerr.New(bioshellerr.KindParseError, "intdef row", lineNo, err)
		}
		lineNo, _ = reader.FieldPos(0)
		if len(record) < 12 {
			return nil, bioshellerr.New(bioshellerr.KindParseError, fmt.Sprintf("expected >=12 columns, got %d", len(record)), lineNo, nil)
		}

		aRef, err := parseRef(record[1], record[2])
		if err != nil {
			return nil, bioshellerr.New(bioshellerr.KindParseError, err.Error(), lineNo, err)
		}
		bRef, err := parseRef(record[3], record[4])
		if err != nil {
			return nil, bioshellerr.New(bioshellerr.KindParseError, err.Error(), lineNo, err)
		}
		cRef, err := parseRef(record[5], record[6])
		if err != nil {
			return nil, bioshellerr.New(bioshellerr.KindParseError, err.Error(), lineNo, err)
		}

		r, err := strconv.ParseFloat(strings.TrimSpace(record[9]), 64)
		if err != nil {
			return nil, bioshellerr.New(bioshellerr.KindParseError, "bond length", lineNo, err)
		}
		planarDeg, err := strconv.ParseFloat(strings.TrimSpace(record[10]), 64)
		if err != nil {
			return nil, bioshellerr.New(bioshellerr.KindParseError, "planar angle", lineNo, err)
		}
		dihedralDeg, err := strconv.ParseFloat(strings.TrimSpace(record[11]), 64)
		if err != nil {
			return nil, bioshellerr.New(bioshellerr.KindParseError, "dihedral angle", lineNo, err)
		}

		dihedralName := ""
		if len(record) >= 13 {
			dihedralName = strings.TrimSpace(record[12])
		}

		rows = append(rows, Row{
			ResidueSelector: strings.TrimSpace(record[0]),
			A:               aRef,
			B:               bRef,
			C:               cRef,
			AtomName:        strings.TrimSpace(record[7]),
			Element:         strings.TrimSpace(record[8]),
			R:               r,
			PlanarRad:       planarDeg * math.Pi / 180,
			DihedralRad:     dihedralDeg * math.Pi / 180,
			DihedralName:    dihedralName,
		})
	}
	return rows, nil
}

// ToAtomDefinition converts a parsed Row into a kintree.InternalAtomDefinition.
func (row Row) ToAtomDefinition() kintree.InternalAtomDefinition {
	return kintree.InternalAtomDefinition{
		A: row.A, B: row.B, C: row.C,
		D:            kintree.AtomRef{Name: row.AtomName},
		R:            row.R,
		Planar:       row.PlanarRad,
		Dihedral:     row.DihedralRad,
		DihedralName: row.DihedralName,
	}
}
