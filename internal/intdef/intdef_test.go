package intdef

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioshell-go/bioshell/internal/kintree"
)

const sampleTable = `# residue, a, b, c, atom, element, r, planar_deg, dihedral_deg, dihedral_name
R1,this,N,this,CA,this,C,O,O,1.23,120.5,180,
R1,prev,CA,prev,C,prev,N,N,N,1.33,116,180,omega
`

func TestParseReadsRowsAndConvertsAnglesToRadians(t *testing.T) {
	rows, err := Parse(strings.NewReader(sampleTable))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "R1", first.ResidueSelector)
	assert.Equal(t, kintree.AtomRef{Locator: kintree.LocatorThis, Name: "N"}, first.A)
	assert.Equal(t, "O", first.AtomName)
	assert.InDelta(t, 1.23, first.R, 1e-12)
	assert.InDelta(t, 120.5*3.14159265358979/180, first.PlanarRad, 1e-6)
	assert.Equal(t, "", first.DihedralName)

	second := rows[1]
	assert.Equal(t, "omega", second.DihedralName)
	assert.Equal(t, kintree.AtomRef{Locator: kintree.LocatorPrev, Name: "CA"}, second.A)
}

func TestParseRejectsUnknownLocator(t *testing.T) {
	bad := "R1,sideways,N,this,CA,this,C,O,O,1.23,120.5,180,\n"
	_, err := Parse(strings.NewReader(bad))
	assert.Error(t, err)
}

func TestParseRejectsMalformedNumericField(t *testing.T) {
	bad := "R1,this,N,this,CA,this,C,O,O,notanumber,120.5,180,\n"
	_, err := Parse(strings.NewReader(bad))
	assert.Error(t, err)
}

func TestToAtomDefinitionCarriesFieldsThrough(t *testing.T) {
	rows, err := Parse(strings.NewReader(sampleTable))
	require.NoError(t, err)

	def := rows[1].ToAtomDefinition()
	assert.Equal(t, "N", def.D.Name)
	assert.Equal(t, "omega", def.DihedralName)
	assert.InDelta(t, 1.33, def.R, 1e-12)
}
