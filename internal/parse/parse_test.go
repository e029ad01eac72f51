package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nodeSchema = Schema{Record: "node", Fields: []Field{
	IntField("tag"),
	FloatField("x"), FloatField("y"), FloatField("z"),
}}

func TestRowsMixedDelimiters(t *testing.T) {
	text := `
# corner nodes
1, 0, 0, 0
2  0	0  4

3,4 0,4
`
	rows, err := nodeSchema.Rows(text)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 1, rows[0].Int(0))
	assert.Equal(t, 2, rows[1].Int(0))
	assert.Equal(t, 3, rows[2].Int(0))
	assert.Equal(t, 4.0, rows[1].Float(3))
	assert.Equal(t, 4.0, rows[2].Float(1))
	assert.Equal(t, 4.0, rows[2].Float(3))
}

func TestRowsScientificNotation(t *testing.T) {
	s := Schema{Record: "element", Fields: []Field{
		IntField("tag"), FloatField("E"), FloatField("I"),
	}}
	rows, err := s.Rows("1, 30e6, 6.75e-4")
	require.NoError(t, err)
	assert.Equal(t, 30e6, rows[0].Float(1))
	assert.Equal(t, 6.75e-4, rows[0].Float(2))
}

func TestRowsShortRowIsError(t *testing.T) {
	_, err := nodeSchema.Rows("1, 0, 0")
	require.Error(t, err)
	assert.ErrorContains(t, err, "expected 4 fields")
	assert.ErrorContains(t, err, "got 3")

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "node", pe.Record)
	assert.Equal(t, 1, pe.Line)
}

func TestRowsLongRowIsError(t *testing.T) {
	_, err := nodeSchema.Rows("1, 0, 0, 0, 99")
	require.Error(t, err)
	assert.ErrorContains(t, err, "got 5")
}

func TestRowsIntegerColumnRejectsDecimals(t *testing.T) {
	_, err := nodeSchema.Rows("1.5, 0, 0, 0")
	require.Error(t, err)

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Column)
	assert.Equal(t, "1.5", pe.Token)
	assert.ErrorContains(t, err, "must be an integer")
}

func TestRowsBadFloatReportsPosition(t *testing.T) {
	text := "1, 0, 0, 0\n2, 0, oops, 4"
	_, err := nodeSchema.Rows(text)
	require.Error(t, err)

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, 3, pe.Column)
	assert.Equal(t, "oops", pe.Token)
}

func TestRowsRestCollectsTrailingFloats(t *testing.T) {
	s := Schema{
		Record: "shape",
		Fields: []Field{IntField("element"), StringField("shape")},
		Rest:   &Field{Name: "dim", Kind: Float},
	}

	rows, err := s.Rows("2, I, 0.2, 0.4, 0.008, 0.013")
	require.NoError(t, err)
	assert.Equal(t, "I", rows[0].String(1))
	assert.Equal(t, []float64{0.2, 0.4, 0.008, 0.013}, rows[0].Rest())

	// rest may be empty but must still be numeric
	rows, err = s.Rows("3, circ")
	require.NoError(t, err)
	assert.Empty(t, rows[0].Rest())

	_, err = s.Rows("3, circ, wide")
	assert.ErrorContains(t, err, "must be a number")
}

func TestRowsEmptyBlock(t *testing.T) {
	rows, err := nodeSchema.Rows("")
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = nodeSchema.Rows("\n# only comments\n\n")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, Tokenize("1,2,3"))
	assert.Equal(t, []string{"1", "2", "3"}, Tokenize("1 2\t3"))
	assert.Equal(t, []string{"1", "2"}, Tokenize(" 1 ,, 2 , "))
	assert.Empty(t, Tokenize("   "))
}
