package labparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabValues_StandardPatterns(t *testing.T) {
	text := `COMPLETE BLOOD COUNT
Hemoglobin: 145 g/L
Hematocrit: 0.43
Platelets 250 x10^9/L
`

	results := ParseLabValues(text)

	hgb, ok := results["Hgb"]
	require.True(t, ok, "expected Hgb to be extracted")
	assert.Equal(t, 145.0, hgb.Value)
	assert.Equal(t, "g/L", hgb.Unit)
	assert.Equal(t, "standard", hgb.MatchType)
	assert.Contains(t, hgb.RawText, "Hemoglobin")

	plt, ok := results["PLT"]
	require.True(t, ok, "expected PLT to be extracted")
	assert.Equal(t, 250.0, plt.Value)
	assert.Equal(t, "×10⁹/L", plt.Unit)
}

func TestParseLabValues_ReferenceRangeFromSameLine(t *testing.T) {
	text := "TSH: 2.5 0.32-4.00 mIU/L\n"

	results := ParseLabValues(text)

	tsh, ok := results["TSH"]
	require.True(t, ok)
	assert.Equal(t, 2.5, tsh.Value)
	assert.Equal(t, "mIU/L", tsh.Unit)
	assert.Equal(t, "0.32-4.00", tsh.ReferenceRange)
}

func TestParseLabValues_FlaggedValue(t *testing.T) {
	// An H flag between the name and value must not break extraction
	text := "Creatinine: H 130 umol/L\n"

	results := ParseLabValues(text)

	creat, ok := results["Creatinine"]
	require.True(t, ok)
	assert.Equal(t, 130.0, creat.Value)
	assert.Equal(t, "µmol/L", creat.Unit)
}

func TestParseLabValues_EnhancedTestosterone(t *testing.T) {
	text := "Testosterone (Final) 15.50 8.40-28.80 nmol/L\n"

	results := ParseLabValues(text)

	testo, ok := results["Testosterone"]
	require.True(t, ok)
	assert.Equal(t, 15.5, testo.Value)
	assert.Equal(t, "nmol/L", testo.Unit)
	assert.Equal(t, "enhanced", testo.MatchType)
	assert.Equal(t, "8.40-28.80", testo.ReferenceRange)
}

func TestParseLabValues_StructuredTableRow(t *testing.T) {
	text := "TEST NAME RESULT UNITS\nFerritin 85 30-400 ug/L\n"

	results := ParseLabValues(text)

	ferritin, ok := results["Ferritin"]
	require.True(t, ok)
	assert.Equal(t, 85.0, ferritin.Value)
	assert.Equal(t, "ug/L", ferritin.Unit)
	assert.Equal(t, "30-400", ferritin.ReferenceRange)
	assert.Equal(t, "structured", ferritin.MatchType)
}

func TestParseLabValues_StructuredRowWithoutUnitColumn(t *testing.T) {
	// The row ends at the reference range. The range must not be reported
	// as the unit; the registered unit for the test applies instead.
	text := "TEST NAME RESULT UNITS\nSodium 140 135-145\n"

	results := ParseLabValues(text)

	sodium, ok := results["Sodium"]
	require.True(t, ok)
	assert.Equal(t, 140.0, sodium.Value)
	assert.Equal(t, "mmol/L", sodium.Unit)
	assert.Equal(t, "135-145", sodium.ReferenceRange)
}

func TestParseLabValues_StructuredRowSkipsFlagToken(t *testing.T) {
	text := "TEST NAME RESULT UNITS\nFerritin 85 H 30-400 ug/L\n"

	results := ParseLabValues(text)

	ferritin, ok := results["Ferritin"]
	require.True(t, ok)
	assert.Equal(t, 85.0, ferritin.Value)
	assert.Equal(t, "ug/L", ferritin.Unit)
	assert.Equal(t, "30-400", ferritin.ReferenceRange)
}

func TestParseLabValues_StructuredResultSection(t *testing.T) {
	text := "SEX HORMONE BINDING GLOBULIN\nRESULT 45.2\nREFERENCE 10-70\nnmol/L\n"

	results := ParseLabValues(text)

	shbg, ok := results["Sex Hormone Binding Globulin"]
	require.True(t, ok)
	assert.Equal(t, 45.2, shbg.Value)
	assert.Equal(t, "nmol/L", shbg.Unit)
}

func TestParseLabValues_UnreasonableValuesRejected(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
	}{
		{"huge number", "Hemoglobin: 99999 g/L", "Hgb"},
		{"testosterone out of range", "Testosterone 75.00 nmol/L", "Testosterone"},
		{"calcium out of range", "Calcium: 9.5 mmol/L", "Calcium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := ParseLabValues(tt.text)
			_, found := results[tt.key]
			assert.False(t, found, "value should have been filtered")
		})
	}
}

func TestParseLabValues_NoMatches(t *testing.T) {
	results := ParseLabValues("This report contains no recognizable test results.")
	assert.Empty(t, results)

	results = ParseLabValues("")
	assert.Empty(t, results)
}

func TestFormattedValue(t *testing.T) {
	v := ExtractedLabValue{Value: 2.5, Precision: 2}
	assert.Equal(t, "2.50", v.FormattedValue())

	v = ExtractedLabValue{Value: 45.23, Precision: 1}
	assert.Equal(t, "45.2", v.FormattedValue())
}
