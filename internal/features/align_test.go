package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlab/credscore/internal/contracts"
)

func testSchema(t *testing.T) *contracts.FeatureSchema {
	t.Helper()

	s, err := contracts.NewFeatureSchema(
		[]string{
			"AMT_CREDIT",
			"BUREAU_DAYS_CREDIT_mean", // not derivable from the form
			"AMT_INCOME_TOTAL",
			"EXT_SOURCE_MEAN",
		},
		map[string]float64{
			"BUREAU_DAYS_CREDIT_mean": -1055.5,
		},
	)
	require.NoError(t, err)
	return s
}

func TestAlign_SchemaOrderAndDefaults(t *testing.T) {
	s := testSchema(t)

	derived := map[string]float64{
		"AMT_INCOME_TOTAL": 150000,
		"AMT_CREDIT":       200000,
		"EXT_SOURCE_MEAN":  0.5,
		"NOT_IN_SCHEMA":    99, // must be dropped
	}

	vec := Align(derived, s)

	require.Equal(t, s.Names(), vec.Names)
	assert.Equal(t, []float64{200000, -1055.5, 150000, 0.5}, vec.Values)
}

func TestAlign_MissingDefaultFallsBackToZero(t *testing.T) {
	s := testSchema(t)

	vec := Align(map[string]float64{}, s)

	v, ok := vec.Get("EXT_SOURCE_MEAN")
	require.True(t, ok)
	assert.Equal(t, 0.0, v, "no derived value and no median means 0")

	v, ok = vec.Get("BUREAU_DAYS_CREDIT_mean")
	require.True(t, ok)
	assert.Equal(t, -1055.5, v, "aggregate features take their training median")
}

func TestVerifyAligned(t *testing.T) {
	s := testSchema(t)

	vec := Align(map[string]float64{}, s)
	assert.NoError(t, VerifyAligned(vec, s))

	broken := &contracts.FeatureVector{
		Names:  []string{"AMT_CREDIT", "UNKNOWN"},
		Values: []float64{1, 2},
	}

	err := VerifyAligned(broken, s)
	require.Error(t, err)

	var mismatch *contracts.SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Contains(t, mismatch.Missing, "AMT_INCOME_TOTAL")
	assert.Contains(t, mismatch.Extra, "UNKNOWN")
}
