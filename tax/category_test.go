package tax

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryLabelsUnique(t *testing.T) {
	seen := make(map[string]Category)

	for _, c := range Categories() {
		label := c.Label()
		require.NotEmpty(t, label, "category %d has no label", int(c))
		require.NotEqual(t, TotalLabel, label)

		if prev, ok := seen[label]; ok {
			t.Fatalf("label %q used by %d and %d", label, int(prev), int(c))
		}
		seen[label] = c

		assert.NotEmpty(t, c.Note(), label)
	}

	assert.Len(t, seen, int(numCategories))
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("Fuel Levies")
	require.NoError(t, err)
	assert.Equal(t, FuelLevies, c)

	_, err = ParseCategory("Fuel levy")
	assert.Error(t, err)

	assert.Equal(t, "Category(99)", Category(99).Label())
}

func TestBreakdownJSON(t *testing.T) {
	b := Breakdown{VAT: 1_800, PAYE: 26_197}

	out, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"VAT": 1800, "PAYE (Income Tax)": 26197}`, string(out))

	var back Breakdown
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, b, back)
}

func TestBreakdownLabels(t *testing.T) {
	b := Breakdown{TVLicense: 265}

	assert.Equal(t, map[string]float64{"TV License": 265}, b.Labels())
	assert.Equal(t, 265.0, b.Total())
	assert.Equal(t, 0.0, Breakdown{}.Total())
}
