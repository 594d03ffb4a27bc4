package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnnaCarter465/tax-footprint/tax"
)

func TestRand(t *testing.T) {
	tcs := map[float64]string{
		0:           "R0.00",
		265:         "R265.00",
		2_125.44:    "R2,125.44",
		26_197:      "R26,197.00",
		1_241_456.5: "R1,241,456.50",
		1_000_000:   "R1,000,000.00",
		-1_500.256:  "-R1,500.26",
		0.005:       "R0.01",
	}

	for in, want := range tcs {
		assert.Equal(t, want, Rand(in), "%v", in)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "11.80%", Percent(11.8))
	assert.Equal(t, "0.00%", Percent(0))
}

func sampleRows() []tax.SummaryRow {
	b := tax.Breakdown{tax.PAYE: 26_197, tax.UIF: 2_125.44}
	return tax.Summary(b, b.Total())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"category", "annual", "monthly"},
		{"PAYE (Income Tax)", "26197.00", "2183.08"},
		{"UIF", "2125.44", "177.12"},
		{"TOTAL", "28322.44", "2360.20"},
	}, records)
}

func TestWritePDF(t *testing.T) {
	b := tax.Breakdown{}
	for i, c := range tax.Categories() {
		b[c] = float64(1000 * (i + 1))
	}

	var buf bytes.Buffer

	err := WritePDF(&buf, Document{
		TaxYear:     "2024/25",
		GeneratedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Result:      tax.Result{Breakdown: b, Total: b.Total(), GrossIncome: 500_000},
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestTable(t *testing.T) {
	got := Table(sampleRows())

	assert.Contains(t, got, "PAYE (Income Tax)")
	assert.Contains(t, got, "R26,197.00")
	assert.Contains(t, got, "R2,183.08")
	assert.Contains(t, got, tax.TotalLabel)
	assert.Contains(t, got, "R28,322.44")
}
