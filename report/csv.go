package report

import (
	"encoding/csv"
	"io"

	"github.com/AnnaCarter465/tax-footprint/tax"
)

// WriteCSV writes summary rows with amounts rounded to cents.
func WriteCSV(w io.Writer, rows []tax.SummaryRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"category", "annual", "monthly"}); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.Category,
			Money(row.Annual).StringFixed(2),
			Money(row.Monthly).StringFixed(2),
		}

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
