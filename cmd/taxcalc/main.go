// Command taxcalc prints the tax footprint of a household described in a YAML
// file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/AnnaCarter465/tax-footprint/report"
	"github.com/AnnaCarter465/tax-footprint/tax"
)

func main() {
	ratesPath := flag.String("rates", "", "Path to a tax rates YAML file (default: built-in rates)")
	householdPath := flag.String("household", "", "Path to a household YAML file")
	format := flag.String("format", "table", "Output format: table, csv or pdf")
	output := flag.String("o", "", "Write output to this file instead of stdout")
	flag.Parse()

	if err := run(*ratesPath, *householdPath, *format, *output); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ratesPath, householdPath, format, output string) error {
	if format == "pdf" && output == "" {
		return fmt.Errorf("pdf output needs -o")
	}

	rates, err := loadRates(ratesPath)
	if err != nil {
		return err
	}

	if err := rates.CheckContiguity(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}

	h, err := loadHousehold(householdPath)
	if err != nil {
		return err
	}

	if err := tax.Validate(tax.NewValidator(), h); err != nil {
		return err
	}

	result := tax.Calculate(rates, h)

	var w io.Writer = os.Stdout

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()

		w = f
	}

	return write(w, format, rates.TaxYear, result)
}

func write(w io.Writer, format, taxYear string, result tax.Result) error {
	rows := tax.Summary(result.Breakdown, result.Total)

	switch format {
	case "table":
		fmt.Fprintln(w, report.Table(rows))
		fmt.Fprintf(w, "\nGross income:   %s\n", report.Rand(result.GrossIncome))
		fmt.Fprintf(w, "Effective rate: %s\n", report.Percent(result.EffectiveRate))
		fmt.Fprintf(w, "Monthly total:  %s\n", report.Rand(result.MonthlyTotal))
		return nil
	case "csv":
		return report.WriteCSV(w, rows)
	case "pdf":
		return report.WritePDF(w, report.Document{
			TaxYear:     taxYear,
			GeneratedAt: time.Now(),
			Result:      result,
		})
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
