package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/AnnaCarter465/tax-footprint/tax"
)

const (
	marginLeft   = 15.0
	marginTop    = 15.0
	marginRight  = 15.0
	marginBottom = 15.0
	contentWidth = 210.0 - marginLeft - marginRight

	colCategory = 100.0
	colAmount   = (contentWidth - colCategory) / 2
)

// Document is everything printed on a PDF export.
type Document struct {
	Title       string
	TaxYear     string
	GeneratedAt time.Time
	Result      tax.Result
}

// WritePDF renders doc as an A4 breakdown statement.
func WritePDF(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	title := doc.Title
	if title == "" {
		title = "Household Tax Footprint"
	}

	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 10, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(80, 80, 80)

	if doc.TaxYear != "" {
		pdf.CellFormat(contentWidth, 6, "Tax year "+doc.TaxYear, "", 1, "L", false, 0, "")
	}

	if !doc.GeneratedAt.IsZero() {
		pdf.CellFormat(contentWidth, 6, "Generated "+doc.GeneratedAt.Format("2 January 2006"), "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	writeFacts(pdf, doc.Result)
	pdf.Ln(6)
	writeRows(pdf, tax.Summary(doc.Result.Breakdown, doc.Result.Total))

	return pdf.Output(w)
}

func writeFacts(pdf *fpdf.Fpdf, r tax.Result) {
	facts := [][2]string{
		{"Gross income", Rand(r.GrossIncome)},
		{"Total to government", Rand(r.Total)},
		{"Per month", Rand(r.MonthlyTotal)},
		{"Effective rate vs gross", Percent(r.EffectiveRate)},
	}

	pdf.SetFillColor(245, 247, 250)
	pdf.SetTextColor(50, 50, 50)

	for _, f := range facts {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(colCategory, 7, f[0], "", 0, "L", true, 0, "")
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(contentWidth-colCategory, 7, f[1], "", 1, "R", true, 0, "")
	}
}

func writeRows(pdf *fpdf.Fpdf, rows []tax.SummaryRow) {
	header := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(0, 51, 102)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(colCategory, 8, "Category", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colAmount, 8, "Annual", "1", 0, "R", true, 0, "")
		pdf.CellFormat(colAmount, 8, "Monthly", "1", 1, "R", true, 0, "")
	}

	header()

	pdf.SetTextColor(50, 50, 50)

	for i, row := range rows {
		if pdf.GetY() > 297-marginBottom-10 {
			pdf.AddPage()
			header()
			pdf.SetTextColor(50, 50, 50)
		}

		style := ""
		if row.Category == tax.TotalLabel {
			style = "B"
		}

		pdf.SetFont("Arial", style, 10)

		fill := i%2 == 1
		pdf.SetFillColor(245, 247, 250)

		pdf.CellFormat(colCategory, 7, row.Category, "LR", 0, "L", fill, 0, "")
		pdf.CellFormat(colAmount, 7, Rand(row.Annual), "LR", 0, "R", fill, 0, "")
		pdf.CellFormat(colAmount, 7, Rand(row.Monthly), "LR", 1, "R", fill, 0, "")

		if row.Note != "" {
			pdf.SetFont("Arial", "I", 8)
			pdf.SetTextColor(110, 110, 110)
			pdf.MultiCell(contentWidth, 4, row.Note, "LR", "L", fill)
			pdf.SetTextColor(50, 50, 50)
		}
	}

	pdf.CellFormat(contentWidth, 0, "", "T", 1, "", false, 0, "")
}
