package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"example.com/rt130gate/internal/common"
)

const digestImage = "digest-qr"

// SaveBlockReportPDF renders the decode summary into a PDF document.
func SaveBlockReportPDF(sum Summary, out string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("RT130 Data Block Report", false)
	pdf.SetAuthor("rt130ctl", false)
	pdf.SetCreator("rt130ctl", false)
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	addPDFTitle(pdf, "RT130 Data Block Report")
	if err := addSummarySection(pdf, sum); err != nil {
		return err
	}
	addBlocksSection(pdf, sum.Records)

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.OutputFileAndClose(out)
}

func addPDFTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
}

func addSummarySection(pdf *gofpdf.Fpdf, sum Summary) error {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	top := pdf.GetY()
	pdf.SetFont("Helvetica", "", 11)
	items := []struct {
		label string
		value string
	}{
		{label: "Generated", value: sum.GeneratedAt.Format(time.RFC3339)},
		{label: "Blocks", value: strconv.Itoa(sum.Total)},
		{label: "Decoded", value: strconv.Itoa(sum.Decoded)},
		{label: "Failed", value: strconv.Itoa(sum.Failed)},
		{label: "Samples", value: strconv.FormatInt(sum.Samples, 10)},
		{label: "Overall", value: passLabel(sum.Pass())},
	}
	for _, item := range items {
		pdf.CellFormat(40, 6, item.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(90, 6, item.value, "", 1, "L", false, 0, "")
	}

	if sum.Digest != "" {
		png, err := SummaryQR(sum, 256)
		if err != nil {
			return fmt.Errorf("summary qr: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(digestImage, opts, bytes.NewReader(png))
		pdf.ImageOptions(digestImage, 150, top, 40, 40, false, opts, 0, "")
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetXY(15, top+float64(len(items))*6+2)
		pdf.MultiCell(0, 4, "Digest "+sum.Digest, "", "L", false)
	}
	pdf.SetY(top + 44)
	return nil
}

func addBlocksSection(pdf *gofpdf.Fpdf, records []common.BlockRecord) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Blocks")
	pdf.Ln(9)

	if len(records) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, "No blocks decoded.", "", "L", false)
		return
	}

	headers := []string{"File", "Format", "Samples", "Min", "Max", "Result"}
	widths := []float64{62, 18, 20, 24, 24, 32}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, rec := range records {
		values := []string{
			rec.Path,
			emptyFallback(rec.Format, "-"),
			strconv.Itoa(rec.SampleCount),
			"-",
			"-",
			"OK",
		}
		if rec.OK() {
			values[3] = strconv.FormatInt(int64(rec.Min), 10)
			values[4] = strconv.FormatInt(int64(rec.Max), 10)
		} else {
			values[5] = rec.Error
		}
		renderTableRow(pdf, widths, values, 5.0)
	}
	pdf.Ln(4)
}

func renderTableRow(pdf *gofpdf.Fpdf, widths []float64, values []string, lineHeight float64) {
	xStart := pdf.GetX()
	yStart := pdf.GetY()
	maxLines := 1
	splitCols := make([][]string, len(values))
	for i, val := range values {
		text := strings.TrimSpace(val)
		if text == "" {
			text = "-"
		}
		lines := pdf.SplitText(text, widths[i]-2)
		if len(lines) == 0 {
			lines = []string{""}
		}
		splitCols[i] = lines
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}
	rowHeight := float64(maxLines) * lineHeight
	x := xStart
	for i, lines := range splitCols {
		pdf.SetXY(x, yStart)
		pdf.MultiCell(widths[i], lineHeight, strings.Join(lines, "\n"), "1", "L", false)
		x += widths[i]
	}
	pdf.SetXY(xStart, yStart+rowHeight)
}

func passLabel(pass bool) string {
	if pass {
		return "PASS"
	}
	return "FAIL"
}

func emptyFallback(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}
