package export

import (
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/afero"

	"github.com/jadenpxrk/tally/internal/analyzer"
	"github.com/jadenpxrk/tally/internal/report"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10
	pdfLineHeight = 6
	pdfFontSize   = 9
	pdfLargest    = 20
)

// PDF renders the summary, breakdown and largest-file tables.
type PDF struct {
	Fs afero.Fs
}

func (e *PDF) Extension() string { return "pdf" }

func (e *PDF) Export(res *analyzer.Result, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Codebase analysis: "+res.ProjectPath, true)
	pdf.SetCreator("tally", false)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	// Core fonts are cp1252; paths may not be.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	s := res.Stats

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Codebase Analysis", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", pdfFontSize)
	pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, tr(res.ProjectPath), "", "L", false)
	pdf.CellFormat(0, pdfLineHeight, res.AnalyzedAt.Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")
	pdf.Ln(pdfLineHeight)

	heading(pdf, "Summary")
	summary := [][]string{
		{"Total Files", strconv.FormatInt(s.TotalFiles, 10)},
		{"Total Directories", strconv.FormatInt(s.TotalDirs, 10)},
		{"Total Lines", strconv.FormatInt(s.TotalLines, 10)},
		{"Total Size", report.FormatSize(s.TotalSize)},
		{"Unique File Types", strconv.Itoa(s.UniqueFileTypes())},
		{"Average File Size", report.FormatSize(int64(s.AverageFileSize()))},
		{"Average Lines per File", fmt.Sprintf("%.1f", s.AverageLinesPerFile())},
		{"Analysis Duration", fmt.Sprintf("%.2f s", res.Duration.Seconds())},
	}
	if s.TotalTokens > 0 {
		summary = append(summary, []string{"Total Tokens", strconv.FormatInt(s.TotalTokens, 10)})
	}
	table(pdf, []float64{70, 60}, []string{"Metric", "Value"}, summary)

	heading(pdf, "File Types")
	var breakdown [][]string
	for _, row := range report.Categories(res) {
		breakdown = append(breakdown, []string{
			tr(row.Category),
			strconv.FormatInt(row.Files, 10),
			strconv.FormatInt(row.Lines, 10),
			report.FormatSize(row.Size),
			fmt.Sprintf("%.1f%%", row.Percent),
		})
	}
	table(pdf, []float64{60, 25, 30, 35, 25}, []string{"File Type", "Files", "Lines", "Size", "% of Files"}, breakdown)

	heading(pdf, "Largest Files")
	var largest [][]string
	for i, f := range report.Top(res, pdfLargest) {
		largest = append(largest, []string{
			strconv.Itoa(i + 1),
			tr(f.Name),
			tr(f.Category),
			report.FormatSize(f.Size),
			strconv.Itoa(f.Lines),
			fmt.Sprintf("%d/%d/%d", f.CodeLines, f.CommentLines, f.BlankLines),
		})
	}
	table(pdf, []float64{10, 65, 35, 25, 20, 35}, []string{"#", "File", "Type", "Size", "Lines", "Code/Cmt/Blank"}, largest)

	if pdf.Err() {
		return serr.Wrap(pdf.Error(), "failed to render PDF")
	}

	out, err := create(fsOrOS(e.Fs), path)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := pdf.Output(out); err != nil {
		return serr.Wrap(err, "failed to save PDF to "+path)
	}
	return out.Close()
}

func heading(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", pdfFontSize+3)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, pdfLineHeight+2, title, "", 1, "L", false, 0, "")
}

// table draws a header row with a grey fill followed by the body rows.
func table(pdf *gofpdf.Fpdf, widths []float64, header []string, rows [][]string) {
	pdf.SetFont("Helvetica", "B", pdfFontSize)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range header {
		pdf.CellFormat(widths[i], pdfLineHeight, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", pdfFontSize)
	for _, row := range rows {
		for i, cell := range row {
			align := "L"
			if i > 0 {
				align = "R"
			}
			pdf.CellFormat(widths[i], pdfLineHeight, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(pdfLineHeight)
}
