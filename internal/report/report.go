// Package report renders analysis results as terminal tables, a directory
// tree, and a plain-text report.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/jadenpxrk/tally/internal/analyzer"
)

// CategoryRow is one line of the per-category breakdown.
type CategoryRow struct {
	Category string
	Files    int64
	Lines    int64
	Size     int64
	Percent  float64 // share of all files
}

// CategoryMetrics is the line-kind split for one category.
type CategoryMetrics struct {
	Category     string
	Files        int64
	Code         int64
	Comments     int64
	Blank        int64
	CommentRatio float64
}

// Categories returns breakdown rows ordered by file count, then name.
func Categories(res *analyzer.Result) []CategoryRow {
	s := res.Stats
	rows := make([]CategoryRow, 0, len(s.FileTypes))
	for _, cat := range s.Categories() {
		row := CategoryRow{
			Category: cat,
			Files:    s.FileTypes[cat],
			Lines:    s.LinesByType[cat],
			Size:     s.FileSizes[cat],
		}
		if s.TotalFiles > 0 {
			row.Percent = float64(row.Files) / float64(s.TotalFiles) * 100
		}
		rows = append(rows, row)
	}
	return rows
}

// Metrics returns per-category line metrics ordered by code lines, descending.
func Metrics(res *analyzer.Result) []CategoryMetrics {
	s := res.Stats
	out := make([]CategoryMetrics, 0, len(s.FileTypes))
	for _, cat := range s.Categories() {
		m := CategoryMetrics{
			Category: cat,
			Files:    s.FileTypes[cat],
			Code:     s.CodeByType[cat],
			Comments: s.CommentsByType[cat],
			Blank:    s.BlanksByType[cat],
		}
		if m.Code+m.Comments > 0 {
			m.CommentRatio = float64(m.Comments) / float64(m.Code+m.Comments) * 100
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Code > out[j].Code
	})
	return out
}

// Top returns at most n of the largest files. n <= 0 returns all tracked.
func Top(res *analyzer.Result, n int) []*analyzer.FileRecord {
	if n <= 0 || n > len(res.LargestFiles) {
		return res.LargestFiles
	}
	return res.LargestFiles[:n]
}

// FormatSize renders a byte count in binary units.
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

func comma(n int64) string {
	return humanize.Comma(n)
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetColumnSeparator("|")
	return table
}

// Summary writes the headline metrics table.
func Summary(w io.Writer, res *analyzer.Result) {
	s := res.Stats
	table := newTable(w, "Metric", "Value")

	table.Append([]string{"Project", res.ProjectPath})
	table.Append([]string{"Total Files", comma(s.TotalFiles)})
	table.Append([]string{"Total Directories", comma(s.TotalDirs)})
	table.Append([]string{"Total Lines", comma(s.TotalLines)})
	table.Append([]string{"Total Size", FormatSize(s.TotalSize)})
	table.Append([]string{"Unique File Types", strconv.Itoa(s.UniqueFileTypes())})
	table.Append([]string{"Average File Size", FormatSize(int64(s.AverageFileSize()))})
	table.Append([]string{"Average Lines per File", fmt.Sprintf("%.1f", s.AverageLinesPerFile())})
	if s.TotalTokens > 0 {
		table.Append([]string{"Total Tokens", comma(s.TotalTokens)})
	}
	table.Append([]string{"Analysis Duration", res.Duration.Round(time.Millisecond).String()})

	table.Render()
}

// Stats writes the short overview table.
func Stats(w io.Writer, res *analyzer.Result) {
	s := res.Stats
	table := newTable(w, "Metric", "Value")
	table.Append([]string{"Files", comma(s.TotalFiles)})
	table.Append([]string{"Directories", comma(s.TotalDirs)})
	table.Append([]string{"Lines of Code", comma(s.TotalLines)})
	table.Append([]string{"Size", fmt.Sprintf("%.2f MB", s.TotalSizeMB())})
	table.Append([]string{"File Types", strconv.Itoa(s.UniqueFileTypes())})
	table.Append([]string{"Analysis Time", fmt.Sprintf("%.2fs", res.Duration.Seconds())})
	table.Render()
}

// Breakdown writes one row per category.
func Breakdown(w io.Writer, res *analyzer.Result) {
	table := newTable(w, "File Type", "Files", "Lines", "Size", "% of Files")
	for _, row := range Categories(res) {
		table.Append([]string{
			row.Category,
			comma(row.Files),
			comma(row.Lines),
			FormatSize(row.Size),
			fmt.Sprintf("%.1f%%", row.Percent),
		})
	}
	table.Render()
}

// Largest writes the n largest files.
func Largest(w io.Writer, res *analyzer.Result, n int) {
	table := newTable(w, "#", "File", "Type", "Size", "Lines", "Code", "Comments", "Blank")
	for i, f := range Top(res, n) {
		table.Append([]string{
			strconv.Itoa(i + 1),
			f.Name,
			f.Category,
			FormatSize(f.Size),
			strconv.Itoa(f.Lines),
			strconv.Itoa(f.CodeLines),
			strconv.Itoa(f.CommentLines),
			strconv.Itoa(f.BlankLines),
		})
	}
	table.Render()
}

// Detailed writes the code/comment/blank split per category.
func Detailed(w io.Writer, res *analyzer.Result) {
	table := newTable(w, "File Type", "Files", "Code", "Comments", "Blank", "Comment %")
	for _, m := range Metrics(res) {
		table.Append([]string{
			m.Category,
			comma(m.Files),
			comma(m.Code),
			comma(m.Comments),
			comma(m.Blank),
			fmt.Sprintf("%.1f%%", m.CommentRatio),
		})
	}
	table.Render()
}
