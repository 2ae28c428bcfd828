package export

import (
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rohanthewiz/serr"
	"github.com/spf13/afero"

	"github.com/jadenpxrk/tally/internal/analyzer"
	"github.com/jadenpxrk/tally/internal/report"
)

// CSV writes four files next to the requested path, named after it with its
// extension removed: _file_types, _files, _largest_files and _summary.
type CSV struct {
	Fs afero.Fs
}

func (e *CSV) Extension() string { return "csv" }

// Paths returns the files Export writes for path.
func (e *CSV) Paths(path string) []string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return []string{
		base + "_file_types.csv",
		base + "_files.csv",
		base + "_largest_files.csv",
		base + "_summary.csv",
	}
}

func (e *CSV) Export(res *analyzer.Result, path string) error {
	fsys := fsOrOS(e.Fs)
	paths := e.Paths(path)
	tables := [][][]string{
		fileTypeRows(res),
		fileRows(res),
		largestRows(res),
		summaryRows(res),
	}
	for i, rows := range tables {
		if err := writeCSV(fsys, paths[i], rows); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(fsys afero.Fs, path string, rows [][]string) error {
	f, err := create(fsys, path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return serr.Wrap(err, "failed to write "+path)
	}
	return f.Close()
}

func fileTypeRows(res *analyzer.Result) [][]string {
	rows := [][]string{{"File Type", "Count", "Lines", "Size (bytes)", "Size (MB)", "Percentage of Total Files"}}
	for _, row := range report.Categories(res) {
		rows = append(rows, []string{
			row.Category,
			itoa(row.Files),
			itoa(row.Lines),
			itoa(row.Size),
			fmt.Sprintf("%.2f", float64(row.Size)/(1024*1024)),
			fmt.Sprintf("%.1f", row.Percent),
		})
	}
	return rows
}

func fileRows(res *analyzer.Result) [][]string {
	rows := [][]string{{
		"File Path", "File Name", "File Type", "Extension", "Size (bytes)",
		"Size (KB)", "Size (MB)", "Total Lines", "Code Lines",
		"Comment Lines", "Blank Lines", "Comment Ratio (%)", "Last Modified",
	}}
	for _, f := range res.Files {
		modified := ""
		if !f.LastModified.IsZero() {
			modified = f.LastModified.Format(time.RFC3339)
		}
		rows = append(rows, []string{
			f.Path,
			f.Name,
			f.Category,
			f.Extension,
			itoa(f.Size),
			fmt.Sprintf("%.1f", f.SizeKB()),
			fmt.Sprintf("%.2f", f.SizeMB()),
			strconv.Itoa(f.Lines),
			strconv.Itoa(f.CodeLines),
			strconv.Itoa(f.CommentLines),
			strconv.Itoa(f.BlankLines),
			fmt.Sprintf("%.1f", f.CommentRatio()),
			modified,
		})
	}
	return rows
}

func largestRows(res *analyzer.Result) [][]string {
	rows := [][]string{{
		"Rank", "File Name", "File Type", "Size (bytes)", "Size (MB)",
		"Total Lines", "Code Lines", "Comment Lines", "Blank Lines",
	}}
	for i, f := range report.Top(res, analyzer.DefaultTopN) {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			f.Name,
			f.Category,
			itoa(f.Size),
			fmt.Sprintf("%.2f", f.SizeMB()),
			strconv.Itoa(f.Lines),
			strconv.Itoa(f.CodeLines),
			strconv.Itoa(f.CommentLines),
			strconv.Itoa(f.BlankLines),
		})
	}
	return rows
}

func summaryRows(res *analyzer.Result) [][]string {
	s := res.Stats
	rows := [][]string{
		{"Metric", "Value"},
		{"Project Path", res.ProjectPath},
		{"Analysis Date", res.AnalyzedAt.Format(time.RFC3339)},
		{"Analysis Duration (seconds)", fmt.Sprintf("%.2f", res.Duration.Seconds())},
		{"Total Files", itoa(s.TotalFiles)},
		{"Total Directories", itoa(s.TotalDirs)},
		{"Total Lines of Code", itoa(s.TotalLines)},
		{"Total Size (bytes)", itoa(s.TotalSize)},
		{"Total Size (MB)", fmt.Sprintf("%.2f", s.TotalSizeMB())},
		{"Unique File Types", strconv.Itoa(s.UniqueFileTypes())},
		{"Average File Size (bytes)", fmt.Sprintf("%.1f", s.AverageFileSize())},
		{"Average Lines per File", fmt.Sprintf("%.1f", s.AverageLinesPerFile())},
	}
	if s.TotalTokens > 0 {
		rows = append(rows, []string{"Total Tokens", itoa(s.TotalTokens)})
	}
	return rows
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
