package report

import (
	"fmt"
	"strings"

	"github.com/jadenpxrk/tally/internal/analyzer"
)

const (
	// textTreeDepth is the structure depth shown in the text report.
	textTreeDepth = 3
	// textLargest is the number of largest files listed in a detailed report.
	textLargest = 10
)

// Text renders the full plain-text report. Largest files and per-category
// line metrics are included only when detailed is set.
func Text(res *analyzer.Result, detailed bool) string {
	var b strings.Builder
	s := res.Stats

	rule := strings.Repeat("=", 60)
	b.WriteString(rule + "\n")
	b.WriteString("CODEBASE ANALYSIS SUMMARY\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Project: %s\n", res.ProjectPath)
	fmt.Fprintf(&b, "Analysis Date: %s\n", res.AnalyzedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Analysis Duration: %.2f seconds\n\n", res.Duration.Seconds())

	section(&b, "SUMMARY STATISTICS")
	fmt.Fprintf(&b, "Total Files: %s\n", comma(s.TotalFiles))
	fmt.Fprintf(&b, "Total Directories: %s\n", comma(s.TotalDirs))
	fmt.Fprintf(&b, "Total Lines of Code: %s\n", comma(s.TotalLines))
	fmt.Fprintf(&b, "Total Size: %.2f MB\n", s.TotalSizeMB())
	fmt.Fprintf(&b, "Unique File Types: %d\n", s.UniqueFileTypes())
	fmt.Fprintf(&b, "Average File Size: %s\n", FormatSize(int64(s.AverageFileSize())))
	fmt.Fprintf(&b, "Average Lines per File: %.1f\n", s.AverageLinesPerFile())
	if s.TotalTokens > 0 {
		fmt.Fprintf(&b, "Total Tokens: %s\n", comma(s.TotalTokens))
	}
	b.WriteString("\n")

	section(&b, "FILE TYPES BREAKDOWN")
	for _, row := range Categories(res) {
		fmt.Fprintf(&b, "%s: %d files, %s lines, %.2f MB (%.1f%%)\n",
			row.Category, row.Files, comma(row.Lines), float64(row.Size)/(1024*1024), row.Percent)
	}
	b.WriteString("\n")

	section(&b, "PROJECT STRUCTURE")
	b.WriteString(Tree(res, textTreeDepth))
	b.WriteString("\n")

	if !detailed {
		return b.String()
	}

	section(&b, "LARGEST FILES")
	for _, f := range Top(res, textLargest) {
		fmt.Fprintf(&b, "%s (%s): %s, %d lines [%d/%d/%d]\n",
			f.Name, f.Category, FormatSize(f.Size), f.Lines, f.CodeLines, f.CommentLines, f.BlankLines)
	}
	b.WriteString("\n")

	section(&b, "DETAILED METRICS")
	for _, m := range Metrics(res) {
		fmt.Fprintf(&b, "%s: %s code, %s comments, %s blank (%.1f%% comments, %d files)\n",
			m.Category, comma(m.Code), comma(m.Comments), comma(m.Blank), m.CommentRatio, m.Files)
	}
	b.WriteString("\n")

	return b.String()
}

func section(b *strings.Builder, title string) {
	b.WriteString(title + ":\n")
	b.WriteString(strings.Repeat("-", len(title)+1) + "\n")
}
