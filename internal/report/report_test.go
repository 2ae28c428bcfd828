package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jadenpxrk/tally/internal/analyzer"
)

func fixture() *analyzer.Result {
	files := []*analyzer.FileRecord{
		{Path: "/proj/main.go", Name: "main.go", Category: "Go", Size: 2048, Lines: 100, CodeLines: 80, CommentLines: 10, BlankLines: 10},
		{Path: "/proj/pkg/util.go", Name: "util.go", Category: "Go", Size: 1024, Lines: 50, CodeLines: 40, CommentLines: 5, BlankLines: 5},
		{Path: "/proj/README.md", Name: "README.md", Category: "Markdown", Size: 512, Lines: 20, CodeLines: 18, BlankLines: 2},
		{Path: "/proj/pkg/deep/x/y.py", Name: "y.py", Category: "Python", Size: 100, Lines: 5, CodeLines: 5},
	}
	return newResult("/proj", files)
}

func newResult(root string, files []*analyzer.FileRecord) *analyzer.Result {
	stats := analyzer.NewProjectStats()
	top := analyzer.NewTopN(analyzer.DefaultTopN)
	for _, f := range files {
		stats.Add(f)
		top.Offer(f)
	}
	return &analyzer.Result{
		ProjectPath:  root,
		AnalyzedAt:   time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		Duration:     1500 * time.Millisecond,
		Stats:        stats,
		Files:        files,
		LargestFiles: top.Records(),
	}
}

func TestTree(t *testing.T) {
	want := strings.Join([]string{
		"proj/",
		"├── pkg/",
		"│   ├── deep/",
		"│   │   └── x/",
		"│   │       └── y.py (Python) - 100 B, 5 lines",
		"│   └── util.go (Go) - 1.0 KiB, 50 lines",
		"├── main.go (Go) - 2.0 KiB, 100 lines",
		"└── README.md (Markdown) - 512 B, 20 lines",
	}, "\n") + "\n"

	if got := Tree(fixture(), 0); got != want {
		t.Errorf("Tree() =\n%s\nwant\n%s", got, want)
	}
}

func TestTree_DepthLimit(t *testing.T) {
	got := Tree(fixture(), 2)
	if !strings.Contains(got, "deep/") || !strings.Contains(got, "│   │   ...\n") {
		t.Errorf("expected deep/ collapsed to an ellipsis:\n%s", got)
	}
	if strings.Contains(got, "y.py") {
		t.Errorf("files below the depth limit were rendered:\n%s", got)
	}
}

func TestTree_ChildLimit(t *testing.T) {
	var files []*analyzer.FileRecord
	for i := 0; i < 25; i++ {
		name := fmt.Sprintf("f%02d.txt", i)
		files = append(files, &analyzer.FileRecord{Path: "/big/" + name, Name: name, Category: "Text"})
	}
	got := Tree(newResult("/big", files), 0)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")

	// root + 20 entries + ellipsis
	if len(lines) != 22 {
		t.Fatalf("got %d lines:\n%s", len(lines), got)
	}
	if lines[20] != "└── f19.txt (Text) - 0 B, 0 lines" || lines[21] != "..." {
		t.Errorf("unexpected tail: %q, %q", lines[20], lines[21])
	}
}

func TestTree_SingleFileRoot(t *testing.T) {
	f := &analyzer.FileRecord{Path: "/src/main.go", Name: "main.go", Category: "Go", Size: 10, Lines: 1}
	got := Tree(newResult("/src/main.go", []*analyzer.FileRecord{f}), 0)
	want := "main.go/\n└── main.go (Go) - 10 B, 1 lines\n"
	if got != want {
		t.Errorf("Tree() = %q, want %q", got, want)
	}
}

func TestCategoriesAndMetrics(t *testing.T) {
	res := fixture()

	rows := Categories(res)
	if len(rows) != 3 || rows[0].Category != "Go" || rows[0].Files != 2 || rows[0].Percent != 50 {
		t.Fatalf("Categories() = %+v", rows)
	}
	if rows[1].Category != "Markdown" || rows[2].Category != "Python" {
		t.Errorf("ties should sort by name: %+v", rows)
	}

	metrics := Metrics(res)
	if metrics[0].Category != "Go" || metrics[0].Code != 120 || metrics[0].Comments != 15 || metrics[0].Blank != 15 {
		t.Errorf("Metrics()[0] = %+v", metrics[0])
	}
	if metrics[1].Category != "Markdown" || metrics[2].Category != "Python" {
		t.Errorf("metrics not ordered by code lines: %+v", metrics)
	}
	if metrics[2].CommentRatio != 0 {
		t.Errorf("Python comment ratio = %v", metrics[2].CommentRatio)
	}
}

func TestTop(t *testing.T) {
	res := fixture()
	if got := Top(res, 2); len(got) != 2 || got[0].Name != "main.go" || got[1].Name != "util.go" {
		t.Errorf("Top(2) = %v", got)
	}
	if got := Top(res, 0); len(got) != 4 {
		t.Errorf("Top(0) returned %d records", len(got))
	}
	if got := Top(res, 99); len(got) != 4 {
		t.Errorf("Top(99) returned %d records", len(got))
	}
}

func TestTables(t *testing.T) {
	res := fixture()
	tests := []struct {
		name   string
		render func(*bytes.Buffer)
		want   []string
	}{
		{"summary", func(b *bytes.Buffer) { Summary(b, res) }, []string{"Total Files", "Total Directories", "3.6 KiB", "1.5s"}},
		{"stats", func(b *bytes.Buffer) { Stats(b, res) }, []string{"Lines of Code", "175", "0.00 MB", "1.50s"}},
		{"breakdown", func(b *bytes.Buffer) { Breakdown(b, res) }, []string{"Go", "Markdown", "50.0%", "25.0%"}},
		{"largest", func(b *bytes.Buffer) { Largest(b, res, 2) }, []string{"main.go", "util.go"}},
		{"detailed", func(b *bytes.Buffer) { Detailed(b, res) }, []string{"Python", "11.1%", "120"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.render(&buf)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}

	var buf bytes.Buffer
	Largest(&buf, res, 2)
	if strings.Contains(buf.String(), "README.md") {
		t.Errorf("Largest(2) listed a third file:\n%s", buf.String())
	}
}

func TestText(t *testing.T) {
	res := fixture()

	plain := Text(res, false)
	for _, want := range []string{
		"CODEBASE ANALYSIS SUMMARY",
		"Project: /proj",
		"Analysis Date: 2024-05-06 07:08:09",
		"Analysis Duration: 1.50 seconds",
		"Total Files: 4",
		"Go: 2 files, 150 lines",
		"PROJECT STRUCTURE:",
		"└── README.md (Markdown)",
	} {
		if !strings.Contains(plain, want) {
			t.Errorf("report missing %q:\n%s", want, plain)
		}
	}
	if strings.Contains(plain, "LARGEST FILES") {
		t.Error("non-detailed report includes largest files")
	}

	detailed := Text(res, true)
	for _, want := range []string{
		"LARGEST FILES:",
		"main.go (Go): 2.0 KiB, 100 lines [80/10/10]",
		"DETAILED METRICS:",
		"Go: 120 code, 15 comments, 15 blank (11.1% comments, 2 files)",
	} {
		if !strings.Contains(detailed, want) {
			t.Errorf("detailed report missing %q:\n%s", want, detailed)
		}
	}
}
