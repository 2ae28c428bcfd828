package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/jadenpxrk/tally/internal/analyzer"
)

func fixture() *analyzer.Result {
	modified := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	files := []*analyzer.FileRecord{
		{Path: "/proj/main.go", Name: "main.go", Category: "Go", Extension: ".go", Size: 2048, Lines: 100, CodeLines: 80, CommentLines: 10, BlankLines: 10, LastModified: modified},
		{Path: "/proj/lib/util.py", Name: "util.py", Category: "Python", Extension: ".py", Size: 512, Lines: 20, CodeLines: 15, CommentLines: 3, BlankLines: 2, LastModified: modified},
	}
	stats := analyzer.NewProjectStats()
	top := analyzer.NewTopN(analyzer.DefaultTopN)
	for _, f := range files {
		stats.Add(f)
		top.Offer(f)
	}
	stats.AddDir()
	return &analyzer.Result{
		ProjectPath:  "/proj",
		AnalyzedAt:   time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		Duration:     250 * time.Millisecond,
		Stats:        stats,
		Files:        files,
		LargestFiles: top.Records(),
	}
}

func readCSV(t *testing.T, fsys afero.Fs, path string) [][]string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestRegistry_Lookup(t *testing.T) {
	r := Default()

	tests := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{"json", "json", false},
		{"JSON", "json", false},
		{"csv", "csv", false},
		{"txt", "txt", false},
		{"text", "txt", false},
		{" Pdf ", "pdf", false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		e, err := r.Lookup(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("Lookup(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			continue
		}
		if err == nil && e.Extension() != tt.wantExt {
			t.Errorf("Lookup(%q).Extension() = %q, want %q", tt.format, e.Extension(), tt.wantExt)
		}
	}

	if got := strings.Join(r.Formats(), ","); got != "csv,json,pdf,txt" {
		t.Errorf("Formats() = %s", got)
	}
}

func TestRegistry_RegisterIsPerInstance(t *testing.T) {
	r := NewRegistry()
	r.Register("Custom", &JSON{})
	if _, err := r.Lookup("custom"); err != nil {
		t.Errorf("registered exporter not found: %v", err)
	}
	if _, err := NewRegistry().Lookup("custom"); err == nil {
		t.Error("registration leaked into another registry")
	}
}

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	got := DefaultFilename(fixture(), "json", now)
	if got != "tally_proj_20240309_140507.json" {
		t.Errorf("DefaultFilename() = %q", got)
	}
	if got := DefaultFilename(fixture(), ".csv", now); got != "tally_proj_20240309_140507.csv" {
		t.Errorf("DefaultFilename() with dotted ext = %q", got)
	}
}

func TestJSON_Export(t *testing.T) {
	fsys := afero.NewMemMapFs()
	e := &JSON{Fs: fsys}
	if err := e.Export(fixture(), "/out/nested/report.json"); err != nil {
		t.Fatal(err)
	}

	data, err := afero.ReadFile(fsys, "/out/nested/report.json")
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{
		"project_path", "analysis_date", "analysis_duration", "summary", "file_types",
		"file_sizes", "lines_by_type", "files", "largest_files", "export_format", "export_version",
	} {
		if _, ok := doc[key]; !ok {
			t.Errorf("document missing %q", key)
		}
	}
	if doc["analysis_date"] != "2024-05-06T07:08:09Z" || doc["analysis_duration"] != 0.25 {
		t.Errorf("date/duration = %v / %v", doc["analysis_date"], doc["analysis_duration"])
	}
	summary := doc["summary"].(map[string]any)
	if summary["total_files"] != 2.0 || summary["total_directories"] != 1.0 || summary["total_lines"] != 120.0 {
		t.Errorf("summary = %v", summary)
	}
	if _, ok := summary["total_tokens"]; ok {
		t.Error("total_tokens should be omitted when zero")
	}
	files := doc["files"].([]any)
	first := files[0].(map[string]any)
	if first["type"] != "Go" || first["code_lines"] != 80.0 || first["last_modified"] != "2024-01-02T03:04:05Z" {
		t.Errorf("files[0] = %v", first)
	}
}

func TestJSON_EmptyResult(t *testing.T) {
	fsys := afero.NewMemMapFs()
	res := &analyzer.Result{ProjectPath: "/empty", Stats: analyzer.NewProjectStats()}
	if err := (&JSON{Fs: fsys}).Export(res, "/empty.json"); err != nil {
		t.Fatal(err)
	}
	data, _ := afero.ReadFile(fsys, "/empty.json")
	if !bytes.Contains(data, []byte(`"files": []`)) || !bytes.Contains(data, []byte(`"largest_files": []`)) {
		t.Errorf("expected empty arrays:\n%s", data)
	}
}

func TestCSV_Export(t *testing.T) {
	fsys := afero.NewMemMapFs()
	e := &CSV{Fs: fsys}
	if err := e.Export(fixture(), "/out/analysis.csv"); err != nil {
		t.Fatal(err)
	}

	types := readCSV(t, fsys, "/out/analysis_file_types.csv")
	if len(types) != 3 || types[0][0] != "File Type" || types[1][0] != "Go" || types[1][5] != "50.0" {
		t.Errorf("file types = %v", types)
	}

	files := readCSV(t, fsys, "/out/analysis_files.csv")
	if len(files) != 3 || len(files[0]) != 13 {
		t.Fatalf("files = %v", files)
	}
	if files[1][0] != "/proj/main.go" || files[1][5] != "2.0" || files[1][11] != "11.1" || files[1][12] != "2024-01-02T03:04:05Z" {
		t.Errorf("files row = %v", files[1])
	}

	largest := readCSV(t, fsys, "/out/analysis_largest_files.csv")
	if len(largest) != 3 || largest[1][0] != "1" || largest[1][1] != "main.go" || largest[2][1] != "util.py" {
		t.Errorf("largest = %v", largest)
	}

	summary := readCSV(t, fsys, "/out/analysis_summary.csv")
	got := map[string]string{}
	for _, row := range summary[1:] {
		got[row[0]] = row[1]
	}
	if got["Total Files"] != "2" || got["Total Directories"] != "1" || got["Analysis Duration (seconds)"] != "0.25" {
		t.Errorf("summary = %v", got)
	}
}

func TestCSV_PathsWithoutExtension(t *testing.T) {
	paths := (&CSV{}).Paths("/tmp/result")
	if paths[0] != "/tmp/result_file_types.csv" || paths[3] != "/tmp/result_summary.csv" {
		t.Errorf("Paths() = %v", paths)
	}
}

func TestText_Export(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := (&Text{Fs: fsys, Detailed: true}).Export(fixture(), "/report.txt"); err != nil {
		t.Fatal(err)
	}
	data, err := afero.ReadFile(fsys, "/report.txt")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"CODEBASE ANALYSIS SUMMARY", "LARGEST FILES:", "DETAILED METRICS:"} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("text export missing %q", want)
		}
	}
}

func TestPDF_Export(t *testing.T) {
	fsys := afero.NewMemMapFs()
	res := fixture()
	res.ProjectPath = "/projét"
	if err := (&PDF{Fs: fsys}).Export(res, "/out/report.pdf"); err != nil {
		t.Fatal(err)
	}
	data, err := afero.ReadFile(fsys, "/out/report.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", data[:min(len(data), 16)])
	}
}
