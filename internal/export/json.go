package export

import (
	"encoding/json"
	"time"

	"github.com/rohanthewiz/serr"
	"github.com/spf13/afero"

	"github.com/jadenpxrk/tally/internal/analyzer"
)

// JSON writes the whole result as one indented document.
type JSON struct {
	Fs afero.Fs
}

type jsonSummary struct {
	TotalFiles          int64   `json:"total_files"`
	TotalDirectories    int64   `json:"total_directories"`
	TotalLines          int64   `json:"total_lines"`
	TotalSize           int64   `json:"total_size"`
	TotalSizeMB         float64 `json:"total_size_mb"`
	UniqueFileTypes     int     `json:"unique_file_types"`
	AverageFileSize     float64 `json:"average_file_size"`
	AverageLinesPerFile float64 `json:"average_lines_per_file"`
	TotalTokens         int64   `json:"total_tokens,omitempty"`
}

type jsonDocument struct {
	ProjectPath      string                 `json:"project_path"`
	AnalysisDate     string                 `json:"analysis_date"`
	AnalysisDuration float64                `json:"analysis_duration"` // seconds
	Summary          jsonSummary            `json:"summary"`
	FileTypes        map[string]int64       `json:"file_types"`
	FileSizes        map[string]int64       `json:"file_sizes"`
	LinesByType      map[string]int64       `json:"lines_by_type"`
	Files            []*analyzer.FileRecord `json:"files"`
	LargestFiles     []*analyzer.FileRecord `json:"largest_files"`
	ExportFormat     string                 `json:"export_format"`
	ExportVersion    string                 `json:"export_version"`
}

func (e *JSON) Extension() string { return "json" }

func (e *JSON) Export(res *analyzer.Result, path string) error {
	f, err := create(fsOrOS(e.Fs), path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newJSONDocument(res)); err != nil {
		return serr.Wrap(err, "failed to write JSON export")
	}
	return f.Close()
}

func newJSONDocument(res *analyzer.Result) jsonDocument {
	s := res.Stats
	files := res.Files
	if files == nil {
		files = []*analyzer.FileRecord{}
	}
	largest := res.LargestFiles
	if largest == nil {
		largest = []*analyzer.FileRecord{}
	}
	return jsonDocument{
		ProjectPath:      res.ProjectPath,
		AnalysisDate:     res.AnalyzedAt.Format(time.RFC3339),
		AnalysisDuration: res.Duration.Seconds(),
		Summary: jsonSummary{
			TotalFiles:          s.TotalFiles,
			TotalDirectories:    s.TotalDirs,
			TotalLines:          s.TotalLines,
			TotalSize:           s.TotalSize,
			TotalSizeMB:         s.TotalSizeMB(),
			UniqueFileTypes:     s.UniqueFileTypes(),
			AverageFileSize:     s.AverageFileSize(),
			AverageLinesPerFile: s.AverageLinesPerFile(),
			TotalTokens:         s.TotalTokens,
		},
		FileTypes:     s.FileTypes,
		FileSizes:     s.FileSizes,
		LinesByType:   s.LinesByType,
		Files:         files,
		LargestFiles:  largest,
		ExportFormat:  "json",
		ExportVersion: FormatVersion,
	}
}
