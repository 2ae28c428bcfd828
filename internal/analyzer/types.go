package analyzer

import (
	"sort"
	"time"
)

// FileRecord holds the analysis result for a single file.
type FileRecord struct {
	Path         string    `json:"path"`
	Name         string    `json:"name"`
	Category     string    `json:"type"`
	Extension    string    `json:"extension"`
	Size         int64     `json:"size"`
	Lines        int       `json:"lines"`
	CodeLines    int       `json:"code_lines"`
	CommentLines int       `json:"comment_lines"`
	BlankLines   int       `json:"blank_lines"`
	Tokens       int       `json:"tokens,omitempty"` // Populated only when a token counter is configured
	LastModified time.Time `json:"last_modified"`
}

// SizeKB returns the file size in kilobytes.
func (r *FileRecord) SizeKB() float64 {
	return float64(r.Size) / 1024
}

// SizeMB returns the file size in megabytes.
func (r *FileRecord) SizeMB() float64 {
	return float64(r.Size) / (1024 * 1024)
}

// CommentRatio returns comment lines as a percentage of code plus comment lines.
func (r *FileRecord) CommentRatio() float64 {
	total := r.CodeLines + r.CommentLines
	if total == 0 {
		return 0
	}
	return float64(r.CommentLines) / float64(total) * 100
}

// ProjectStats holds aggregated totals for one traversal.
type ProjectStats struct {
	TotalFiles  int64 `json:"total_files"`
	TotalDirs   int64 `json:"total_dirs"`
	TotalLines  int64 `json:"total_lines"`
	TotalSize   int64 `json:"total_size"`
	TotalTokens int64 `json:"total_tokens,omitempty"`

	FileTypes   map[string]int64 `json:"file_types"`    // file count by category
	FileSizes   map[string]int64 `json:"file_sizes"`    // bytes by category
	LinesByType map[string]int64 `json:"lines_by_type"` // lines by category

	CodeByType     map[string]int64 `json:"code_by_type"`
	CommentsByType map[string]int64 `json:"comments_by_type"`
	BlanksByType   map[string]int64 `json:"blanks_by_type"`
}

// NewProjectStats returns empty stats with all maps allocated.
func NewProjectStats() *ProjectStats {
	return &ProjectStats{
		FileTypes:      make(map[string]int64),
		FileSizes:      make(map[string]int64),
		LinesByType:    make(map[string]int64),
		CodeByType:     make(map[string]int64),
		CommentsByType: make(map[string]int64),
		BlanksByType:   make(map[string]int64),
	}
}

// Add folds a file record into the running totals.
func (s *ProjectStats) Add(r *FileRecord) {
	s.TotalFiles++
	s.TotalSize += r.Size
	s.TotalLines += int64(r.Lines)
	s.TotalTokens += int64(r.Tokens)

	s.FileTypes[r.Category]++
	s.FileSizes[r.Category] += r.Size
	s.LinesByType[r.Category] += int64(r.Lines)
	s.CodeByType[r.Category] += int64(r.CodeLines)
	s.CommentsByType[r.Category] += int64(r.CommentLines)
	s.BlanksByType[r.Category] += int64(r.BlankLines)
}

// AddDir records one visited directory.
func (s *ProjectStats) AddDir() {
	s.TotalDirs++
}

// TotalSizeMB returns the total size in megabytes.
func (s *ProjectStats) TotalSizeMB() float64 {
	return float64(s.TotalSize) / (1024 * 1024)
}

// UniqueFileTypes returns the number of distinct categories seen.
func (s *ProjectStats) UniqueFileTypes() int {
	return len(s.FileTypes)
}

// AverageFileSize returns the mean file size in bytes.
func (s *ProjectStats) AverageFileSize() float64 {
	if s.TotalFiles == 0 {
		return 0
	}
	return float64(s.TotalSize) / float64(s.TotalFiles)
}

// AverageLinesPerFile returns the mean line count per file.
func (s *ProjectStats) AverageLinesPerFile() float64 {
	if s.TotalFiles == 0 {
		return 0
	}
	return float64(s.TotalLines) / float64(s.TotalFiles)
}

// Categories returns the categories seen, most files first, ties by name.
func (s *ProjectStats) Categories() []string {
	cats := make([]string, 0, len(s.FileTypes))
	for c := range s.FileTypes {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if s.FileTypes[cats[i]] != s.FileTypes[cats[j]] {
			return s.FileTypes[cats[i]] > s.FileTypes[cats[j]]
		}
		return cats[i] < cats[j]
	})
	return cats
}

// Result is the complete output of one analysis run.
type Result struct {
	ProjectPath  string        `json:"project_path"`
	AnalyzedAt   time.Time     `json:"analysis_date"`
	Duration     time.Duration `json:"analysis_duration"`
	Stats        *ProjectStats `json:"stats"`
	Files        []*FileRecord `json:"files"`
	LargestFiles []*FileRecord `json:"largest_files"`
}

// FilesByCategory returns all files of the given category in traversal order.
func (r *Result) FilesByCategory(category string) []*FileRecord {
	var out []*FileRecord
	for _, f := range r.Files {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

// MostLines returns up to n files with the highest line counts.
func (r *Result) MostLines(n int) []*FileRecord {
	out := make([]*FileRecord, len(r.Files))
	copy(out, r.Files)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Lines > out[j].Lines
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
