package analyzer

import "strings"

// CommentPattern describes the comment syntax of one category.
// Any field may be empty; an empty pattern classifies every non-blank line as code.
type CommentPattern struct {
	Single     string `mapstructure:"single" json:"single,omitempty" toml:"single"`
	MultiStart string `mapstructure:"multi_start" json:"multi_start,omitempty" toml:"multi_start"`
	MultiEnd   string `mapstructure:"multi_end" json:"multi_end,omitempty" toml:"multi_end"`
}

// LineCounts holds per-kind line totals.
type LineCounts struct {
	Code    int
	Comment int
	Blank   int
}

// Total returns the number of classified lines.
func (c LineCounts) Total() int {
	return c.Code + c.Comment + c.Blank
}

// Classifier counts code, comment and blank lines one line at a time.
// It is a heuristic, not a lexer: comment markers inside string literals
// are treated as real comment markers.
type Classifier struct {
	pattern     CommentPattern
	inMultiline bool
	counts      LineCounts
}

// NewClassifier returns a classifier for the given comment syntax.
func NewClassifier(pattern CommentPattern) *Classifier {
	return &Classifier{pattern: pattern}
}

// Add classifies one line. Trailing newline characters are ignored.
func (c *Classifier) Add(line string) {
	stripped := strings.TrimSpace(line)
	p := c.pattern

	switch {
	case stripped == "":
		c.counts.Blank++

	case !c.inMultiline && p.MultiStart != "" && strings.Contains(stripped, p.MultiStart):
		c.counts.Comment++
		// A block that also closes on its opening line leaves no open state.
		// The end marker is searched after the start marker so that identical
		// delimiters (Python's """) are not mistaken for a close.
		rest := stripped[strings.Index(stripped, p.MultiStart)+len(p.MultiStart):]
		c.inMultiline = p.MultiEnd == "" || !strings.Contains(rest, p.MultiEnd)

	case c.inMultiline && p.MultiEnd != "" && strings.Contains(stripped, p.MultiEnd):
		c.counts.Comment++
		c.inMultiline = false

	case c.inMultiline:
		c.counts.Comment++

	case p.Single != "" && strings.HasPrefix(stripped, p.Single):
		c.counts.Comment++

	default:
		c.counts.Code++
	}
}

// Counts returns the totals accumulated so far.
func (c *Classifier) Counts() LineCounts {
	return c.counts
}

// InMultiline reports whether the classifier is inside an open multi-line comment.
func (c *Classifier) InMultiline() bool {
	return c.inMultiline
}

// ClassifyLines classifies a complete sequence of lines.
func ClassifyLines(lines []string, pattern CommentPattern) LineCounts {
	c := NewClassifier(pattern)
	for _, line := range lines {
		c.Add(line)
	}
	return c.Counts()
}
