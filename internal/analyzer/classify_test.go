package analyzer

import "testing"

func TestClassifyLines(t *testing.T) {
	python := CommentPattern{Single: "#"}
	cLike := CommentPattern{Single: "//", MultiStart: "/*", MultiEnd: "*/"}
	docstring := CommentPattern{Single: "#", MultiStart: `"""`, MultiEnd: `"""`}

	tests := []struct {
		name    string
		lines   []string
		pattern CommentPattern
		want    LineCounts
	}{
		{
			name:    "python single-line comments",
			lines:   []string{"", "# comment", "x = 1"},
			pattern: python,
			want:    LineCounts{Code: 1, Comment: 1, Blank: 1},
		},
		{
			name:    "c block spanning lines",
			lines:   []string{"/* start", "still in comment", "end */", "int x;"},
			pattern: cLike,
			want:    LineCounts{Code: 1, Comment: 3},
		},
		{
			name:    "block opened and closed on one line",
			lines:   []string{"/* header */", "int x;", "int y;"},
			pattern: cLike,
			want:    LineCounts{Code: 2, Comment: 1},
		},
		{
			name:    "identical delimiters on one line",
			lines:   []string{`"""Module docstring."""`, "import os"},
			pattern: docstring,
			want:    LineCounts{Code: 1, Comment: 1},
		},
		{
			name:    "identical delimiters across lines",
			lines:   []string{`"""`, "Docs here.", `"""`, "x = 1"},
			pattern: docstring,
			want:    LineCounts{Code: 1, Comment: 3},
		},
		{
			name:    "empty pattern counts everything as code",
			lines:   []string{"{", `  "a": 1 // not a comment`, "", "}"},
			pattern: CommentPattern{},
			want:    LineCounts{Code: 3, Blank: 1},
		},
		{
			name:    "whitespace-only lines are blank",
			lines:   []string{"   ", "\t", "\r\n"},
			pattern: cLike,
			want:    LineCounts{Blank: 3},
		},
		{
			name:    "indented single-line comment",
			lines:   []string{"    // indented", "return 0;"},
			pattern: cLike,
			want:    LineCounts{Code: 1, Comment: 1},
		},
		{
			name:    "blank lines inside a block stay blank",
			lines:   []string{"/*", "", "*/"},
			pattern: cLike,
			want:    LineCounts{Comment: 2, Blank: 1},
		},
		{
			name:    "marker inside a string is still a comment",
			lines:   []string{`s := "/* not really"`, "x := 1", "*/"},
			pattern: cLike,
			want:    LineCounts{Comment: 3},
		},
		{
			name:    "start marker without end marker stays open",
			lines:   []string{"/* a", "b", "c"},
			pattern: CommentPattern{MultiStart: "/*"},
			want:    LineCounts{Comment: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyLines(tt.lines, tt.pattern)
			if got != tt.want {
				t.Errorf("ClassifyLines() = %+v, want %+v", got, tt.want)
			}
			if got.Total() != len(tt.lines) {
				t.Errorf("Total() = %d, want %d", got.Total(), len(tt.lines))
			}
		})
	}
}

func TestClassifier_SameLineBlockLeavesStateClosed(t *testing.T) {
	c := NewClassifier(CommentPattern{Single: "//", MultiStart: "/*", MultiEnd: "*/"})
	c.Add("/* comment */")
	if c.InMultiline() {
		t.Fatal("expected classifier to be outside a block after a same-line comment")
	}
	c.Add("/* open")
	if !c.InMultiline() {
		t.Fatal("expected classifier to be inside a block after an unterminated start")
	}
	c.Add("close */")
	if c.InMultiline() {
		t.Fatal("expected block to be closed")
	}
}
