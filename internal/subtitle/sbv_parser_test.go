package subtitle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScanSBV(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []Cue
	}{
		{
			name: "two cues",
			lines: []string{
				"0:00:01.000,0:00:04.000",
				"Hello world",
				"",
				"0:00:05.500,0:00:07.250",
				"Second line",
			},
			want: []Cue{
				{Index: 1, Start: "0:00:01.000", End: "0:00:04.000", Lines: []string{"Hello world"}},
				{Index: 2, Start: "0:00:05.500", End: "0:00:07.250", Lines: []string{"Second line"}},
			},
		},
		{
			name: "multi-line content",
			lines: []string{
				"0:00:01.000,0:00:04.000",
				"first",
				"  second  ",
				"third",
			},
			want: []Cue{
				{Index: 1, Start: "0:00:01.000", End: "0:00:04.000", Lines: []string{"first", "  second  ", "third"}},
			},
		},
		{
			name: "leading garbage dropped",
			lines: []string{
				"Kind: captions",
				"Language: en",
				"",
				"0:00:01.000,0:00:02.000",
				"text",
			},
			want: []Cue{
				{Index: 1, Start: "0:00:01.000", End: "0:00:02.000", Lines: []string{"text"}},
			},
		},
		{
			name: "timing line ends content",
			lines: []string{
				"0:00:01.000,0:00:02.000",
				"0:00:03.000,0:00:04.000",
				"after",
			},
			want: []Cue{
				{Index: 1, Start: "0:00:01.000", End: "0:00:02.000"},
				{Index: 2, Start: "0:00:03.000", End: "0:00:04.000", Lines: []string{"after"}},
			},
		},
		{
			name: "blank runs collapse",
			lines: []string{
				"",
				"   ",
				"0:00:01.000,0:00:02.000",
				"a",
				"",
				"",
				"\t",
				"0:00:03.000,0:00:04.000",
				"b",
				"",
				"",
			},
			want: []Cue{
				{Index: 1, Start: "0:00:01.000", End: "0:00:02.000", Lines: []string{"a"}},
				{Index: 2, Start: "0:00:03.000", End: "0:00:04.000", Lines: []string{"b"}},
			},
		},
		{
			name: "stray line after blank is skipped",
			lines: []string{
				"0:00:01.000,0:00:02.000",
				"a",
				"",
				"orphan",
				"0:00:03.000,0:00:04.000",
				"b",
			},
			want: []Cue{
				{Index: 1, Start: "0:00:01.000", End: "0:00:02.000", Lines: []string{"a"}},
				{Index: 2, Start: "0:00:03.000", End: "0:00:04.000", Lines: []string{"b"}},
			},
		},
		{
			name:  "no cues",
			lines: []string{"just text", "", "more"},
			want:  nil,
		},
		{
			name:  "empty input",
			lines: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanSBV(tt.lines)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ScanSBV() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScannerCount(t *testing.T) {
	scanner := NewScanner([]string{
		"0:00:01.000,0:00:02.000", "a", "",
		"0:00:03.000,0:00:04.000", "b",
	})
	for {
		if _, ok := scanner.Next(); !ok {
			break
		}
	}
	if scanner.Count() != 2 {
		t.Errorf("Count() = %d, want 2", scanner.Count())
	}
	if _, ok := scanner.Next(); ok {
		t.Error("Next() after exhaustion returned a cue")
	}
}

func TestCueText(t *testing.T) {
	cue := Cue{Lines: []string{"one  ", "two\t ", " "}}
	if got, want := cue.Text(), "one  \ntwo"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if got := (Cue{}).Text(); got != "" {
		t.Errorf("empty cue Text() = %q, want empty", got)
	}
}

func TestReadLines(t *testing.T) {
	content := "\ufeff0:00:01.000,0:00:04.000\r\nHello, world!\r\n\r\n" +
		"0:00:05.500,0:00:08.200\r\nThis is a test.\r\nWith multiple lines.\r\n"

	tmpDir := t.TempDir()
	sbvPath := filepath.Join(tmpDir, "captions.sbv")
	if err := os.WriteFile(sbvPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	lines, err := ReadLines(sbvPath)
	if err != nil {
		t.Fatalf("failed to read SBV file: %v", err)
	}

	want := []string{
		"0:00:01.000,0:00:04.000",
		"Hello, world!",
		"",
		"0:00:05.500,0:00:08.200",
		"This is a test.",
		"With multiple lines.",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("ReadLines() mismatch (-want +got):\n%s", diff)
	}

	cues := ScanSBV(lines)
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	expectedText := "This is a test.\nWith multiple lines."
	if got := cues[1].Text(); got != expectedText {
		t.Errorf("cue 1: expected %q, got %q", expectedText, got)
	}
}

func TestReadLinesMissingFile(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "missing.sbv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got: %v", err)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\n\n", []string{"a", ""}},
		{"a\r\nb\rc\nd", []string{"a", "b", "c", "d"}},
		{"\n", []string{""}},
	}

	for _, tt := range tests {
		got := splitLines([]byte(tt.in))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("splitLines(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}
