package subtitle

import (
	"strings"
)

// walks SBV lines once, yielding cues in input order
type Scanner struct {
	lines []string
	pos   int
	index int
}

func NewScanner(lines []string) *Scanner {
	return &Scanner{lines: lines}
}

// returns the next cue, or false once input is exhausted. Lines outside a
// cue that are not timing lines are dropped.
func (s *Scanner) Next() (Cue, bool) {
	for s.pos < len(s.lines) {
		line := s.lines[s.pos]
		s.pos++

		if isBlank(line) {
			continue
		}

		ts, ok := MatchTimestampLine(line)
		if !ok {
			continue
		}

		s.index++
		cue := Cue{Index: s.index, Start: ts.Start, End: ts.End}
		for s.pos < len(s.lines) {
			next := s.lines[s.pos]
			if isBlank(next) || isTimestampLine(next) {
				break
			}
			cue.Lines = append(cue.Lines, next)
			s.pos++
		}
		return cue, true
	}
	return Cue{}, false
}

// number of cues returned so far
func (s *Scanner) Count() int {
	return s.index
}

func ScanSBV(lines []string) []Cue {
	var cues []Cue
	scanner := NewScanner(lines)
	for {
		cue, ok := scanner.Next()
		if !ok {
			return cues
		}
		cues = append(cues, cue)
	}
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
