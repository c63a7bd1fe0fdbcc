package subtitle

import (
	"strings"
	"unicode"
)

// represents single subtitle cue
type Cue struct {
	Index int
	// raw SBV timestamps as captured from the timing line
	Start string
	End   string
	Lines []string
}

// content block with trailing whitespace of the whole block removed
func (c Cue) Text() string {
	return strings.TrimRightFunc(strings.Join(c.Lines, "\n"), unicode.IsSpace)
}

// SRT timing line: 00:00:00,000 --> 00:00:00,000
func (c Cue) Timing() string {
	return FormatSRTTimestamp(c.Start) + " --> " + FormatSRTTimestamp(c.End)
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatSBV Format = "sbv"
)
