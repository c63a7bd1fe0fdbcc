package subtitle

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// unanchored: a timing line may carry surrounding text
var timingLineRegex = regexp.MustCompile(
	`(\d+:\d+:\d+\.\d+),(\d+:\d+:\d+\.\d+)`,
)

var sbvTimestampRegex = regexp.MustCompile(`^(\d+):(\d+):(\d+)\.(\d+)$`)

// sub-second precision accepted by the strict parser (100ns ticks)
const maxFractionDigits = 7

var ErrInvalidTimestamp = errors.New("invalid SBV timestamp")

// result of classifying a line
type TimestampLine struct {
	Start string
	End   string
}

// reports whether line is an SBV timing line and captures both timestamps
func MatchTimestampLine(line string) (TimestampLine, bool) {
	m := timingLineRegex.FindStringSubmatch(line)
	if m == nil {
		return TimestampLine{}, false
	}
	return TimestampLine{Start: m[1], End: m[2]}, true
}

func isTimestampLine(line string) bool {
	return timingLineRegex.MatchString(line)
}

// structured clock time of one SBV timestamp
type Timestamp struct {
	Hours        int
	Minutes      int
	Seconds      int
	Milliseconds int
}

// 00:00:00,000
func (t Timestamp) SRT() string {
	return fmt.Sprintf(
		"%02d:%02d:%02d,%03d",
		t.Hours, t.Minutes, t.Seconds, t.Milliseconds,
	)
}

// parses h:mm:ss.ttt. The fraction is a decimal fraction of a second, so
// "1.5" is 1s500ms. Hours must be below 24, minutes and seconds below 60.
func ParseSBVTimestamp(raw string) (Timestamp, error) {
	m := sbvTimestampRegex.FindStringSubmatch(raw)
	if m == nil {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
	}

	h, err := strconv.Atoi(m[1])
	if err != nil || h > 23 {
		return Timestamp{}, fmt.Errorf("%w: hours out of range in %q", ErrInvalidTimestamp, raw)
	}
	mins, err := strconv.Atoi(m[2])
	if err != nil || mins > 59 {
		return Timestamp{}, fmt.Errorf("%w: minutes out of range in %q", ErrInvalidTimestamp, raw)
	}
	s, err := strconv.Atoi(m[3])
	if err != nil || s > 59 {
		return Timestamp{}, fmt.Errorf("%w: seconds out of range in %q", ErrInvalidTimestamp, raw)
	}

	frac := m[4]
	if len(frac) > maxFractionDigits {
		return Timestamp{}, fmt.Errorf("%w: fraction too long in %q", ErrInvalidTimestamp, raw)
	}
	// milliseconds are the first three fractional digits, right padded
	frac = (frac + "000")[:3]
	ms, err := strconv.Atoi(frac)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
	}

	return Timestamp{Hours: h, Minutes: mins, Seconds: s, Milliseconds: ms}, nil
}

// converts an SBV timestamp to SRT form. When the strict parse fails the
// raw text is kept as is with '.' replaced by ','.
func FormatSRTTimestamp(raw string) string {
	ts, err := ParseSBVTimestamp(raw)
	if err != nil {
		return strings.ReplaceAll(raw, ".", ",")
	}
	return ts.SRT()
}
