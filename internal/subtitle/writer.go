package subtitle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type WriteOptions struct {
	// terminate lines with \r\n instead of \n
	CRLF bool
	// prefix the output with a UTF-8 byte order mark
	BOM bool
}

func (o WriteOptions) newline() string {
	if o.CRLF {
		return "\r\n"
	}
	return "\n"
}

// SubRip format
type SRTWriter struct {
	opts WriteOptions
}

func NewSRTWriter(opts WriteOptions) *SRTWriter {
	return &SRTWriter{opts: opts}
}

// writes one block: index, timing, content, blank separator
func (w *SRTWriter) WriteCue(out io.Writer, cue Cue) error {
	nl := w.opts.newline()

	var sb strings.Builder
	sb.WriteString(strconv.Itoa(cue.Index))
	sb.WriteString(nl)
	sb.WriteString(cue.Timing())
	sb.WriteString(nl)
	sb.WriteString(strings.ReplaceAll(cue.Text(), "\n", nl))
	sb.WriteString(nl)
	sb.WriteString(nl)

	if _, err := io.WriteString(out, sb.String()); err != nil {
		return fmt.Errorf("failed to write cue %d: %w", cue.Index, err)
	}
	return nil
}

// creates path and hands fn a buffered writer, flushing and closing when fn
// returns. An interrupted write leaves a truncated file behind.
func (w *SRTWriter) writeFile(path string, fn func(out io.Writer) error) (err error) {
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create SRT file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close SRT file: %w", cerr)
		}
	}()

	buf := bufio.NewWriter(file)
	out := io.Writer(buf)

	var bom *transform.Writer
	if w.opts.BOM {
		bom = transform.NewWriter(buf, unicode.UTF8BOM.NewEncoder())
		out = bom
	}

	if err := fn(out); err != nil {
		return err
	}
	if bom != nil {
		if err := bom.Close(); err != nil {
			return fmt.Errorf("failed to encode SRT file: %w", err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush SRT file: %w", err)
	}
	return nil
}

// scans lines and writes each cue to out as soon as it is complete.
// Returns the number of cues written.
func ConvertSBVToSRT(
	ctx context.Context,
	lines []string,
	out io.Writer,
	opts WriteOptions,
) (int, error) {
	writer := NewSRTWriter(opts)
	scanner := NewScanner(lines)

	for {
		if err := ctx.Err(); err != nil {
			return scanner.Count(), err
		}
		cue, ok := scanner.Next()
		if !ok {
			return scanner.Count(), nil
		}
		if err := writer.WriteCue(out, cue); err != nil {
			// the cue just scanned never made it out
			return scanner.Count() - 1, err
		}
	}
}

// converts lines into an SRT file at path, replacing any existing content.
// lines are fully buffered, so path may be the file they were read from.
func ConvertSBVToSRTFile(
	ctx context.Context,
	lines []string,
	path string,
	opts WriteOptions,
) (int, error) {
	var written int
	err := NewSRTWriter(opts).writeFile(path, func(out io.Writer) error {
		var err error
		written, err = ConvertSBVToSRT(ctx, lines, out, opts)
		return err
	})
	return written, err
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// subtitle format based on file extension
func GetFormatFromExtension(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT, true
	case ".sbv":
		return FormatSBV, true
	default:
		return "", false
	}
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatSBV:
		return ".sbv"
	default:
		return ".srt"
	}
}

// path with its extension replaced by the one for format, or appended when
// path has none
func ReplaceExtension(path string, format Format) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + GetExtensionForFormat(format)
}
